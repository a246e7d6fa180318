package main

import (
	"fmt"
	"hash"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/recipes"
	"github.com/mdouchement/pantry/internal/server"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"gopkg.in/natefinch/lumberjack.v2"
)

const dbname = "pantry.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "pantry",
		Short:   "Pantry inventory server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		logrus.Fatalf("%+v", err)
	}
}

func konfiguration() (*koanf.Koanf, error) {
	konf := koanf.New(".")

	err := konf.Load(confmap.Provider(map[string]interface{}{
		"address":                          ":8888",
		"session.ttl":                      "1h",
		"registration.password_min_length": 6,
		"groq.model":                       recipes.DefaultModel,
	}, "."), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load default configuration")
	}

	if cfg != "" {
		if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}

	// PANTRY_SECRET_KEY overrides secret_key, PANTRY_SESSION__TTL overrides session.ttl.
	err = konf.Load(env.Provider("PANTRY_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "PANTRY_")), "__", ".")
	}), nil)
	return konf, errors.Wrap(err, "could not load environment configuration")
}

func setupLogger(konf *koanf.Koanf) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if filename := konf.String("log.file"); filename != "" {
		logrus.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    20, // megabytes
			MaxBackups: 2,
			MaxAge:     10, // days
		}))
	}
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func kdf(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, nil)
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := konfiguration()
			if err != nil {
				return err
			}

			return database.StormInit(dbnameWithPath(konf.String("database_path")))
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := konfiguration()
			if err != nil {
				return err
			}

			if konf.String("secret_key") == "" {
				return errors.New("secret_key not found")
			}

			if konf.String("groq.api_key") == "" {
				return errors.New("groq.api_key not found")
			}

			setupLogger(konf)

			connector := database.NewConnector(dbnameWithPath(konf.String("database_path")))
			defer connector.Close()

			db, err := connector.Connect()
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}

			engine := server.EchoEngine(server.Controller{
				Version:  version,
				Database: db,
				Recipes: recipes.NewGroq(
					konf.String("groq.api_key"),
					recipes.Model(konf.String("groq.model")),
				),
				SigningKey:        kdf(32, konf.MustBytes("secret_key")),
				SessionTTL:        konf.MustDuration("session.ttl"),
				PasswordMinLength: konf.Int("registration.password_min_length"),
				Production:        konf.String("environment") == "production",
			})
			server.PrintRoutes(engine)

			address := konf.String("address")
			message := "could not run server"
			logrus.Printf("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					logrus.Printf("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
