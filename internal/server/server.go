package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/recipes"
	"github.com/mdouchement/pantry/internal/server/middlewares"
	"github.com/mdouchement/pantry/internal/server/session"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Database database.Client
	Recipes  recipes.Client
	// Session params
	SigningKey []byte
	SessionTTL time.Duration
	// Registration params
	PasswordMinLength int
	// Production enables the Secure flag of the session cookie.
	Production bool
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	sessions := session.NewManager(ctrl.SigningKey, ctrl.SessionTTL, ctrl.Production)

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Session(sessions))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		db:                ctrl.Database,
		sessions:          sessions,
		passwordMinLength: ctrl.PasswordMinLength,
	}
	router.POST("/auth/signup", auth.Signup)
	router.POST("/auth/login", auth.Login)

	//
	// item handlers
	//
	item := &item{
		db: ctrl.Database,
	}
	restricted.GET("/items", item.List)
	restricted.POST("/items", item.Create)
	restricted.GET("/items/:id", item.Get)
	restricted.PUT("/items/:id", item.Update)
	restricted.DELETE("/items/:id", item.Delete)

	//
	// recipe handlers
	//
	recipe := &recipe{
		generator: ctrl.Recipes,
	}
	router.POST("/recipes", recipe.Generate)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

// currentUserID returns the session subject stored by the gate.
func currentUserID(c echo.Context) string {
	id, ok := c.Get(middlewares.CurrentUserContextKey).(string)
	if ok {
		return id
	}
	return ""
}
