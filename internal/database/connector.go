package database

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrNoDatabaseConfigured is returned when the connector has no database path.
var ErrNoDatabaseConfigured = errors.New("database: no path configured")

// A Connector lazily opens the database and memoizes the handle so all the
// callers of a process share a single connection. Concurrent first calls
// block on the same in-flight open instead of racing duplicate connections.
type Connector struct {
	database string

	once   sync.Once
	client Client
	err    error
}

// NewConnector returns a new Connector for the given database.
func NewConnector(database string) *Connector {
	return &Connector{
		database: database,
	}
}

// Connect returns the memoized database client.
// The first call establishes the connection; a failed establishment is
// propagated to every caller and is not retried.
func (c *Connector) Connect() (Client, error) {
	c.once.Do(func() {
		if c.database == "" {
			c.err = ErrNoDatabaseConfigured
			return
		}
		c.client, c.err = StormOpen(c.database)
	})
	return c.client, c.err
}

// Close closes the underlying connection if it has been established.
func (c *Connector) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
