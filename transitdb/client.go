// Package transitdb stores the static schedule data and the dynamic fleet
// telemetry in SQLite and exposes the read and write operations the rest of
// the application is built on.
package transitdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/bebraradar/bebraradar/internal/appconf"
)

// Config controls where the database lives.
type Config struct {
	DBPath string
	Env    appconf.Environment
}

// Client owns the database handle and the prepared query surface.
type Client struct {
	DB      *sql.DB
	Queries *Queries
}

// NewClient opens (creating if necessary) the database at config.DBPath and
// ensures the schema exists.
func NewClient(config Config) (*Client, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("transitdb: test environment must use an in-memory database, got %q", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("transitdb: open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("transitdb: enable foreign keys: %w", err)
	}

	if err := createSchema(db); err != nil {
		return nil, err
	}

	return &Client{DB: db, Queries: New(db)}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// Queries is the query surface over one database handle.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}
