package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/rpggio/feedwire/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dataSourceName == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies the embedded schema. It is safe to call on an
// already migrated database.
func (db *DB) RunMigrations() error {
	migration, err := migrations.FS.ReadFile(migrations.InitialSchema)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	if _, err := db.Exec(string(migration)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
