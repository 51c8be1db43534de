// Package db opens the SQLite catalog that backs the development bridge
// server and the catalog CLI, and keeps its schema current.
package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/httpfs"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// InitDB opens the catalog at path. Foreign keys are switched on so that
// playback state, history, tracks and list memberships disappear together
// with their media file.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	if err := enableForeignKeys(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("reach catalog %s: %w", path, err)
	}
	return db, nil
}

func enableForeignKeys(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("enable catalog foreign keys: %w", err)
	}
	return nil
}

// RunMigrations brings the catalog schema up to the newest migration found
// under "migrations" in migrationsFS. An up-to-date schema is not an error.
func RunMigrations(database *sql.DB, migrationsFS embed.FS) error {
	if err := enableForeignKeys(database); err != nil {
		return err
	}
	source, err := httpfs.New(http.FS(migrationsFS), "migrations")
	if err != nil {
		return fmt.Errorf("read embedded catalog migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(database, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("prepare catalog migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("httpfs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("prepare catalog migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	if version, dirty, err := m.Version(); err == nil {
		log.Printf("Catalog schema at version %d (dirty: %t)", version, dirty)
	}
	return nil
}
