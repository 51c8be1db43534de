// Package store is the data access layer of the development bridge server,
// keeping SQL queries separate from the command handlers.
package store

import (
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup by primary key matches no row.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when a value is rejected before reaching the database.
	ErrInvalid = errors.New("invalid value")
)

// timeLayout keeps stored timestamps lexically sortable.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func now() string {
	return time.Now().UTC().Format(timeLayout)
}
