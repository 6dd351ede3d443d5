// Package storetest provides an in-memory database for tests that need the
// persistence gateway.
package storetest

import (
	"testing"

	"tasknest-service/database"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewDB returns a fresh in-memory SQLite database with the schema applied.
// It is closed when the test finishes.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(database.Schema); err != nil {
		db.Close()
		t.Fatalf("applying schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
