package test

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"todoapi/internal/adapter/database/sqlite"
)

// InitTestDB opens a fresh in-memory sqlite database with the schema applied.
// The single-connection pool keeps the in-memory database alive across
// queries.
func InitTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}

	root, err := findProjectRoot()

	if err != nil {
		t.Fatalf("locating project root: %v", err)
	}

	if err := sqlite.RunMigrations(db, filepath.Join(root, "db", "migrations")); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return sqlite.Wrap(db)
}

// findProjectRoot walks up from this file until it finds go.mod.
func findProjectRoot() (string, error) {
	_, file, _, ok := runtime.Caller(0)

	if !ok {
		return "", fmt.Errorf("cannot resolve caller path")
	}

	dir := filepath.Dir(file)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", filepath.Dir(file))
		}

		dir = parent
	}
}
