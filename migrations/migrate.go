// Package migrations embeds the database schema and applies it with goose.
// Each supported dialect keeps its own migration directory.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// Supported dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package-level state.
var gooseMu sync.Mutex

var gooseDialects = map[string]string{
	DialectPostgres: "pgx",
	DialectSQLite:   "sqlite3",
}

// Migrate applies all pending migrations for dialect.
func Migrate(db *sql.DB, dialect string) error {
	return run(db, dialect, goose.Up)
}

// Reset rolls back every applied migration for dialect, dropping all tables.
func Reset(db *sql.DB, dialect string) error {
	return run(db, dialect, goose.Reset)
}

func run(db *sql.DB, dialect string, cmd func(*sql.DB, string, ...goose.OptionsFunc) error) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseDialect, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := cmd(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
