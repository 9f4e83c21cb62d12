// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/migrations"
)

// Supported database dialects.
const (
	DialectPostgres = migrations.DialectPostgres
	DialectSQLite   = migrations.DialectSQLite
)

// DB is the shared database handle passed explicitly to every repository.
// It carries the dialect-specific statement builder and error classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database described by cfg.DSN. A postgres:// or
// postgresql:// URL selects PostgreSQL (pgx), anything else is treated as a
// SQLite database file with an optional sqlite:// prefix.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewConnectPostgres(ctx, dsn, log)
	default:
		return NewConnectSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"), log)
	}
}

func newDB(conn *sql.DB, dialect string, classificator ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// Dialect returns the dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, db.dialect); err != nil {
		return fmt.Errorf("error migrating %s database: %w", db.dialect, err)
	}
	db.logger.Info().Str("dialect", db.dialect).Msg("database schema is up to date")
	return nil
}

// Reset rolls back all schema migrations. All data is lost.
func (db *DB) Reset() error {
	if err := migrations.Reset(db.DB, db.dialect); err != nil {
		return fmt.Errorf("error resetting %s database: %w", db.dialect, err)
	}
	db.logger.Warn().Str("dialect", db.dialect).Msg("database tables dropped")
	return nil
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return Unclassified
	}
	return db.errorClassificator.Classify(err)
}
