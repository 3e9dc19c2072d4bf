// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/migrations"
	"github.com/dkurose/kotoba/internal/server/repositories/groups"
	"github.com/dkurose/kotoba/internal/server/repositories/kanji"
	"github.com/dkurose/kotoba/internal/server/repositories/users"
	"github.com/dkurose/kotoba/internal/server/repositories/vocab"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Kanji returns a kanji.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Kanji(db dbx.DBTX) kanji.Repository {
	return kanji.NewPostgresRepository(db)
}

// Vocab returns a vocab.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Vocab(db dbx.DBTX) vocab.Repository {
	return vocab.NewPostgresRepository(db)
}

// Groups returns a groups.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Groups(db dbx.DBTX) groups.Repository {
	return groups.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
