package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/repositories/groups"
	"github.com/dkurose/kotoba/internal/server/repositories/kanji"
	"github.com/dkurose/kotoba/internal/server/repositories/users"
	"github.com/dkurose/kotoba/internal/server/repositories/vocab"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Kanji(db dbx.DBTX) kanji.Repository
	Vocab(db dbx.DBTX) vocab.Repository
	Groups(db dbx.DBTX) groups.Repository
}
