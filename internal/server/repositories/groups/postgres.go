// Package groups provides the PostgreSQL-backed repository for user-defined
// entry groups. A group holds either kanji or vocab entries, selected by the
// vocab flag; title uniqueness is scoped to (owner, kind).
package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements group storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, g *models.Group) (*models.Group, error) {
	query :=
		`INSERT INTO groups (id, title, colour, vocab, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	g.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, g.ID, g.Title, g.Colour, g.Vocab, g.UserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return g, nil
}

func (r *PostgresRepository) GetByTitle(ctx context.Context, userID, title string, vocab bool) (*models.Group, error) {
	query :=
		`SELECT id, title, colour, vocab, user_id FROM groups
		 WHERE user_id = $1 AND title = $2 AND vocab = $3
		 `

	g := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, userID, title, vocab).Scan(
		&g.ID, &g.Title, &g.Colour, &g.Vocab, &g.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return g, nil
}

func (r *PostgresRepository) UpdateColour(ctx context.Context, id string, colour *string) error {
	query := `UPDATE groups SET colour = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, colour); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM groups WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM groups WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
