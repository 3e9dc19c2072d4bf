// Package kanji provides the PostgreSQL-backed repository for character
// entries. Reading and cross-reference sequences are stored as JSONB.
package kanji

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements kanji storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func encodeList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func decodeList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresRepository) Create(ctx context.Context, k *models.Kanji) (*models.Kanji, error) {
	query :=
		`INSERT INTO kanji (id, symbol, meaning, onyomi, kunyomi, description, vocab_refs, user_id, group_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	onyomi, err := encodeList(k.Onyomi)
	if err != nil {
		return nil, fmt.Errorf("encoding onyomi: %w", err)
	}
	kunyomi, err := encodeList(k.Kunyomi)
	if err != nil {
		return nil, fmt.Errorf("encoding kunyomi: %w", err)
	}
	refs, err := encodeList(k.VocabRefs)
	if err != nil {
		return nil, fmt.Errorf("encoding vocab refs: %w", err)
	}

	k.ID = uuid.NewString()
	_, err = r.db.ExecContext(ctx, query,
		k.ID, k.Symbol, k.Meaning, onyomi, kunyomi, k.Description, refs, k.UserID, k.GroupID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return k, nil
}

func (r *PostgresRepository) scanRow(row interface{ Scan(...any) error }) (*models.Kanji, error) {
	k := &models.Kanji{}
	var onyomi, kunyomi, refs []byte
	if err := row.Scan(
		&k.ID, &k.Symbol, &k.Meaning, &onyomi, &kunyomi, &k.Description, &refs, &k.UserID, &k.GroupID,
	); err != nil {
		return nil, err
	}
	var err error
	if k.Onyomi, err = decodeList(onyomi); err != nil {
		return nil, fmt.Errorf("decoding onyomi: %w", err)
	}
	if k.Kunyomi, err = decodeList(kunyomi); err != nil {
		return nil, fmt.Errorf("decoding kunyomi: %w", err)
	}
	if k.VocabRefs, err = decodeList(refs); err != nil {
		return nil, fmt.Errorf("decoding vocab refs: %w", err)
	}
	return k, nil
}

func (r *PostgresRepository) GetBySymbol(ctx context.Context, userID, symbol string) (*models.Kanji, error) {
	query :=
		`SELECT id, symbol, meaning, onyomi, kunyomi, description, vocab_refs, user_id, group_id FROM kanji
		 WHERE user_id = $1 AND symbol = $2
		 `

	k, err := r.scanRow(r.db.QueryRowContext(ctx, query, userID, symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return k, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]*models.Kanji, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Kanji
	for rows.Next() {
		k, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Kanji, error) {
	query :=
		`SELECT id, symbol, meaning, onyomi, kunyomi, description, vocab_refs, user_id, group_id FROM kanji
		 WHERE user_id = $1
		 `
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]*models.Kanji, error) {
	query :=
		`SELECT id, symbol, meaning, onyomi, kunyomi, description, vocab_refs, user_id, group_id FROM kanji
		 WHERE group_id = $1
		 `
	return r.list(ctx, query, groupID)
}

func (r *PostgresRepository) UpdateVocabRefs(ctx context.Context, id string, refs []string) error {
	query := `UPDATE kanji SET vocab_refs = $2 WHERE id = $1`

	encoded, err := encodeList(refs)
	if err != nil {
		return fmt.Errorf("encoding vocab refs: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, id, encoded); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetGroup(ctx context.Context, id string, groupID *string) error {
	query := `UPDATE kanji SET group_id = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, groupID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM kanji WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM kanji WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
