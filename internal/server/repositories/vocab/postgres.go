// Package vocab provides the PostgreSQL-backed repository for phrase
// entries. Reading and cross-reference sequences are stored as JSONB.
package vocab

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

// PostgresRepository implements vocab storage over a dbx.DBTX (*sql.DB or *sql.Tx).
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

func (r *PostgresRepository) Create(ctx context.Context, v *models.Vocab) (*models.Vocab, error) {
	query :=
		`INSERT INTO vocab (id, phrase, meaning, reading, description, kanji_refs, user_id, group_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	reading, err := encodeList(v.Reading)
	if err != nil {
		return nil, fmt.Errorf("encoding reading: %w", err)
	}
	refs, err := encodeList(v.KanjiRefs)
	if err != nil {
		return nil, fmt.Errorf("encoding kanji refs: %w", err)
	}

	v.ID = uuid.NewString()
	_, err = r.db.ExecContext(ctx, query,
		v.ID, v.Phrase, v.Meaning, reading, v.Description, refs, v.UserID, v.GroupID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *PostgresRepository) scanRow(row interface{ Scan(...any) error }) (*models.Vocab, error) {
	v := &models.Vocab{}
	var reading, refs []byte
	if err := row.Scan(
		&v.ID, &v.Phrase, &v.Meaning, &reading, &v.Description, &refs, &v.UserID, &v.GroupID,
	); err != nil {
		return nil, err
	}
	var err error
	if v.Reading, err = decodeList(reading); err != nil {
		return nil, fmt.Errorf("decoding reading: %w", err)
	}
	if v.KanjiRefs, err = decodeList(refs); err != nil {
		return nil, fmt.Errorf("decoding kanji refs: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) GetByPhrase(ctx context.Context, userID, phrase string) (*models.Vocab, error) {
	query :=
		`SELECT id, phrase, meaning, reading, description, kanji_refs, user_id, group_id FROM vocab
		 WHERE user_id = $1 AND phrase = $2
		 `

	v, err := r.scanRow(r.db.QueryRowContext(ctx, query, userID, phrase))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]*models.Vocab, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Vocab
	for rows.Next() {
		v, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Vocab, error) {
	query :=
		`SELECT id, phrase, meaning, reading, description, kanji_refs, user_id, group_id FROM vocab
		 WHERE user_id = $1
		 `
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]*models.Vocab, error) {
	query :=
		`SELECT id, phrase, meaning, reading, description, kanji_refs, user_id, group_id FROM vocab
		 WHERE group_id = $1
		 `
	return r.list(ctx, query, groupID)
}

func (r *PostgresRepository) UpdateKanjiRefs(ctx context.Context, id string, refs []string) error {
	query := `UPDATE vocab SET kanji_refs = $2 WHERE id = $1`

	encoded, err := encodeList(refs)
	if err != nil {
		return fmt.Errorf("encoding kanji refs: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, id, encoded); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetGroup(ctx context.Context, id string, groupID *string) error {
	query := `UPDATE vocab SET group_id = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, groupID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM vocab WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM vocab WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
