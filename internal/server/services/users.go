// Package services contains server-side business logic. This file implements
// UserService: registration, the two-round-trip login flow (salt handout,
// then derived-key comparison), and account deletion with full cascade.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/cryptox"
	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/models"
	"github.com/dkurose/kotoba/internal/server/repositories/repomanager"
	"github.com/dkurose/kotoba/internal/server/repositories/users"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserService provides account operations:
// - Register: store a (username, derived key, salt) triple
// - AccountSalt: hand out the stored salt for client-side derivation
// - ValidateKey: compare the client's derived key against the stored one
// - Delete: remove the account and everything it owns
type UserService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the given DB handle and
// repository manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repos: m}
}

// requireUser re-reads the user row, translating absence into ErrInvalidUser.
// Authenticated commands call this so that a deleted account invalidates any
// session still bound to it.
func requireUser(ctx context.Context, repo users.Repository, id string) (*models.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidUser
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

// Register creates an account. The hash is the key the client derived from
// its password and salt; no plaintext is ever submitted. A duplicate
// username yields ErrUserExists and leaves the stored record untouched.
// Two registrations can race past the existence check; the unique index on
// username arbitrates, and the loser still surfaces ErrUserExists.
func (s *UserService) Register(ctx context.Context, username string, hash, salt []byte) (*models.User, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return common.ErrUserExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return common.ErrInternal
		}

		created, err := repo.Create(ctx, &models.User{Username: username, Hash: hash, Salt: salt})
		if err != nil {
			if isUniqueViolation(err) {
				return common.ErrUserExists
			}
			return common.ErrInternal
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// isUniqueViolation reports whether err carries a Postgres unique-index
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// AccountSalt returns the stored salt for username (login round trip one).
// An unknown username yields ErrInvalidUser.
func (s *UserService) AccountSalt(ctx context.Context, username string) ([]byte, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidUser
		}
		return nil, common.ErrInternal
	}
	return user.Salt, nil
}

// ValidateKey compares the candidate key against the stored one and returns
// the user on success (login round trip two). The comparison scans the full
// key width regardless of mismatch position.
func (s *UserService) ValidateKey(ctx context.Context, username string, candidate []byte) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidUser
		}
		return nil, common.ErrInternal
	}
	if !cryptox.VerifyKey(user.Hash, candidate) {
		return nil, common.ErrInvalidPassword
	}
	return user, nil
}

// Verify re-checks that the session's bound user still exists.
func (s *UserService) Verify(ctx context.Context, userID string) (*models.User, error) {
	return requireUser(ctx, s.repos.Users(s.db), userID)
}

// Delete removes the user plus all kanji, vocab and group records it owns,
// in a single transaction. No unlinking is needed: nothing that could hold a
// reference survives the owner.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), userID); err != nil {
			return err
		}
		if err := s.repos.Kanji(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := s.repos.Vocab(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := s.repos.Groups(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return s.repos.Users(tx).Delete(ctx, userID)
	})
}
