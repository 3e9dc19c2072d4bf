package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/models"
	"github.com/dkurose/kotoba/internal/server/repositories/repomanager"
)

// LexiconService creates and deletes lexical entries while keeping their
// cross-references bidirectionally consistent. Every create or delete runs
// the entry mutation and all reciprocal link updates in one transaction, so
// a partial failure can never leave an asymmetric reference behind.
type LexiconService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewLexiconService constructs a LexiconService over the given DB handle and
// repository manager.
func NewLexiconService(db *sql.DB, m repomanager.RepositoryManager) *LexiconService {
	return &LexiconService{db: db, repos: m}
}

// removeRef drops every occurrence of val from list, preserving order.
func removeRef(list []string, val string) []string {
	out := list[:0]
	for _, v := range list {
		if v != val {
			out = append(out, v)
		}
	}
	return out
}

// CreateKanji inserts a character entry for user and links it against every
// vocab entry of the same owner whose phrase contains the symbol: the symbol
// is appended to that vocab's kanji refs and the phrase to the new entry's
// vocab refs. Links are established eagerly at creation time, never
// recomputed lazily.
func (s *LexiconService) CreateKanji(ctx context.Context, user *models.User, k *models.Kanji) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		kanjiRepo := s.repos.Kanji(tx)
		vocabRepo := s.repos.Vocab(tx)

		if _, err := kanjiRepo.GetBySymbol(ctx, user.ID, k.Symbol); err == nil {
			return common.ErrKanjiExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		k.UserID = user.ID
		phrases, err := vocabRepo.ListByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, v := range phrases {
			if !strings.Contains(v.Phrase, k.Symbol) {
				continue
			}
			v.KanjiRefs = append(v.KanjiRefs, k.Symbol)
			if err := vocabRepo.UpdateKanjiRefs(ctx, v.ID, v.KanjiRefs); err != nil {
				return err
			}
			k.VocabRefs = append(k.VocabRefs, v.Phrase)
		}

		_, err = kanjiRepo.Create(ctx, k)
		return err
	})
}

// CreateVocab inserts a phrase entry for user and links it against every
// character of the phrase that exists as a kanji entry of the same owner.
// Repeated characters within the phrase are linked once.
func (s *LexiconService) CreateVocab(ctx context.Context, user *models.User, v *models.Vocab) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		kanjiRepo := s.repos.Kanji(tx)
		vocabRepo := s.repos.Vocab(tx)

		if _, err := vocabRepo.GetByPhrase(ctx, user.ID, v.Phrase); err == nil {
			return common.ErrVocabExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		v.UserID = user.ID
		seen := make(map[rune]bool)
		for _, c := range v.Phrase {
			if seen[c] {
				continue
			}
			seen[c] = true

			k, err := kanjiRepo.GetBySymbol(ctx, user.ID, string(c))
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					continue
				}
				return err
			}
			k.VocabRefs = append(k.VocabRefs, v.Phrase)
			if err := kanjiRepo.UpdateVocabRefs(ctx, k.ID, k.VocabRefs); err != nil {
				return err
			}
			v.KanjiRefs = append(v.KanjiRefs, k.Symbol)
		}

		_, err := vocabRepo.Create(ctx, v)
		return err
	})
}

// DeleteKanji removes a character entry and clears the reciprocal reference
// from every vocab entry that linked back to it. Not reachable through the
// wire protocol.
func (s *LexiconService) DeleteKanji(ctx context.Context, user *models.User, symbol string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		kanjiRepo := s.repos.Kanji(tx)
		vocabRepo := s.repos.Vocab(tx)

		k, err := kanjiRepo.GetBySymbol(ctx, user.ID, symbol)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidKanji
			}
			return err
		}

		for _, phrase := range k.VocabRefs {
			v, err := vocabRepo.GetByPhrase(ctx, user.ID, phrase)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					continue
				}
				return err
			}
			if err := vocabRepo.UpdateKanjiRefs(ctx, v.ID, removeRef(v.KanjiRefs, symbol)); err != nil {
				return err
			}
		}

		return kanjiRepo.Delete(ctx, k.ID)
	})
}

// DeleteVocab removes a phrase entry and clears the reciprocal reference
// from every kanji entry that linked back to it. Not reachable through the
// wire protocol.
func (s *LexiconService) DeleteVocab(ctx context.Context, user *models.User, phrase string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		kanjiRepo := s.repos.Kanji(tx)
		vocabRepo := s.repos.Vocab(tx)

		v, err := vocabRepo.GetByPhrase(ctx, user.ID, phrase)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidVocab
			}
			return err
		}

		for _, symbol := range v.KanjiRefs {
			k, err := kanjiRepo.GetBySymbol(ctx, user.ID, symbol)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					continue
				}
				return err
			}
			if err := kanjiRepo.UpdateVocabRefs(ctx, k.ID, removeRef(k.VocabRefs, phrase)); err != nil {
				return err
			}
		}

		return vocabRepo.Delete(ctx, v.ID)
	})
}
