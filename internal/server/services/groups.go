package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/models"
	"github.com/dkurose/kotoba/internal/server/repositories/repomanager"
)

var hexColour = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// GroupService manages kind-exclusive entry groups and their membership.
// A group holds either kanji or vocab entries; membership lives on the entry
// as an optional group reference, so an entry belongs to at most one group.
type GroupService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewGroupService constructs a GroupService over the given DB handle and
// repository manager.
func NewGroupService(db *sql.DB, m repomanager.RepositoryManager) *GroupService {
	return &GroupService{db: db, repos: m}
}

// Create inserts a group. The colour, when present, must match "#RRGGBB".
// A duplicate (owner, title, kind) yields ErrGroupExists without mutating
// state.
func (s *GroupService) Create(ctx context.Context, user *models.User, g *models.Group) error {
	if g.Colour != nil && !hexColour.MatchString(*g.Colour) {
		return common.ErrInvalidHexcode
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		repo := s.repos.Groups(tx)
		if _, err := repo.GetByTitle(ctx, user.ID, g.Title, g.Vocab); err == nil {
			return common.ErrGroupExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		g.UserID = user.ID
		_, err := repo.Create(ctx, g)
		return err
	})
}

// AddKanji puts the kanji entry with the given symbol into the named kanji
// group. Group-kind exclusivity is enforced by looking the group up with
// vocab=false: a vocab group of the same title is simply not found.
func (s *GroupService) AddKanji(ctx context.Context, user *models.User, groupTitle, symbol string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		g, err := s.repos.Groups(tx).GetByTitle(ctx, user.ID, groupTitle, false)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidGroup
			}
			return err
		}

		k, err := s.repos.Kanji(tx).GetBySymbol(ctx, user.ID, symbol)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidKanji
			}
			return err
		}
		if k.GroupID != nil {
			return common.ErrAlreadyAdded
		}

		return s.repos.Kanji(tx).SetGroup(ctx, k.ID, &g.ID)
	})
}

// AddVocab puts the vocab entry with the given phrase into the named vocab
// group.
func (s *GroupService) AddVocab(ctx context.Context, user *models.User, groupTitle, phrase string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		g, err := s.repos.Groups(tx).GetByTitle(ctx, user.ID, groupTitle, true)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidGroup
			}
			return err
		}

		v, err := s.repos.Vocab(tx).GetByPhrase(ctx, user.ID, phrase)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidVocab
			}
			return err
		}
		if v.GroupID != nil {
			return common.ErrAlreadyAdded
		}

		return s.repos.Vocab(tx).SetGroup(ctx, v.ID, &g.ID)
	})
}

// RemoveKanji takes a kanji entry out of the named group. Not reachable
// through the wire protocol.
func (s *GroupService) RemoveKanji(ctx context.Context, user *models.User, groupTitle, symbol string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		if _, err := s.repos.Groups(tx).GetByTitle(ctx, user.ID, groupTitle, false); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidGroup
			}
			return err
		}

		k, err := s.repos.Kanji(tx).GetBySymbol(ctx, user.ID, symbol)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidKanji
			}
			return err
		}
		if k.GroupID == nil {
			return common.ErrAlreadyRemoved
		}

		return s.repos.Kanji(tx).SetGroup(ctx, k.ID, nil)
	})
}

// RemoveVocab takes a vocab entry out of the named group. Not reachable
// through the wire protocol.
func (s *GroupService) RemoveVocab(ctx context.Context, user *models.User, groupTitle, phrase string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		if _, err := s.repos.Groups(tx).GetByTitle(ctx, user.ID, groupTitle, true); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidGroup
			}
			return err
		}

		v, err := s.repos.Vocab(tx).GetByPhrase(ctx, user.ID, phrase)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidVocab
			}
			return err
		}
		if v.GroupID == nil {
			return common.ErrAlreadyRemoved
		}

		return s.repos.Vocab(tx).SetGroup(ctx, v.ID, nil)
	})
}

// Delete removes a group, first clearing the group reference of every entry
// still linked to it so no dangling reference survives. Not reachable
// through the wire protocol.
func (s *GroupService) Delete(ctx context.Context, user *models.User, title string, vocabKind bool) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		g, err := s.repos.Groups(tx).GetByTitle(ctx, user.ID, title, vocabKind)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidGroup
			}
			return err
		}

		if vocabKind {
			members, err := s.repos.Vocab(tx).ListByGroup(ctx, g.ID)
			if err != nil {
				return err
			}
			for _, v := range members {
				if err := s.repos.Vocab(tx).SetGroup(ctx, v.ID, nil); err != nil {
					return err
				}
			}
		} else {
			members, err := s.repos.Kanji(tx).ListByGroup(ctx, g.ID)
			if err != nil {
				return err
			}
			for _, k := range members {
				if err := s.repos.Kanji(tx).SetGroup(ctx, k.ID, nil); err != nil {
					return err
				}
			}
		}

		return s.repos.Groups(tx).Delete(ctx, g.ID)
	})
}

// Update recolours a kanji group and detaches the listed member symbols.
// Not reachable through the wire protocol.
func (s *GroupService) Update(ctx context.Context, user *models.User, title string, colour *string, removeSymbols []string) error {
	if colour != nil && !hexColour.MatchString(*colour) {
		return common.ErrInvalidHexcode
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireUser(ctx, s.repos.Users(tx), user.ID); err != nil {
			return err
		}

		g, err := s.repos.Groups(tx).GetByTitle(ctx, user.ID, title, false)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidGroup
			}
			return err
		}

		for _, symbol := range removeSymbols {
			k, err := s.repos.Kanji(tx).GetBySymbol(ctx, user.ID, symbol)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					continue
				}
				return err
			}
			if k.GroupID == nil || *k.GroupID != g.ID {
				continue
			}
			if err := s.repos.Kanji(tx).SetGroup(ctx, k.ID, nil); err != nil {
				return err
			}
		}

		if colour != nil {
			return s.repos.Groups(tx).UpdateColour(ctx, g.ID, colour)
		}
		return nil
	})
}
