package vocab

import (
	"context"

	"github.com/dkurose/kotoba/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, v *models.Vocab) (*models.Vocab, error)
	GetByPhrase(ctx context.Context, userID, phrase string) (*models.Vocab, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Vocab, error)
	ListByGroup(ctx context.Context, groupID string) ([]*models.Vocab, error)
	UpdateKanjiRefs(ctx context.Context, id string, refs []string) error
	SetGroup(ctx context.Context, id string, groupID *string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
