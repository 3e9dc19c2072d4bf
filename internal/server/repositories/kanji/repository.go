package kanji

import (
	"context"

	"github.com/dkurose/kotoba/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, k *models.Kanji) (*models.Kanji, error)
	GetBySymbol(ctx context.Context, userID, symbol string) (*models.Kanji, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Kanji, error)
	ListByGroup(ctx context.Context, groupID string) ([]*models.Kanji, error)
	UpdateVocabRefs(ctx context.Context, id string, refs []string) error
	SetGroup(ctx context.Context, id string, groupID *string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
