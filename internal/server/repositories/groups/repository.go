package groups

import (
	"context"

	"github.com/dkurose/kotoba/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, g *models.Group) (*models.Group, error)
	GetByTitle(ctx context.Context, userID, title string, vocab bool) (*models.Group, error)
	UpdateColour(ctx context.Context, id string, colour *string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
