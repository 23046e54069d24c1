package history

import (
	"context"

	"github.com/dmitrijs2005/bijligrid/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, h *models.History) (*models.History, error)
	ListByProfile(ctx context.Context, profileID string) ([]models.History, error)
}
