package assets

import (
	"context"

	"github.com/dmitrijs2005/bijligrid/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.EnergyAsset) (*models.EnergyAsset, error)
	ListByProfile(ctx context.Context, profileID string) ([]models.EnergyAsset, error)
}
