package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bijligrid/internal/server/models"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/repomanager"
)

type AssetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAssetService(db *sql.DB, m repomanager.RepositoryManager) *AssetService {
	return &AssetService{db: db, repomanager: m}
}

// ListByProfile returns the profile's assets. Profile ids are UUIDs, so
// any other id names no profile and yields an empty list.
func (s *AssetService) ListByProfile(ctx context.Context, profileID string) ([]models.EnergyAsset, error) {
	if _, err := uuid.Parse(profileID); err != nil {
		return []models.EnergyAsset{}, nil
	}
	return s.repomanager.Assets(s.db).ListByProfile(ctx, profileID)
}
