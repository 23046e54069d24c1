package assets

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bijligrid/internal/dbx"
	"github.com/dmitrijs2005/bijligrid/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.EnergyAsset) (*models.EnergyAsset, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO energy_assets (id, profile_id, type, capacity, availability, location)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.ProfileID, string(a.Type), a.Capacity, a.Availability, a.Location).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

// ListByProfile returns the profile's assets oldest first. An unknown
// profile yields an empty slice. profileID must be a UUID.
func (r *PostgresRepository) ListByProfile(ctx context.Context, profileID string) ([]models.EnergyAsset, error) {
	query :=
		`SELECT id, profile_id, type, capacity, availability, location, created_at
		 FROM energy_assets
		 WHERE profile_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.EnergyAsset, 0)
	for rows.Next() {
		var a models.EnergyAsset
		var typ string
		if err := rows.Scan(&a.ID, &a.ProfileID, &typ, &a.Capacity, &a.Availability, &a.Location, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		a.Type = models.AssetType(typ)
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
