package history

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

func (r *PostgresRepository) Create(ctx context.Context, h *models.History) (*models.History, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO history (id, profile_id, type, description, amount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, h.ID, h.ProfileID, string(h.Type), h.Description, h.Amount).Scan(&h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return h, nil
}

// ListByProfile returns history newest first.
func (r *PostgresRepository) ListByProfile(ctx context.Context, profileID string) ([]models.History, error) {
	query :=
		`SELECT id, profile_id, type, description, amount, created_at
		 FROM history
		 WHERE profile_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.History, 0)
	for rows.Next() {
		var h models.History
		var typ string
		if err := rows.Scan(&h.ID, &h.ProfileID, &typ, &h.Description, &h.Amount, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		h.Type = models.HistoryType(typ)
		result = append(result, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
