package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/dbx"
	"github.com/dmitrijs2005/bijligrid/internal/server/models"
)

const selectColumns = `id, user_id, name, role, reputation, bio, sustainability_score, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO profiles (id, user_id, name, role, reputation, bio, sustainability_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.Name, string(p.Role), p.Reputation, p.Bio, p.SustainabilityScore).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + selectColumns + ` FROM profiles
		 WHERE user_id = $1
		 `
	return r.getOne(ctx, query, userID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + selectColumns + ` FROM profiles
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Profile, error) {
	p := &models.Profile{}
	var role string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.UserID, &p.Name, &role, &p.Reputation, &p.Bio, &p.SustainabilityScore, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Role = models.Role(role)
	return p, nil
}
