// Package services contains the backend business logic on top of the
// repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/dbx"
	"github.com/dmitrijs2005/bijligrid/internal/server/models"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/repomanager"
)

var ErrWalletAddressRequired = errors.New("walletAddress is required")

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// FindOrCreate returns the profile of the user owning walletAddress,
// creating both on first sight. An empty name falls back to
// models.DefaultProfileName. Existing profiles are returned unchanged.
func (s *ProfileService) FindOrCreate(ctx context.Context, walletAddress, name string) (*models.Profile, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, ErrWalletAddressRequired
	}

	var profile *models.Profile
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)
		profiles := s.repomanager.Profiles(tx)

		user, err := users.GetByWalletAddress(ctx, walletAddress)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			user, err = users.Create(ctx, &models.User{WalletAddress: walletAddress})
			if err != nil {
				return fmt.Errorf("error creating user: %w", err)
			}
		case err != nil:
			return fmt.Errorf("error searching user: %w", err)
		default:
			profile, err = profiles.GetByUserID(ctx, user.ID)
			if err == nil {
				return nil
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("error searching profile: %w", err)
			}
		}

		if name == "" {
			name = models.DefaultProfileName(walletAddress)
		}

		profile, err = profiles.Create(ctx, &models.Profile{
			UserID:     user.ID,
			Name:       name,
			Role:       models.RoleConsumer,
			Reputation: models.DefaultReputation,
		})
		if err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}
