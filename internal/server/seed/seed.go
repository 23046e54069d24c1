// Package seed loads demo data into the backend database.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/dbx"
	"github.com/dmitrijs2005/bijligrid/internal/logging"
	"github.com/dmitrijs2005/bijligrid/internal/server/models"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/repomanager"
)

const DemoWallet = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"

func demoProfile() models.Profile {
	return models.Profile{
		Name:                "Prashant User",
		Role:                models.RoleProsumer,
		Reputation:          85,
		Bio:                 "Early adopter of Bijli Grid. Production: 15kW Solar.",
		SustainabilityScore: 92,
	}
}

func demoAssets() []models.EnergyAsset {
	return []models.EnergyAsset{
		{Type: models.AssetSolar, Capacity: 15.5, Availability: 12.0, Location: "Rooftop Sector 7"},
		{Type: models.AssetWind, Capacity: 5.0, Availability: 2.5, Location: "North Ridge"},
	}
}

func demoHistory() models.History {
	return models.History{Type: models.HistoryTrade, Description: "Sold 50kWh to Grid", Amount: 25.5}
}

// Result describes what Run did. Created is false when the demo wallet was
// already present, in which case nothing is written.
type Result struct {
	Profile *models.Profile
	Created bool
}

// Run upserts the demo user and, on first run only, its profile, assets
// and a history entry, all in one transaction.
func Run(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) (*Result, error) {
	res := &Result{}

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := m.Users(tx)
		profiles := m.Profiles(tx)

		user, err := users.GetByWalletAddress(ctx, DemoWallet)
		if err == nil {
			res.Profile, err = profiles.GetByUserID(ctx, user.ID)
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("error searching profile: %w", err)
			}
			if res.Profile != nil {
				return nil
			}
		} else if errors.Is(err, common.ErrorNotFound) {
			user, err = users.Create(ctx, &models.User{WalletAddress: DemoWallet})
			if err != nil {
				return fmt.Errorf("error creating user: %w", err)
			}
		} else {
			return fmt.Errorf("error searching user: %w", err)
		}

		p := demoProfile()
		p.UserID = user.ID
		if res.Profile, err = profiles.Create(ctx, &p); err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		res.Created = true

		for _, a := range demoAssets() {
			a.ProfileID = res.Profile.ID
			if _, err := m.Assets(tx).Create(ctx, &a); err != nil {
				return fmt.Errorf("error creating asset: %w", err)
			}
		}

		h := demoHistory()
		h.ProfileID = res.Profile.ID
		if _, err := m.History(tx).Create(ctx, &h); err != nil {
			return fmt.Errorf("error creating history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Created {
		logger.Info(ctx, "Seeding complete", "profile", res.Profile.Name)
	} else {
		logger.Info(ctx, "Seed data already present", "profile", res.Profile.Name)
	}
	return res, nil
}
