package cli

import (
	"context"
	"fmt"
)

// Profile shows the profile synced on connect and its energy assets.
func (a *App) Profile(ctx context.Context) error {
	p := a.currentProfile()
	if p == nil {
		printlnFn("No profile synced. Connect your wallet first.")
		return nil
	}

	printlnFn(fmt.Sprintf("Profile %s: %s, %s, reputation %d, sustainability %d", p.ID, p.Name, p.Role, p.Reputation, p.SustainabilityScore))
	if p.Bio != "" {
		printlnFn("  " + p.Bio)
	}

	assets, err := a.backend.Assets(ctx, p.ID)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		printlnFn("  no energy assets")
		return nil
	}
	for _, as := range assets {
		printlnFn(fmt.Sprintf("  %-6s %6.1f kW capacity, %6.1f kW available  %s", as.Type, as.Capacity, as.Availability, as.Location))
	}
	return nil
}

// Stats shows grid stats, scoped to the synced profile when there is one.
func (a *App) Stats(ctx context.Context) error {
	var profileID string
	if p := a.currentProfile(); p != nil {
		profileID = p.ID
	}

	s, err := a.backend.Stats(ctx, profileID)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Total energy:   %s", s.TotalEnergy))
	printlnFn(fmt.Sprintf("Market index:   %s", s.MarketIndex))
	printlnFn(fmt.Sprintf("Carbon credits: %s", s.CarbonCredits))
	printlnFn(fmt.Sprintf("Grid stability: %s", s.GridStability))
	return nil
}
