package services

import (
	"context"

	"github.com/dmitrijs2005/bijligrid/internal/server/models"
)

const (
	SystemName    = "BIJLI_CORE_V2"
	SystemVersion = "2.0.0"
	StatusActive  = "ACTIVE"
)

// StatsService reports grid-wide figures. The values are fixed until
// aggregation over history exists; profileID is accepted but unused.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

func (s *StatsService) Stats(_ context.Context, _ string) models.Stats {
	return models.Stats{
		TotalEnergy:   "1.2 GW/h",
		MarketIndex:   "+12.5%",
		CarbonCredits: "450 Tons",
		GridStability: "optimal [99.9%]",
	}
}

func (s *StatsService) Health(_ context.Context) models.Health {
	return models.Health{Status: StatusActive, System: SystemName, Version: SystemVersion}
}
