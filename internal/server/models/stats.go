package models

type Stats struct {
	TotalEnergy   string `json:"totalEnergy"`
	MarketIndex   string `json:"marketIndex"`
	CarbonCredits string `json:"carbonCredits"`
	GridStability string `json:"gridStability"`
}

type Health struct {
	Status  string `json:"status"`
	System  string `json:"system"`
	Version string `json:"version"`
}
