package backend

import "time"

type Health struct {
	Status  string `json:"status"`
	System  string `json:"system"`
	Version string `json:"version"`
}

type Profile struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	Reputation          int       `json:"reputation"`
	Bio                 string    `json:"bio,omitempty"`
	SustainabilityScore int       `json:"sustainabilityScore"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type Asset struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profileId"`
	Type         string    `json:"type"`
	Capacity     float64   `json:"capacity"`
	Availability float64   `json:"availability"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Stats struct {
	TotalEnergy   string `json:"totalEnergy"`
	MarketIndex   string `json:"marketIndex"`
	CarbonCredits string `json:"carbonCredits"`
	GridStability string `json:"gridStability"`
}

type profileRequest struct {
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name,omitempty"`
}
