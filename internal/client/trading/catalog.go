package trading

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type EnergyType string

const (
	Solar  EnergyType = "Solar"
	Wind   EnergyType = "Wind"
	Fusion EnergyType = "Fusion"
	Hydro  EnergyType = "Hydro"
)

// EnergyRequest is an open buy order from another grid participant.
// Amount is in MW/h, Price in ETH per MW/h.
type EnergyRequest struct {
	ID               string
	RequesterName    string
	RequesterAddress string
	EnergyType       EnergyType
	Amount           decimal.Decimal
	Price            decimal.Decimal
	Timestamp        string
}

// Total is the order value in ETH.
func (r EnergyRequest) Total() decimal.Decimal {
	return r.Amount.Mul(r.Price)
}

func DefaultCatalog() []EnergyRequest {
	return []EnergyRequest{
		{
			ID:               "1",
			RequesterName:    "Rajesh Kumar",
			RequesterAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEa4",
			EnergyType:       Solar,
			Amount:           decimal.RequireFromString("12.5"),
			Price:            decimal.RequireFromString("0.25"),
			Timestamp:        "5m ago",
		},
		{
			ID:               "2",
			RequesterName:    "Priya Sharma",
			RequesterAddress: "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
			EnergyType:       Wind,
			Amount:           decimal.RequireFromString("8.2"),
			Price:            decimal.RequireFromString("0.18"),
			Timestamp:        "12m ago",
		},
		{
			ID:               "3",
			RequesterName:    "Amit Patel",
			RequesterAddress: "0x5A0b54D5dc17e0AadC383d2db43B0a0D3E029c4c",
			EnergyType:       Fusion,
			Amount:           decimal.RequireFromString("45.0"),
			Price:            decimal.RequireFromString("1.12"),
			Timestamp:        "18m ago",
		},
		{
			ID:               "4",
			RequesterName:    "Sneha Reddy",
			RequesterAddress: "0x1aD91ee08f21bE3dE0BA2ba6918E714dA6B45836",
			EnergyType:       Hydro,
			Amount:           decimal.RequireFromString("15.4"),
			Price:            decimal.RequireFromString("0.32"),
			Timestamp:        "25m ago",
		},
	}
}

func validateCatalog(catalog []EnergyRequest) error {
	seen := make(map[string]struct{}, len(catalog))
	for _, r := range catalog {
		if r.ID == "" {
			return fmt.Errorf("catalog entry for %q has no id", r.RequesterName)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate catalog id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		if !r.Amount.IsPositive() {
			return fmt.Errorf("catalog entry %q: amount must be positive, got %s", r.ID, r.Amount)
		}
		if r.Price.IsNegative() {
			return fmt.Errorf("catalog entry %q: negative price %s", r.ID, r.Price)
		}
	}
	return nil
}
