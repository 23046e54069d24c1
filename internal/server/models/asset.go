package models

import "time"

type AssetType string

const (
	AssetSolar   AssetType = "SOLAR"
	AssetWind    AssetType = "WIND"
	AssetHydro   AssetType = "HYDRO"
	AssetBattery AssetType = "BATTERY"
)

// EnergyAsset is a generation or storage unit owned by a profile.
// Capacity and Availability are in kW.
type EnergyAsset struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profileId"`
	Type         AssetType `json:"type"`
	Capacity     float64   `json:"capacity"`
	Availability float64   `json:"availability"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
}
