package models

import "time"

type HistoryType string

const (
	HistoryTrade       HistoryType = "TRADE"
	HistoryReward      HistoryType = "REWARD"
	HistoryMaintenance HistoryType = "MAINTENANCE"
)

type History struct {
	ID          string      `json:"id"`
	ProfileID   string      `json:"profileId"`
	Type        HistoryType `json:"type"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	CreatedAt   time.Time   `json:"createdAt"`
}
