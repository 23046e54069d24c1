// Package models holds the backend's persistent records. JSON tags define
// the HTTP API shape.
package models

import "time"

type User struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	CreatedAt     time.Time `json:"createdAt"`
}
