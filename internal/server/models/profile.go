package models

import "time"

type Role string

const (
	RoleConsumer Role = "CONSUMER"
	RoleProducer Role = "PRODUCER"
	RoleProsumer Role = "PROSUMER"
)

const (
	DefaultReputation   = 50
	defaultNamePrefix   = "Node_"
	defaultNameAddrSize = 6
)

type Profile struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Name                string    `json:"name"`
	Role                Role      `json:"role"`
	Reputation          int       `json:"reputation"`
	Bio                 string    `json:"bio,omitempty"`
	SustainabilityScore int       `json:"sustainabilityScore"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DefaultProfileName is used when a profile is created without a name:
// "Node_" followed by the first six characters of the wallet address.
func DefaultProfileName(walletAddress string) string {
	prefix := walletAddress
	if len(prefix) > defaultNameAddrSize {
		prefix = prefix[:defaultNameAddrSize]
	}
	return defaultNamePrefix + prefix
}
