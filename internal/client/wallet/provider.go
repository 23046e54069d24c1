// Package wallet describes the external wallet capability the session
// depends on and ships two implementations: EVMProvider, which talks
// Ethereum JSON-RPC to a node or wallet endpoint, and MockProvider, an
// in-memory wallet used for the demo mode and in tests.
package wallet

import (
	"context"
	"math/big"
)

type EventKind int

const (
	// AccountsChanged carries the new account list (possibly empty).
	AccountsChanged EventKind = iota + 1
	// ChainChanged carries the new chain id.
	ChainChanged
)

func (k EventKind) String() string {
	switch k {
	case AccountsChanged:
		return "accountsChanged"
	case ChainChanged:
		return "chainChanged"
	default:
		return "unknown"
	}
}

// Event is an unsolicited notification from the provider.
type Event struct {
	Kind     EventKind
	Accounts []string
	ChainID  *big.Int
}

// Provider is the wallet capability. Balances are in wei.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	// Events is closed by Close.
	Events() <-chan Event
	Close() error
}
