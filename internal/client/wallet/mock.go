package wallet

import (
	"context"
	"math/big"
	"strings"
	"sync"
)

const mockEventBuffer = 16

// MockProvider is an in-memory wallet. Events that find the buffer full are
// dropped.
type MockProvider struct {
	mu         sync.Mutex
	accounts   []string
	balances   map[string]*big.Int
	chainID    *big.Int
	requestErr error
	balanceErr error
	events     chan Event
	closed     bool
}

func NewMockProvider(accounts []string, balances map[string]*big.Int) *MockProvider {
	m := &MockProvider{
		accounts: append([]string(nil), accounts...),
		balances: make(map[string]*big.Int, len(balances)),
		chainID:  big.NewInt(1),
		events:   make(chan Event, mockEventBuffer),
	}
	for addr, wei := range balances {
		m.balances[strings.ToLower(addr)] = new(big.Int).Set(wei)
	}
	return m
}

// SetRequestError makes RequestAccounts fail with err (nil clears it).
func (m *MockProvider) SetRequestError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestErr = err
}

// SetBalanceError makes GetBalance fail with err (nil clears it).
func (m *MockProvider) SetBalanceError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceErr = err
}

func (m *MockProvider) SetBalance(address string, wei *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[strings.ToLower(address)] = new(big.Int).Set(wei)
}

// SwitchAccounts replaces the account list and emits AccountsChanged.
func (m *MockProvider) SwitchAccounts(accounts []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = append([]string(nil), accounts...)
	m.emit(Event{Kind: AccountsChanged, Accounts: append([]string(nil), accounts...)})
}

// SwitchChain sets the chain id and emits ChainChanged.
func (m *MockProvider) SwitchChain(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chainID = big.NewInt(id)
	m.emit(Event{Kind: ChainChanged, ChainID: big.NewInt(id)})
}

func (m *MockProvider) emit(ev Event) {
	if m.closed {
		return
	}
	select {
	case m.events <- ev:
	default:
	}
}

func (m *MockProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.requestErr != nil {
		return nil, m.requestErr
	}
	return append([]string(nil), m.accounts...), nil
}

// GetBalance returns zero for addresses without a configured balance.
func (m *MockProvider) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balanceErr != nil {
		return nil, m.balanceErr
	}
	if wei, ok := m.balances[strings.ToLower(address)]; ok {
		return new(big.Int).Set(wei), nil
	}
	return new(big.Int), nil
}

func (m *MockProvider) ChainID(ctx context.Context) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return new(big.Int).Set(m.chainID), nil
}

func (m *MockProvider) Events() <-chan Event {
	return m.events
}

func (m *MockProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}
