// Package session tracks who is logged in and which wallet, if any, is
// linked to this client process.
//
// The two axes are independent except that logging out always drops the
// wallet link. Provider calls are made without holding the manager's lock;
// a generation counter discards results that arrive after the link was
// dropped in the meantime.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bijligrid/internal/client/wallet"
	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/logging"
)

type User struct {
	Username string
	Email    string
}

// WalletLink is the wallet axis of the session. Balance is in ether with
// four fractional digits. ChainID is empty when the provider did not report one.
type WalletLink struct {
	Address      string
	Balance      string
	ChainID      string
	IsConnected  bool
	IsConnecting bool
}

type Snapshot struct {
	LoggedIn bool
	User     User
	Wallet   WalletLink
}

// WalletChange describes a dropped link or a switched account.
// ByProvider is set when the wallet itself reported the change.
type WalletChange struct {
	Previous   WalletLink
	Current    WalletLink
	ByProvider bool
}

// Disconnected reports whether the change left no wallet linked.
func (c WalletChange) Disconnected() bool {
	return !c.Current.IsConnected
}

// AccountSwitched reports whether a linked wallet moved to another address.
func (c WalletChange) AccountSwitched() bool {
	return c.Current.IsConnected && c.Previous.IsConnected && c.Current.Address != c.Previous.Address
}

type Manager struct {
	provider wallet.Provider
	logger   logging.Logger

	mu              sync.Mutex
	loggedIn        bool
	user            User
	link            WalletLink
	gen             uint64
	onInvalidate    []func()
	onWalletChanged []func(context.Context, WalletChange)
}

// NewManager creates a manager. provider may be nil, in which case wallet
// connection attempts fail with common.ErrWalletUnavailable.
func NewManager(provider wallet.Provider, logger logging.Logger) *Manager {
	return &Manager{provider: provider, logger: logger}
}

func (m *Manager) Login(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggedIn = true
	m.user = u
}

// Logout clears the identity and disconnects the wallet.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.loggedIn = false
	m.user = User{}
	prev := m.dropLocked()
	m.mu.Unlock()

	m.notifyDropped(context.Background(), prev, false)
}

func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loggedIn
}

func (m *Manager) CurrentUser() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.loggedIn
}

func (m *Manager) Wallet() WalletLink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.link
}

func (m *Manager) IsWalletConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.link.IsConnected
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{LoggedIn: m.loggedIn, User: m.user, Wallet: m.link}
}

// ConnectWallet requests account access and links the first account.
// It is a no-op while connected or while another attempt is in flight.
func (m *Manager) ConnectWallet(ctx context.Context) error {
	if m.provider == nil {
		return common.ErrWalletUnavailable
	}

	m.mu.Lock()
	if m.link.IsConnected || m.link.IsConnecting {
		m.mu.Unlock()
		return nil
	}
	m.link.IsConnecting = true
	gen := m.gen
	m.mu.Unlock()

	link, err := m.fetchLink(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// dropped while connecting
		return fmt.Errorf("%w: connection superseded", common.ErrConnectionRejected)
	}
	if err != nil {
		m.link = WalletLink{}
		return err
	}
	m.link = link
	m.logger.Info(ctx, "wallet connected", "address", link.Address, "balance", link.Balance, "chain_id", link.ChainID)
	return nil
}

func (m *Manager) fetchLink(ctx context.Context) (WalletLink, error) {
	accounts, err := m.provider.RequestAccounts(ctx)
	if err != nil {
		m.logger.Warn(ctx, "wallet request accounts failed", "error", err)
		return WalletLink{}, fmt.Errorf("%w: %w", common.ErrConnectionRejected, err)
	}
	if len(accounts) == 0 {
		return WalletLink{}, fmt.Errorf("%w: no accounts", common.ErrConnectionRejected)
	}

	address := accounts[0]
	wei, err := m.provider.GetBalance(ctx, address)
	if err != nil {
		m.logger.Warn(ctx, "wallet balance query failed", "address", address, "error", err)
		return WalletLink{}, fmt.Errorf("%w: %w", common.ErrConnectionRejected, err)
	}

	link := WalletLink{
		Address:     address,
		Balance:     wallet.FormatEther(wei),
		IsConnected: true,
	}
	if id, err := m.provider.ChainID(ctx); err != nil {
		m.logger.Debug(ctx, "wallet chain id unavailable", "error", err)
	} else {
		link.ChainID = id.String()
	}
	return link, nil
}

func (m *Manager) Disconnect() {
	m.mu.Lock()
	prev := m.dropLocked()
	m.mu.Unlock()

	m.notifyDropped(context.Background(), prev, false)
}

// dropLocked clears the link and returns what it was.
func (m *Manager) dropLocked() WalletLink {
	prev := m.link
	m.link = WalletLink{}
	m.gen++
	return prev
}

// OnWalletChanged registers fn to be called after a linked wallet is
// dropped or switches accounts. Invalidate reports through OnInvalidate
// instead.
func (m *Manager) OnWalletChanged(fn func(context.Context, WalletChange)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onWalletChanged = append(m.onWalletChanged, fn)
}

func (m *Manager) notifyDropped(ctx context.Context, prev WalletLink, byProvider bool) {
	if !prev.IsConnected && !prev.IsConnecting {
		return
	}
	m.notifyWalletChanged(ctx, WalletChange{Previous: prev, ByProvider: byProvider})
}

func (m *Manager) notifyWalletChanged(ctx context.Context, ch WalletChange) {
	m.mu.Lock()
	subs := append([]func(context.Context, WalletChange){}, m.onWalletChanged...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(ctx, ch)
	}
}

// HandleAccountsChanged reacts to the provider switching accounts. An empty
// list disconnects. Otherwise, while connected, the first account becomes
// the linked address and its balance is re-read; a failed read leaves the
// link unchanged.
func (m *Manager) HandleAccountsChanged(ctx context.Context, accounts []string) {
	if len(accounts) == 0 {
		m.mu.Lock()
		prev := m.dropLocked()
		m.mu.Unlock()

		m.logger.Info(ctx, "wallet disconnected by provider")
		m.notifyDropped(ctx, prev, true)
		return
	}

	m.mu.Lock()
	if !m.link.IsConnected {
		m.mu.Unlock()
		return
	}
	gen := m.gen
	m.mu.Unlock()

	address := accounts[0]
	wei, err := m.provider.GetBalance(ctx, address)
	if err != nil {
		m.logger.Error(ctx, "balance refresh failed", "address", address, "error", err)
		return
	}

	m.mu.Lock()
	if m.gen != gen || !m.link.IsConnected {
		m.mu.Unlock()
		return
	}
	prev := m.link
	m.link.Address = address
	m.link.Balance = wallet.FormatEther(wei)
	ch := WalletChange{Previous: prev, Current: m.link, ByProvider: true}
	m.mu.Unlock()

	m.logger.Info(ctx, "wallet account switched", "address", address, "balance", ch.Current.Balance)
	if ch.AccountSwitched() {
		m.notifyWalletChanged(ctx, ch)
	}
}

// HandleChainChanged invalidates the session's wallet-derived state.
func (m *Manager) HandleChainChanged(ctx context.Context) {
	m.logger.Info(ctx, "wallet chain changed")
	m.Invalidate()
}

// OnInvalidate registers fn to be called after every Invalidate.
func (m *Manager) OnInvalidate(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onInvalidate = append(m.onInvalidate, fn)
}

// Invalidate drops the wallet link and notifies subscribers. Auth state is kept.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.dropLocked()
	subs := append([]func(){}, m.onInvalidate...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Watch consumes provider events until ctx is done or the provider closes
// its event stream.
func (m *Manager) Watch(ctx context.Context) {
	if m.provider == nil {
		return
	}
	events := m.provider.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case wallet.AccountsChanged:
				m.HandleAccountsChanged(ctx, ev.Accounts)
			case wallet.ChainChanged:
				m.HandleChainChanged(ctx)
			default:
				m.logger.Debug(ctx, "ignoring wallet event", "kind", ev.Kind.String())
			}
		case <-ctx.Done():
			return
		}
	}
}
