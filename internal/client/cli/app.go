package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bijligrid/internal/client/backend"
	"github.com/dmitrijs2005/bijligrid/internal/client/config"
	"github.com/dmitrijs2005/bijligrid/internal/client/credentials"
	"github.com/dmitrijs2005/bijligrid/internal/client/ledger"
	"github.com/dmitrijs2005/bijligrid/internal/client/services"
	"github.com/dmitrijs2005/bijligrid/internal/client/session"
	"github.com/dmitrijs2005/bijligrid/internal/client/storage"
	"github.com/dmitrijs2005/bijligrid/internal/client/trading"
	"github.com/dmitrijs2005/bijligrid/internal/client/wallet"
	"github.com/dmitrijs2005/bijligrid/internal/filex"
	"github.com/dmitrijs2005/bijligrid/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const dbFileName = "bijli.db"

// DemoAddress is the account of the in-memory demo wallet.
const DemoAddress = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"

const demoBalance = "4.2000"

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	provider wallet.Provider
	session  *session.Manager
	auth     services.AuthService
	ledger   *ledger.Ledger
	flow     *trading.Flow
	backend  backend.Client
	health   pinger
	reader   *bufio.Reader

	mu      sync.Mutex
	Mode    Mode
	profile *backend.Profile
}

// NewApp opens local storage under c.DataDir and wires every component.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, "text", c.LogLevel)

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := storage.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	provider, err := newProvider(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var health pinger
	if c.HealthAddr != "" {
		hc, err := backend.NewHealthChecker(c.HealthAddr, "")
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		health = hc
	}

	a, err := newApp(c, logger, provider, storage.NewSQLiteRepository(db), backend.NewHTTPClient(c.BackendURL, nil), health)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

// newApp builds the component graph over already opened resources.
func newApp(c *config.Config, logger logging.Logger, provider wallet.Provider, repo storage.Repository, bc backend.Client, health pinger) (*App, error) {
	sm := session.NewManager(provider, logger)
	l := ledger.New()
	flow, err := trading.NewFlow(trading.DefaultCatalog(), sm, l, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   c,
		logger:   logger,
		provider: provider,
		session:  sm,
		auth:     services.NewAuthService(credentials.NewStore(repo), sm, logger),
		ledger:   l,
		flow:     flow,
		backend:  bc,
		health:   health,
		reader:   bufio.NewReader(os.Stdin),
		Mode:     ModeDisabled,
	}
	sm.OnInvalidate(a.onInvalidate)
	sm.OnWalletChanged(a.onWalletChanged)
	return a, nil
}

// newProvider picks the wallet capability: the demo wallet, a JSON-RPC
// endpoint, or none.
func newProvider(ctx context.Context, c *config.Config, logger logging.Logger) (wallet.Provider, error) {
	switch {
	case c.DemoWallet:
		wei, err := wallet.ParseEther(demoBalance)
		if err != nil {
			return nil, err
		}
		return wallet.NewMockProvider([]string{DemoAddress}, map[string]*big.Int{DemoAddress: wei}), nil
	case c.WalletRPCURL != "":
		p, err := wallet.DialEVM(ctx, c.WalletRPCURL, c.WalletPollInterval, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, nil
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) setProfile(p *backend.Profile) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profile = p
}

func (a *App) currentProfile() *backend.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile
}

// onInvalidate runs after the provider switched networks.
func (a *App) onInvalidate() {
	a.flow.Reset()
	a.setProfile(nil)
	printlnFn(notice("Network changed. Trading view was reset, connect your wallet again."))
}

// onWalletChanged keeps the trading view and the synced profile in step
// with the linked account. A drop clears both. A switch resets the view
// and syncs the profile of the new address.
func (a *App) onWalletChanged(ctx context.Context, ch session.WalletChange) {
	a.flow.Reset()
	a.setProfile(nil)

	if ch.Disconnected() {
		if ch.ByProvider {
			printlnFn(notice("Wallet disconnected by the provider. Trading view was reset."))
		}
		return
	}
	if !ch.AccountSwitched() {
		return
	}

	printlnFn(notice(fmt.Sprintf("Wallet switched to %s. Trading view was reset.", ch.Current.Address)))
	u, ok := a.session.CurrentUser()
	if !ok {
		return
	}
	p, err := a.backend.SyncProfile(ctx, ch.Current.Address, u.Username)
	if err != nil {
		a.logger.Warn(ctx, "profile sync failed", "address", ch.Current.Address, "error", err)
		printlnFn(noticeFor(err))
		return
	}
	if a.session.Wallet().Address != ch.Current.Address {
		return
	}
	a.setProfile(&p)
	printlnFn(fmt.Sprintf("Profile synced: %s (%s, reputation %d)", p.Name, p.Role, p.Reputation))
}

// Run starts the background watchers and the REPL, and releases resources
// when the REPL exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	go a.session.Watch(ctx)
	if a.health != nil {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	printlnFn("BIJLI.GRID client (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() {
	if a.provider != nil {
		_ = a.provider.Close()
	}
	if c, ok := a.health.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

// getStatus renders the prompt prefix: connectivity, user and wallet.
func (a *App) getStatus() string {
	snap := a.session.Snapshot()

	parts := []string{"[" + string(a.mode()) + "]"}
	if snap.LoggedIn {
		parts = append(parts, snap.User.Username)
	} else {
		parts = append(parts, "guest")
	}
	switch {
	case snap.Wallet.IsConnecting:
		parts = append(parts, "wallet:connecting")
	case snap.Wallet.IsConnected:
		parts = append(parts, shortAddress(snap.Wallet.Address))
	}
	if st := a.flow.State(); st.Phase == trading.Fulfilling {
		parts = append(parts, "fulfilling:"+st.RequestID)
	}
	return strings.Join(parts, " ")
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.health.Ping(pingCtx)
			cancel()

			if err != nil {
				a.logger.Debug(ctx, "backend ping failed", "error", err)
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func shortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
