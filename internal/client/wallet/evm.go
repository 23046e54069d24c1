package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/dmitrijs2005/bijligrid/internal/logging"
)

// codeMethodNotFound is the JSON-RPC 2.0 error code for an unknown method.
const codeMethodNotFound = -32601

const evmEventBuffer = 8

// EVMProvider is a wallet backed by an Ethereum JSON-RPC endpoint. Nodes have
// no push channel for account or chain switches, so the provider polls
// eth_accounts and eth_chainId and turns differences into events.
type EVMProvider struct {
	rpc      *rpc.Client
	eth      *ethclient.Client
	interval time.Duration
	logger   logging.Logger

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// DialEVM connects to url and starts the change poller. A non-positive
// pollInterval disables polling.
func DialEVM(ctx context.Context, url string, pollInterval time.Duration, logger logging.Logger) (*EVMProvider, error) {
	rc, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial wallet rpc %s: %w", url, err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	p := &EVMProvider{
		rpc:      rc,
		eth:      ethclient.NewClient(rc),
		interval: pollInterval,
		logger:   logger,
		events:   make(chan Event, evmEventBuffer),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go p.poll(watchCtx)
	return p, nil
}

// RequestAccounts asks for account access. Endpoints that do not implement
// eth_requestAccounts are queried with eth_accounts instead.
func (p *EVMProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := p.rpc.CallContext(ctx, &accounts, "eth_requestAccounts")
	if err == nil {
		return accounts, nil
	}

	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) || rpcErr.ErrorCode() != codeMethodNotFound {
		return nil, fmt.Errorf("eth_requestAccounts: %w", err)
	}
	return p.accounts(ctx)
}

func (p *EVMProvider) accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return accounts, nil
}

func (p *EVMProvider) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	if !ethcommon.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}
	wei, err := p.eth.BalanceAt(ctx, ethcommon.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance %s: %w", address, err)
	}
	return wei, nil
}

func (p *EVMProvider) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := p.eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("eth_chainId: %w", err)
	}
	return id, nil
}

func (p *EVMProvider) Events() <-chan Event {
	return p.events
}

// Close stops the poller, closes the event channel and the RPC client.
func (p *EVMProvider) Close() error {
	p.once.Do(func() {
		p.cancel()
		<-p.done
		close(p.events)
		p.rpc.Close()
	})
	return nil
}

func (p *EVMProvider) poll(ctx context.Context) {
	defer close(p.done)

	if p.interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var (
		primed       bool
		lastAccounts []string
		lastChain    *big.Int
	)

	for {
		select {
		case <-ticker.C:
			callCtx, cancel := context.WithTimeout(ctx, p.interval)
			accounts, accErr := p.accounts(callCtx)
			chain, chainErr := p.ChainID(callCtx)
			cancel()

			if accErr != nil || chainErr != nil {
				p.logger.Debug(ctx, "wallet poll failed", "accounts_err", accErr, "chain_err", chainErr)
				continue
			}

			if !primed {
				lastAccounts, lastChain, primed = accounts, chain, true
				continue
			}

			if !sameAccounts(lastAccounts, accounts) {
				lastAccounts = accounts
				if !p.send(ctx, Event{Kind: AccountsChanged, Accounts: slices.Clone(accounts)}) {
					return
				}
			}
			if lastChain.Cmp(chain) != 0 {
				lastChain = chain
				if !p.send(ctx, Event{Kind: ChainChanged, ChainID: new(big.Int).Set(chain)}) {
					return
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

func (p *EVMProvider) send(ctx context.Context, ev Event) bool {
	select {
	case p.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func sameAccounts(a, b []string) bool {
	return slices.EqualFunc(a, b, strings.EqualFold)
}
