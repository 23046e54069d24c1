package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bijligrid/internal/client/session"
	"github.com/dmitrijs2005/bijligrid/internal/client/wallet"
	"github.com/dmitrijs2005/bijligrid/internal/common"
)

// Connect links a wallet and then syncs the backend profile for its
// address. A failed sync is reported but leaves the wallet connected.
func (a *App) Connect(ctx context.Context) error {
	u, ok := a.session.CurrentUser()
	if !ok {
		return common.ErrLoginRequired
	}
	if a.session.Wallet().IsConnected {
		printlnFn("Wallet already connected.")
		return nil
	}

	printlnFn("Connecting wallet...")
	if err := a.session.ConnectWallet(ctx); err != nil {
		return err
	}

	link := a.session.Wallet()
	printlnFn(formatWallet(link))

	p, err := a.backend.SyncProfile(ctx, link.Address, u.Username)
	if err != nil {
		a.logger.Warn(ctx, "profile sync failed", "address", link.Address, "error", err)
		printlnFn(noticeFor(err))
		return nil
	}
	a.setProfile(&p)
	printlnFn(fmt.Sprintf("Profile synced: %s (%s, reputation %d)", p.Name, p.Role, p.Reputation))
	return nil
}

func (a *App) Disconnect(ctx context.Context) error {
	a.session.Disconnect()
	a.flow.Reset()
	a.setProfile(nil)
	printlnFn("Wallet disconnected.")
	return nil
}

func (a *App) WalletInfo(ctx context.Context) error {
	link := a.session.Wallet()
	switch {
	case link.IsConnecting:
		printlnFn("Wallet: connecting...")
	case link.IsConnected:
		printlnFn(formatWallet(link))
	default:
		printlnFn("Wallet: not connected")
	}
	return nil
}

// Simulate drives the demo wallet:
//
//	simulate accounts [addr...]   switch (or, with no address, revoke) accounts
//	simulate chain <id>           switch network
func (a *App) Simulate(ctx context.Context, args []string) error {
	demo, ok := a.provider.(*wallet.MockProvider)
	if !ok {
		printlnFn("simulate is only available with the demo wallet (-m).")
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: simulate accounts [addr...] | simulate chain <id>")
		return nil
	}

	switch args[0] {
	case "accounts":
		demo.SwitchAccounts(args[1:])
	case "chain":
		if len(args) != 2 {
			printlnFn("Usage: simulate chain <id>")
			return nil
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chain id %q: %w", args[1], err)
		}
		demo.SwitchChain(id)
	default:
		printlnFn("Usage: simulate accounts [addr...] | simulate chain <id>")
	}
	return nil
}

func formatWallet(link session.WalletLink) string {
	s := fmt.Sprintf("Wallet: %s  balance %s ETH", link.Address, link.Balance)
	if link.ChainID != "" {
		s += "  chain " + link.ChainID
	}
	return s
}
