package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bijligrid/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts for email, username, password and its confirmation and
// registers a new identity. On success the user is logged in.
//
// Password byte slices are wiped before returning.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.auth.SignUp(ctx, email, username, password, confirm); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", username))
	return nil
}

// Login prompts for credentials and starts the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, password); err != nil {
		return err
	}

	u, _ := a.session.CurrentUser()
	printlnFn(fmt.Sprintf("Logged in as %s.", u.Username))
	return nil
}

// Logout ends the session. The wallet link and the trading view go with it.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.flow.Reset()
	a.setProfile(nil)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the identity and, when connected, the wallet link.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.LoggedIn {
		return common.ErrLoginRequired
	}

	printlnFn(fmt.Sprintf("User:  %s <%s>", snap.User.Username, snap.User.Email))
	if !snap.Wallet.IsConnected {
		printlnFn("Wallet: not connected")
		return nil
	}
	printlnFn(formatWallet(snap.Wallet))
	return nil
}
