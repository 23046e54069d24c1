package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	WalletInfo(ctx context.Context) error
	Requests(ctx context.Context) error
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context) error
	Send(ctx context.Context) error
	Ledger(ctx context.Context, filter string) error
	Profile(ctx context.Context) error
	Stats(ctx context.Context) error
	Simulate(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: signup, login, stats, help, exit"
	helpMember = "Available commands: whoami, connect, disconnect, wallet, requests, accept <id>, reject <id>, cancel, send, ledger [filter], profile, stats, simulate, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the BIJLI.GRID client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              show available commands
//	  - signup            create an account (logs in on success)
//	  - login             authenticate
//	  - stats             grid-wide stats
//	  - exit | quit       leave the program
//
//	Logged in, additionally:
//	  - whoami            show identity and wallet
//	  - connect           link a wallet
//	  - disconnect        unlink the wallet
//	  - wallet            show the wallet link
//	  - requests          list open energy requests
//	  - accept <id>       open the fulfillment panel
//	  - reject <id>       decline a request
//	  - cancel            close the fulfillment panel
//	  - send              confirm the send for the open request
//	  - ledger [filter]   list transactions
//	  - profile           show the synced profile and its assets
//	  - simulate ...      emit demo wallet events
//	  - logout            log out
//
// Errors returned by command handlers are printed as notices and never stop
// the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bijli %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "signup", "register":
			err = a.SignUp(ctx)

		case "login":
			err = a.Login(ctx)

		case "stats":
			err = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "whoami", "connect", "disconnect", "wallet", "requests", "accept", "reject",
			"cancel", "send", "ledger", "profile", "simulate", "logout":
			if !a.isLoggedIn() {
				printlnFn(notice("Please log in first."))
				continue
			}
			err = dispatchMember(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(noticeFor(err))
		}
	}
}

func dispatchMember(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "whoami":
		return a.Whoami(ctx)
	case "connect":
		return a.Connect(ctx)
	case "disconnect":
		return a.Disconnect(ctx)
	case "wallet":
		return a.WalletInfo(ctx)
	case "requests":
		return a.Requests(ctx)
	case "accept", "reject":
		if len(args) != 1 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			return nil
		}
		if cmd == "accept" {
			return a.Accept(ctx, args[0])
		}
		return a.Reject(ctx, args[0])
	case "cancel":
		return a.Cancel(ctx)
	case "send":
		return a.Send(ctx)
	case "ledger":
		return a.Ledger(ctx, strings.Join(args, " "))
	case "profile":
		return a.Profile(ctx)
	case "simulate":
		return a.Simulate(ctx, args)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
