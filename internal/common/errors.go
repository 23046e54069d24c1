// Package common defines sentinel errors and small helpers shared by the
// BIJLI.GRID client and backend. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Identity errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrLoginRequired      = errors.New("login required")
	ErrFieldRequired      = errors.New("email, username and password are required")

	// Wallet errors.
	ErrWalletUnavailable  = errors.New("wallet unavailable: install or configure a wallet provider")
	ErrConnectionRejected = errors.New("wallet connection rejected")

	// Trading errors.
	ErrWalletRequired   = errors.New("wallet connection required")
	ErrRequestNotFound  = errors.New("energy request not found")
	ErrRequestFulfilled = errors.New("energy request already fulfilled")
	ErrNotFulfilling    = errors.New("no energy request in fulfillment")
	ErrSendInProgress   = errors.New("energy transfer already in progress")

	// Backend errors.
	ErrSyncFailed = errors.New("sync failed")
)
