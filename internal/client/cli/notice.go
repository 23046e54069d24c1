package cli

import (
	"errors"

	"github.com/dmitrijs2005/bijligrid/internal/common"
)

var notices = []struct {
	err error
	msg string
}{
	{common.ErrFieldRequired, "Email, username and password are required."},
	{common.ErrPasswordMismatch, "Passwords do not match."},
	{common.ErrDuplicateEmail, "An account with this email already exists."},
	{common.ErrInvalidCredentials, "Invalid email or password."},
	{common.ErrLoginRequired, "Please log in first."},
	{common.ErrWalletUnavailable, "No wallet found. Install or configure a wallet provider (-w URL or -m for the demo wallet)."},
	{common.ErrConnectionRejected, "Wallet connection was rejected."},
	{common.ErrWalletRequired, "Please connect your wallet first."},
	{common.ErrRequestNotFound, "No such request."},
	{common.ErrRequestFulfilled, "This request has already been fulfilled."},
	{common.ErrNotFulfilling, "No request is open. Use 'accept <id>' first."},
	{common.ErrSendInProgress, "A send is already in progress."},
	{common.ErrSyncFailed, "Sync with the grid backend failed."},
}

func notice(msg string) string {
	return "[!] " + msg
}

// noticeFor maps err to the message shown to the user.
func noticeFor(err error) string {
	for _, n := range notices {
		if errors.Is(err, n.err) {
			return notice(n.msg)
		}
	}
	return notice("Error: " + err.Error())
}
