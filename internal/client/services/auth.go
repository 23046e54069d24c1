// Package services contains application services for the BIJLI.GRID client.
// This file defines the authentication service: sign-up, login and logout
// over the local credential store and the in-process session.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bijligrid/internal/client/credentials"
	"github.com/dmitrijs2005/bijligrid/internal/client/session"
	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignUp: register a new identity and log it in.
//   - Login: verify credentials and start the session.
//   - Logout: end the session, which also drops the wallet link.
type AuthService interface {
	SignUp(ctx context.Context, email, username string, password, confirm []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context)
}

type authService struct {
	store   *credentials.Store
	session *session.Manager
	logger  logging.Logger
}

func NewAuthService(store *credentials.Store, s *session.Manager, logger logging.Logger) AuthService {
	return &authService{store: store, session: s, logger: logger}
}

// SignUp checks that every field is filled and the confirmation matches,
// then registers. On success the new identity is logged in straight away.
func (a *authService) SignUp(ctx context.Context, email, username string, password, confirm []byte) error {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || len(password) == 0 {
		return common.ErrFieldRequired
	}
	if string(password) != string(confirm) {
		return common.ErrPasswordMismatch
	}

	if err := a.store.Register(ctx, email, username, password); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	a.session.Login(session.User{Username: username, Email: email})

	attrs := []any{"email", email}
	if n, err := a.store.Count(ctx); err == nil {
		attrs = append(attrs, "accounts", n)
	}
	a.logger.Info(ctx, "signed up", attrs...)
	return nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return common.ErrFieldRequired
	}
	id, err := a.store.Verify(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.session.Login(session.User{Username: id.Username, Email: id.Email})
	a.logger.Info(ctx, "logged in", "email", id.Email)
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Logout()
	a.logger.Info(ctx, "logged out")
}
