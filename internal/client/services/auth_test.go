package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bijligrid/internal/client/credentials"
	"github.com/dmitrijs2005/bijligrid/internal/client/session"
	"github.com/dmitrijs2005/bijligrid/internal/client/storage"
	"github.com/dmitrijs2005/bijligrid/internal/client/wallet"
	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/logging"
)

// ---- helpers ----

func setupStore(t *testing.T) *credentials.Store {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "bijli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return credentials.NewStore(storage.NewSQLiteRepository(db))
}

func setupAuth(t *testing.T, p wallet.Provider) (AuthService, *session.Manager, *credentials.Store) {
	t.Helper()
	store := setupStore(t)
	sm := session.NewManager(p, logging.NewNop())
	return NewAuthService(store, sm, logging.NewNop()), sm, store
}

// ---- tests ----

func TestAuth_SignUpLogsIn(t *testing.T) {
	ctx := context.Background()
	auth, sm, store := setupAuth(t, nil)

	require.NoError(t, auth.SignUp(ctx, " a@x.io ", "alice", []byte("pw"), []byte("pw")))

	u, ok := sm.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, session.User{Username: "alice", Email: "a@x.io"}, u)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAuth_SignUpPasswordMismatch(t *testing.T) {
	ctx := context.Background()
	auth, sm, store := setupAuth(t, nil)

	err := auth.SignUp(ctx, "a@x.io", "alice", []byte("pw"), []byte("pw2"))
	require.ErrorIs(t, err, common.ErrPasswordMismatch)
	assert.False(t, sm.IsLoggedIn())

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuth_SignUpDuplicate(t *testing.T) {
	ctx := context.Background()
	auth, sm, _ := setupAuth(t, nil)

	require.NoError(t, auth.SignUp(ctx, "a@x.io", "alice", []byte("pw"), []byte("pw")))
	auth.Logout(ctx)

	err := auth.SignUp(ctx, "a@x.io", "mallory", []byte("other"), []byte("other"))
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.False(t, sm.IsLoggedIn())
}

func TestAuth_LoginLogout(t *testing.T) {
	ctx := context.Background()
	auth, sm, _ := setupAuth(t, nil)
	require.NoError(t, auth.SignUp(ctx, "a@x.io", "alice", []byte("pw"), []byte("pw")))
	auth.Logout(ctx)
	assert.False(t, sm.IsLoggedIn())

	require.ErrorIs(t, auth.Login(ctx, "a@x.io", []byte("PW")), common.ErrInvalidCredentials)
	require.ErrorIs(t, auth.Login(ctx, "b@x.io", []byte("pw")), common.ErrInvalidCredentials)
	assert.False(t, sm.IsLoggedIn())

	require.NoError(t, auth.Login(ctx, "a@x.io", []byte("pw")))
	u, ok := sm.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
}

func TestAuth_SignUpRequiresEveryField(t *testing.T) {
	ctx := context.Background()
	auth, sm, store := setupAuth(t, nil)

	tests := []struct {
		name            string
		email, username string
		password        string
	}{
		{name: "blank email", email: "   ", username: "alice", password: "pw"},
		{name: "blank username", email: "a@x.io", username: " \t", password: "pw"},
		{name: "empty password", email: "a@x.io", username: "alice", password: ""},
		{name: "all empty", email: "", username: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.SignUp(ctx, tt.email, tt.username, []byte(tt.password), []byte(tt.password))
			require.ErrorIs(t, err, common.ErrFieldRequired)
			assert.False(t, sm.IsLoggedIn())
		})
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.ErrorIs(t, auth.Login(ctx, "", []byte("")), common.ErrFieldRequired)
	assert.False(t, sm.IsLoggedIn())
}

func TestAuth_SignUpTrimsUsername(t *testing.T) {
	ctx := context.Background()
	auth, sm, _ := setupAuth(t, nil)

	require.NoError(t, auth.SignUp(ctx, "a@x.io", "  alice ", []byte("pw"), []byte("pw")))
	u, ok := sm.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
}
