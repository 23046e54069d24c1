package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/dbx"
	"github.com/dmitrijs2005/bijligrid/internal/server/models"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/assets"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/history"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byWallet  map[string]*models.User
	getErr    error
	createErr error
	created   int
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	if u.ID == "" {
		u.ID = "u-new"
	}
	f.byWallet[u.WalletAddress] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByWalletAddress(_ context.Context, addr string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byWallet[addr]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeProfilesRepo struct {
	byUser    map[string]*models.Profile
	getErr    error
	createErr error
	created   []*models.Profile
}

func (f *fakeProfilesRepo) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if p.ID == "" {
		p.ID = "p-new"
	}
	f.created = append(f.created, p)
	f.byUser[p.UserID] = p
	return p, nil
}

func (f *fakeProfilesRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfilesRepo) GetByID(_ context.Context, id string) (*models.Profile, error) {
	for _, p := range f.byUser {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeAssetsRepo struct {
	list    []models.EnergyAsset
	listErr error
}

func (f *fakeAssetsRepo) Create(_ context.Context, a *models.EnergyAsset) (*models.EnergyAsset, error) {
	f.list = append(f.list, *a)
	return a, nil
}

func (f *fakeAssetsRepo) ListByProfile(_ context.Context, profileID string) ([]models.EnergyAsset, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.EnergyAsset, 0)
	for _, a := range f.list {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct{}

func (f *fakeHistoryRepo) Create(_ context.Context, h *models.History) (*models.History, error) {
	return h, nil
}

func (f *fakeHistoryRepo) ListByProfile(context.Context, string) ([]models.History, error) {
	return nil, nil
}

type fakeRepoManager struct {
	users    *fakeUsersRepo
	profiles *fakeProfilesRepo
	assets   *fakeAssetsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    &fakeUsersRepo{byWallet: map[string]*models.User{}},
		profiles: &fakeProfilesRepo{byUser: map[string]*models.Profile{}},
		assets:   &fakeAssetsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository { return m.profiles }
func (m *fakeRepoManager) Assets(dbx.DBTX) assets.Repository { return m.assets }
func (m *fakeRepoManager) History(dbx.DBTX) history.Repository { return &fakeHistoryRepo{} }
