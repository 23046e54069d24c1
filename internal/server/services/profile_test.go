package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bijligrid/internal/server/models"
)

const wallet = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"

func TestFindOrCreate_CreatesUserAndDefaultProfile(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewProfileService(db, rm)

	p, err := s.FindOrCreate(context.Background(), wallet, "")
	require.NoError(t, err)

	assert.Equal(t, "Node_0x71C7", p.Name)
	assert.Equal(t, models.RoleConsumer, p.Role)
	assert.Equal(t, models.DefaultReputation, p.Reputation)
	assert.Equal(t, "u-new", p.UserID)
	assert.Equal(t, 1, rm.users.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreate_UsesGivenName(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	s := NewProfileService(db, newFakeRepoManager())

	p, err := s.FindOrCreate(context.Background(), wallet, "Solar Farm")
	require.NoError(t, err)
	assert.Equal(t, "Solar Farm", p.Name)
}

func TestFindOrCreate_ReturnsExistingProfile(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	rm.users.byWallet[wallet] = &models.User{ID: "u-1", WalletAddress: wallet}
	existing := &models.Profile{ID: "p-1", UserID: "u-1", Name: "Prashant User", Role: models.RoleProsumer, Reputation: 85}
	rm.profiles.byUser["u-1"] = existing

	p, err := NewProfileService(db, rm).FindOrCreate(context.Background(), wallet, "Ignored")
	require.NoError(t, err)
	assert.Same(t, existing, p)
	assert.Empty(t, rm.profiles.created)
	assert.Zero(t, rm.users.created)
}

func TestFindOrCreate_ExistingUserWithoutProfile(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	rm.users.byWallet[wallet] = &models.User{ID: "u-1", WalletAddress: wallet}

	p, err := NewProfileService(db, rm).FindOrCreate(context.Background(), wallet, "")
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.UserID)
	assert.Len(t, rm.profiles.created, 1)
}

func TestFindOrCreate_EmptyWallet(t *testing.T) {
	db, _ := newSQLMockDB(t)
	_, err := NewProfileService(db, newFakeRepoManager()).FindOrCreate(context.Background(), "  ", "x")
	require.ErrorIs(t, err, ErrWalletAddressRequired)
}

func TestFindOrCreate_RollsBackOnError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	rm.profiles.createErr = errors.New("insert failed")

	_, err := NewProfileService(db, rm).FindOrCreate(context.Background(), wallet, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating profile")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreate_UserLookupError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	rm.users.getErr = errors.New("conn refused")

	_, err := NewProfileService(db, rm).FindOrCreate(context.Background(), wallet, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error searching user")
}

func TestFindOrCreate_BeginError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("no tx"))

	_, err := NewProfileService(db, newFakeRepoManager()).FindOrCreate(context.Background(), wallet, "")
	require.EqualError(t, err, "no tx")
}
