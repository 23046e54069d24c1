package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bijligrid/internal/server/models"
)

const (
	profileOne = "6f1c2a9e-3b7d-4c55-9a0e-1d2f3a4b5c6d"
	profileTwo = "0b8e4f2a-91c3-4d7e-8f60-a1b2c3d4e5f6"
)

func TestAssetService_ListByProfile(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.assets.list = []models.EnergyAsset{
		{ID: "a-1", ProfileID: profileOne, Type: models.AssetSolar},
		{ID: "a-2", ProfileID: profileTwo, Type: models.AssetWind},
	}

	got, err := NewAssetService(db, rm).ListByProfile(context.Background(), profileOne)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a-1", got[0].ID)
}

func TestAssetService_ListByProfile_NonUUID(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.assets.listErr = errors.New("invalid input syntax for type uuid")

	for _, id := range []string{"nobody", "p-1", "", "6f1c2a9e-3b7d"} {
		got, err := NewAssetService(db, rm).ListByProfile(context.Background(), id)
		require.NoError(t, err, id)
		assert.NotNil(t, got, id)
		assert.Empty(t, got, id)
	}
}

func TestAssetService_ListByProfile_Error(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.assets.listErr = errors.New("boom")

	_, err := NewAssetService(db, rm).ListByProfile(context.Background(), profileOne)
	require.Error(t, err)
}

func TestStatsService(t *testing.T) {
	s := NewStatsService()
	ctx := context.Background()

	assert.Equal(t, s.Stats(ctx, ""), s.Stats(ctx, "p-1"))
	assert.Equal(t, "1.2 GW/h", s.Stats(ctx, "").TotalEnergy)
	assert.Equal(t, models.Health{Status: "ACTIVE", System: "BIJLI_CORE_V2", Version: "2.0.0"}, s.Health(ctx))
}
