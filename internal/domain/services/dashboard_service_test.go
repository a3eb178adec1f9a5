package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql/testutil"
	"github.com/praxisapp/praxis/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is a map-backed stand-in for the Redis cache.
type memoryCache struct {
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.entries[key] = fmt.Sprintf("%v", value)
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	return m.entries[key], nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }
func (m *memoryCache) Close() error               { return nil }

func newDashboardService(t *testing.T) (*DashboardService, *memoryCache, *testutil.TestDB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	cache := newMemoryCache()
	svc := NewDashboardService(postgresql.NewDashboardRepository(db.DB), cache, logger.NewForTesting())
	return svc, cache, db
}

func TestDashboardService_StatsCachesUntilInvalidated(t *testing.T) {
	svc, cache, db := newDashboardService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	db.CreateTestClient(t, owner)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActiveClients)
	assert.Contains(t, cache.entries, DashboardCacheKey)

	// A second client does not show until the cache entry is dropped.
	db.CreateTestClient(t, owner)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActiveClients)

	svc.Invalidate(ctx)
	assert.NotContains(t, cache.entries, DashboardCacheKey)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ActiveClients)
}

func TestDashboardService_Activity(t *testing.T) {
	svc, cache, db := newDashboardService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	db.CreateTestDocument(t, client, owner)

	contract := &models.Contract{
		Title:          "Retainer",
		ContractNumber: "CONT-2026-9001",
		ClientID:       client.ID,
		Status:         models.ContractActive,
	}
	require.NoError(t, db.DB.Create(contract).Error)

	activity, err := svc.Activity(ctx)
	require.NoError(t, err)
	assert.Len(t, activity.Documents, 1)
	assert.Len(t, activity.Contracts, 1)
	assert.Empty(t, activity.Tasks)
	assert.Contains(t, cache.entries, DashboardActivityCacheKey)

	// Invalidate clears both dashboard entries.
	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	svc.Invalidate(ctx)
	assert.Empty(t, cache.entries)
}
