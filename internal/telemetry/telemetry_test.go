package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_FiltersByTimeAndType(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordEvent(base, EventCreatureClicked, EventMetadata{"kind": "fairies"}))
	require.NoError(t, repo.RecordEvent(base.Add(time.Minute), EventUpgradePurchased, EventMetadata{"name": "Fairy Power"}))
	require.NoError(t, repo.RecordEvent(base.Add(2*time.Minute), EventUpgradePurchased, EventMetadata{"name": "Unicorn Power"}))

	all, err := repo.GetEvents(base, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 1, all[0].ID)

	recent, err := repo.GetEvents(base.Add(90*time.Second), nil)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	purchases, err := repo.GetEvents(base, []EventType{EventUpgradePurchased})
	require.NoError(t, err)
	assert.Len(t, purchases, 2)

	require.NoError(t, repo.Clear())
	all, err = repo.GetEvents(base, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCalculateStats_AggregatesGameEvents(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordEvent(base, EventUpgradePurchased, EventMetadata{"name": "Fairy Power"}))
	require.NoError(t, repo.RecordEvent(base, EventUpgradePurchased, EventMetadata{"name": "Fairy Power"}))
	require.NoError(t, repo.RecordEvent(base, EventUpgradesRerolled, EventMetadata{"kind": "fairies"}))
	require.NoError(t, repo.RecordEvent(base, EventProducerPurchased, EventMetadata{"family": "glitter", "count": 3.0}))
	require.NoError(t, repo.RecordEvent(base, EventAscensionPerformed, EventMetadata{"essence": 150.0}))
	require.NoError(t, repo.RecordEvent(base, EventOfflineReplayed, EventMetadata{"seconds": 3600.0}))
	require.NoError(t, repo.RecordEvent(base, EventGameWon, EventMetadata{}))

	events, err := repo.GetEvents(base, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events, base)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.UpgradePurchases)
	assert.Equal(t, 2, stats.UpgradesByName["Fairy Power"])
	assert.Equal(t, 1, stats.Rerolls)
	assert.Equal(t, 1, stats.ProducersByFamily["glitter"])
	assert.Equal(t, 1, stats.Ascensions)
	assert.Equal(t, 150.0, stats.EssenceGained)
	assert.Equal(t, 3600.0, stats.OfflineSeconds)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 2, stats.EventCounts[EventUpgradePurchased])
}
