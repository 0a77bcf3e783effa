package prestige

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	count := 0
	for _, cat := range Catalog() {
		for _, u := range cat.Upgrades {
			assert.False(t, seen[u.ID], "duplicate id %s", u.ID)
			seen[u.ID] = true
			assert.Greater(t, u.MaxLevel, 0, u.ID)
			assert.Greater(t, u.Cost(0), 0.0, u.ID)
			count++
		}
	}
	assert.Equal(t, 23, count)
}

func TestFind(t *testing.T) {
	u, ok := Find("royal-speed")
	require.True(t, ok)
	assert.Equal(t, "Royal Speed", u.Name)
	assert.Equal(t, 5, u.MaxLevel)

	_, ok = Find("nope")
	assert.False(t, ok)
}

func TestCostCurves(t *testing.T) {
	mastery, _ := Find("fairy-mastery")
	assert.Equal(t, 100.0, mastery.Cost(0))
	assert.Equal(t, 300.0, mastery.Cost(2))

	speed, _ := Find("royal-speed")
	assert.Equal(t, 1000.0, speed.Cost(0))
	assert.Equal(t, 2000.0, speed.Cost(1))
	assert.Equal(t, 8000.0, speed.Cost(3))
}

func TestTotalCostToMax(t *testing.T) {
	genesis, _ := Find("rainbow-genesis")
	// 500 + 1000 + 1500
	assert.Equal(t, 3000.0, TotalCostToMax(genesis))
}

func TestLevels_NeutralWhenEmpty(t *testing.T) {
	l := Levels{}
	assert.Equal(t, 0.0, l.FairyMasteryBonus())
	assert.Equal(t, 1.0, l.GlitterMult())
	assert.Equal(t, 1.0, l.RoyalSpeedMult())
	assert.Equal(t, 1.0, l.AutoclickerSpeedMult())
	assert.Equal(t, 0.0, l.OfflineMasteryBonus())
	assert.Equal(t, 0.0, l.AutobuyerRateBonus("fairies"))
}

func TestLevels_Bonuses(t *testing.T) {
	l := Levels{
		"fairy-mastery":       3,
		"glitter-production":  2,
		"royal-speed":         2,
		"offline-mastery":     4,
		"more-zombie-fairies": 2,
		"royal-gathering":     4,
		"fairies-favor":       2,
		"glitter-galore":      3,
	}
	assert.Equal(t, 3.0, l.FairyMasteryBonus())
	assert.Equal(t, 1.5, l.GlitterMult())
	assert.Equal(t, 4.0, l.RoyalSpeedMult())
	assert.InDelta(t, 0.4, l.OfflineMasteryBonus(), 1e-12)
	assert.Equal(t, 4.0, l.AutobuyerRateBonus("fairies"))
	assert.Equal(t, 0.0, l.AutobuyerRateBonus("unicorns"))
	assert.Equal(t, 2.0, l.EssenceMult())
	assert.Equal(t, 20.0, l.StartingFairies())
	assert.Equal(t, 3000.0, l.StartingGlitter())
}
