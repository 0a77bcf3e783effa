package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoyalEssenceGain_GatedOnLeprechaun(t *testing.T) {
	e, st, _ := newEngineForTest()
	st.Queen.Distance = st.Queen.MaxDistance - 10000
	st.Gold = 2500

	assert.Equal(t, 0.0, e.RoyalEssenceGain(st))

	st.LeprechaunUnlocked = true
	// sqrt(10000) + sqrt(2500) + sqrt(0 minutes) = 150
	assert.Equal(t, 150.0, e.RoyalEssenceGain(st))
}

func TestRoyalEssenceGain_TimeAndGathering(t *testing.T) {
	e, st, fake := newEngineForTest()
	st.LeprechaunUnlocked = true
	st.Gold = 100
	fake.Advance(225 * time.Minute)

	// sqrt(100) + sqrt(225) = 25
	assert.Equal(t, 25.0, e.RoyalEssenceGain(st))

	st.Ascension.Prestige["royal-gathering"] = 2
	assert.Equal(t, 37.0, e.RoyalEssenceGain(st)) // floor(25 * 1.5)
}

func TestPerformAscension_RejectsEmptyRun(t *testing.T) {
	e, st, _ := newEngineForTest()

	_, err := e.PerformAscension(st)
	assert.ErrorIs(t, err, ErrNotEnoughProgress)
}

func TestPerformAscension_ResetsRunKeepsPrestige(t *testing.T) {
	e, st, fake := newEngineForTest()
	st.LeprechaunUnlocked = true
	st.GlitterUnlocked = true
	st.RainbowUnlocked = true
	st.Glitter = 12345
	st.Gold = 2500
	st.Rainbows.Amount = 7
	st.Fairies.ProdPower = 9
	st.Queen.Distance = st.Queen.MaxDistance - 10000
	st.Ascension.RoyalEssence = 10
	st.Ascension.TotalAscensions = 1
	st.Ascension.Prestige["royal-speed"] = 2
	st.BulkModes.Glitter = 10
	st.UpgradeSlots.Current = 5
	st.OneTimePurchased["unlock-rainbows"] = true
	st.Stats.TotalUpgrades = 42
	runStart := st.Stats.GameStartTime
	fake.Advance(time.Hour)

	gained, err := e.PerformAscension(st)
	require.NoError(t, err)
	// sqrt(10000) + sqrt(2500) + sqrt(60) = 157.74, floored
	assert.Equal(t, 157.0, gained)

	// Carried across the reset.
	assert.Equal(t, 167.0, st.Ascension.RoyalEssence)
	assert.Equal(t, 2, st.Ascension.TotalAscensions)
	assert.Equal(t, 2, st.Ascension.Prestige["royal-speed"])
	assert.Equal(t, 10, st.BulkModes.Glitter)
	assert.Equal(t, 5, st.UpgradeSlots.Current)
	assert.True(t, st.RoyalChamberUnlocked)
	assert.Equal(t, 42, st.Stats.TotalUpgrades)
	assert.Equal(t, time.Hour, st.Stats.TotalTimePlayed)
	assert.NotEqual(t, runStart, st.Stats.GameStartTime)

	// The journey stays walked.
	assert.Equal(t, st.Queen.MaxDistance-10000, st.Queen.Distance)

	// Everything else is a fresh run.
	assert.Equal(t, 0.0, st.Glitter)
	assert.Equal(t, 0.0, st.Gold)
	assert.Equal(t, 0.0, st.Rainbows.Amount)
	assert.Equal(t, 1.0, st.Fairies.ProdPower)
	assert.False(t, st.LeprechaunUnlocked)
	assert.False(t, st.RainbowUnlocked)
	assert.False(t, st.GlitterUnlocked)
	assert.Empty(t, st.OneTimePurchased)
	assert.Len(t, st.Upgrades, 5)
}

func TestPerformAscension_GrantsStartingResources(t *testing.T) {
	e, st, _ := newEngineForTest()
	st.LeprechaunUnlocked = true
	st.Gold = 10000
	st.Ascension.Prestige["rainbow-genesis"] = 2
	st.Ascension.Prestige["fairies-favor"] = 1
	st.Ascension.Prestige["glitter-galore"] = 3
	st.Ascension.Prestige["auto-autoclickers"] = 1

	_, err := e.PerformAscension(st)
	require.NoError(t, err)

	assert.Equal(t, 2.0, st.Rainbows.Amount)
	assert.Equal(t, 10.0, st.Fairies.Amount)
	assert.Equal(t, 3000.0, st.Glitter)
	assert.Equal(t, 10.0, st.FairyAutoclicker.Amount)
	assert.Equal(t, 10.0, st.UnicornAutoclicker.Amount)

	// Granted creatures raise the next hatch price.
	assert.Equal(t, 26.0, st.Fairies.Cost) // ceil(10 * 1.1^10)
}

func TestPerformAscension_PrestigeMapIsCopied(t *testing.T) {
	e, st, _ := newEngineForTest()
	st.LeprechaunUnlocked = true
	st.Gold = 10000
	st.Ascension.Prestige["royal-speed"] = 1
	old := st.Ascension.Prestige

	_, err := e.PerformAscension(st)
	require.NoError(t, err)

	st.Ascension.Prestige["royal-speed"] = 9
	assert.Equal(t, 1, old["royal-speed"])
}
