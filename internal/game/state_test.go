package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/creature"
)

func TestNewState_StartsAtTheCastleGates(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewState(config.Default(), now)

	assert.Equal(t, st.Queen.MaxDistance, st.Queen.Distance)
	assert.Equal(t, 10.0, st.Fairies.Cost)
	assert.Equal(t, 100.0, st.Unicorns.Cost)
	assert.Equal(t, 1000.0, st.Rainbows.Cost)
	assert.True(t, st.Rainbows.MakingFairies)
	assert.Equal(t, now, st.Ascension.RunStartTime)
	assert.Equal(t, now, st.Stats.GameStartTime)
	assert.False(t, st.GlitterUnlocked)
}

func TestSpendCurrency_RepricesCreatures(t *testing.T) {
	st := NewState(config.Default(), time.Now())
	st.Fairies.Amount = 12
	st.Fairies.RefreshCost()
	before := st.Fairies.Cost

	st.SpendCurrency("fairies", 5)

	assert.Equal(t, 7.0, st.Fairies.Amount)
	assert.Less(t, st.Fairies.Cost, before)
	assert.Equal(t, 20.0, st.Fairies.Cost) // ceil(10 * 1.1^7)
}

func TestSpendCurrency_ResourcesHaveNoPrice(t *testing.T) {
	st := NewState(config.Default(), time.Now())
	st.Glitter = 800
	st.SpendCurrency("glitter", 300)
	assert.Equal(t, 500.0, st.Glitter)
}

func TestCurrencyAmount_CoversEveryLedger(t *testing.T) {
	st := NewState(config.Default(), time.Now())
	st.Fairies.Amount = 1
	st.Unicorns.Amount = 2
	st.Glitter = 3
	st.Stardust = 4
	st.Rainbows.Amount = 5
	st.QueenAccelerators[0].Amount = 6
	st.FairyAutoclicker.Amount = 7
	st.ZombieUnicorns.Amount = 8

	assert.Equal(t, 1.0, st.CurrencyAmount("fairies"))
	assert.Equal(t, 2.0, st.CurrencyAmount("unicorns"))
	assert.Equal(t, 3.0, st.CurrencyAmount("glitter"))
	assert.Equal(t, 4.0, st.CurrencyAmount("stardust"))
	assert.Equal(t, 5.0, st.CurrencyAmount("rainbows"))
	assert.Equal(t, 6.0, st.CurrencyAmount("comets"))
	assert.Equal(t, 7.0, st.CurrencyAmount("fairy-autoclickers"))
	assert.Equal(t, 8.0, st.CurrencyAmount("zombie-unicorns"))
	assert.Equal(t, 0.0, st.CurrencyAmount("wishes"))
}

func TestRainbowSettle_RepricesEachArc(t *testing.T) {
	st := NewState(config.Default(), time.Now())
	st.Rainbows.Progress = 2101

	st.Rainbows.Settle()

	// 1000 then floor(1000 * 1.1) = 1100 both fit; the third arc costs 1210.
	assert.Equal(t, 2.0, st.Rainbows.Amount)
	assert.Equal(t, 1.0, st.Rainbows.Progress)
	assert.Equal(t, 1210.0, st.Rainbows.Cost)
}

func TestRefreshStats_HighWaterMarksOnlyRise(t *testing.T) {
	st := NewState(config.Default(), time.Now())
	st.Glitter = 900
	st.RefreshStats()
	st.Glitter = 100
	st.RefreshStats()

	assert.Equal(t, 900.0, st.Stats.TotalGlitter)
	assert.Equal(t, 100.0, st.Glitter)
}

func TestRefreshStats_DerivedCounters(t *testing.T) {
	st := NewState(config.Default(), time.Now())
	st.ZombieFairies.Amount = 3
	st.ZombieUnicorns.Amount = 4
	st.FairyAutoclicker.Amount = 2
	st.Queen.Distance = st.Queen.MaxDistance - 123
	st.RefreshStats()

	assert.Equal(t, 7.0, st.Stats.TotalZombies)
	assert.Equal(t, 2.0, st.Stats.TotalAutoclickers)
	assert.Equal(t, 123.0, st.Stats.TotalDistanceTraveled)
}

func TestCreatureAccessors_ResolveByKind(t *testing.T) {
	st := NewState(config.Default(), time.Now())
	st.Unicorns.Amount = 9

	assert.Same(t, &st.Unicorns, st.Creature(creature.Unicorns))
	assert.Same(t, &st.Fairies, st.Creature(creature.Fairies))
	assert.Same(t, &st.ZombieFairies, st.Zombie(creature.Fairies))
	assert.Same(t, &st.UnicornAutoclicker, st.Autoclicker(creature.Unicorns))
}
