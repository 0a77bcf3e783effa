package game

import (
	"errors"
	"math"
)

var ErrNotEnoughProgress = errors.New("not enough progress to ascend")

// RoyalEssenceGain is the essence a run would yield if it ended now.
// Distance walked, gold held, and minutes played each contribute their
// square root; nothing accrues before the leprechaun is unlocked.
func (e Engine) RoyalEssenceGain(st *State) float64 {
	if !st.LeprechaunUnlocked {
		return 0
	}
	traveled := st.Queen.MaxDistance - st.Queen.Distance
	minutes := e.now().Sub(st.Ascension.RunStartTime).Minutes()
	raw := math.Sqrt(traveled) + math.Sqrt(st.Gold) + math.Sqrt(minutes)
	return floorf(raw * st.Ascension.Prestige.EssenceMult())
}

// PerformAscension banks the pending essence and starts a fresh run.
// Prestige levels, milestones, rack width, bulk modes, lifetime stats,
// and the queen's traveled distance carry over; everything else resets,
// including the one-time unlock chain. Returns the essence gained.
func (e Engine) PerformAscension(st *State) (float64, error) {
	gained := e.RoyalEssenceGain(st)
	if gained <= 0 {
		return 0, ErrNotEnoughProgress
	}
	now := e.now()
	traveled := st.Queen.MaxDistance - st.Queen.Distance

	next := NewState(e.Bal, now)
	next.GameWon = st.GameWon
	next.Paused = st.Paused
	next.RoyalChamberUnlocked = true
	next.Queen.Distance = next.Queen.MaxDistance - traveled

	next.UpgradeSlots = st.UpgradeSlots
	e.refreshSlotCosts(next)
	next.BulkModes = st.BulkModes

	next.Ascension.RoyalEssence = st.Ascension.RoyalEssence + gained
	next.Ascension.TotalAscensions = st.Ascension.TotalAscensions + 1
	next.Ascension.Prestige = copyLevels(st.Ascension.Prestige)
	next.Ascension.Milestones = copyFlags(st.Ascension.Milestones)
	next.Ascension.RunStartTime = now

	next.Stats = st.Stats
	next.Stats.TotalTimePlayed += now.Sub(st.Stats.GameStartTime)
	next.Stats.GameStartTime = now

	e.applyAscensionGrants(next)

	*st = *next
	st.RefreshStats()
	e.GenerateUpgrades(st)
	return gained, nil
}

// applyAscensionGrants hands out the starting-resource prestige levels
// at the top of a new run.
func (e Engine) applyAscensionGrants(st *State) {
	p := st.Ascension.Prestige
	st.Rainbows.Amount += p.StartingRainbows()
	st.Fairies.Amount += p.StartingFairies()
	st.Unicorns.Amount += p.StartingUnicorns()
	st.Glitter += p.StartingGlitter()
	st.Stardust += p.StartingStardust()
	st.FairyAutoclicker.Amount += p.StartingAutoclickers()
	st.UnicornAutoclicker.Amount += p.StartingAutoclickers()

	st.Fairies.RefreshCost()
	st.Unicorns.RefreshCost()
	st.Rainbows.RefreshCost()
	st.FairyAutoclicker.RefreshCost()
	st.UnicornAutoclicker.RefreshCost()
}

func copyLevels(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyFlags(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
