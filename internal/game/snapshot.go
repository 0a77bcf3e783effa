package game

import (
	"github.com/g1tyx/fairies-and-unicorns/internal/econ"
)

// Snapshot is the read model handed to clients: the raw state plus
// the derived figures the simulation recomputes every tick.
type Snapshot struct {
	State *State `json:"state"`

	QueenSpeed            float64 `json:"queen_speed"`
	EffectiveMaxDistance  float64 `json:"effective_max_distance"`
	EffectiveDistanceLeft float64 `json:"effective_distance_left"`
	ArrivalEstimate       string  `json:"arrival_estimate"`

	GoldPerSecond   float64 `json:"gold_per_second"`
	AvariceDiscount float64 `json:"avarice_discount"`

	FairyClickPower   float64 `json:"fairy_click_power"`
	UnicornClickPower float64 `json:"unicorn_click_power"`

	PendingEssence    float64 `json:"pending_essence"`
	AscensionUnlocked bool    `json:"ascension_unlocked"`

	TimePlayed string `json:"time_played"`
}

func (e Engine) Snapshot(st *State) Snapshot {
	traveled := st.Queen.MaxDistance - st.Queen.Distance
	effMax := e.EffectiveMaxDistance(st)
	pending := e.RoyalEssenceGain(st)
	return Snapshot{
		State:                 st,
		QueenSpeed:            e.QueenSpeed(st),
		EffectiveMaxDistance:  effMax,
		EffectiveDistanceLeft: maxf(0, effMax-traveled),
		ArrivalEstimate:       e.ArrivalEstimate(st),
		GoldPerSecond:         e.GoldProduction(st),
		AvariceDiscount:       e.AvariceDiscount(st),
		FairyClickPower:       e.ManualClickPower(st, "fairies"),
		UnicornClickPower:     e.ManualClickPower(st, "unicorns"),
		PendingEssence:        pending,
		AscensionUnlocked:     st.RoyalChamberUnlocked || pending > 0,
		TimePlayed:            econ.FormatPlayTime(st.Stats.TotalTimePlayed + e.now().Sub(st.Stats.GameStartTime)),
	}
}
