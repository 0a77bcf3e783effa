package game

import (
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/creature"
	"github.com/g1tyx/fairies-and-unicorns/internal/econ"
	"github.com/g1tyx/fairies-and-unicorns/internal/producer"
)

// The simulation advances in quarter-second steps. Queen speed is
// measured in distance per hour, so one step covers speed/14400.
const (
	TicksPerSecond = 4
	TickInterval   = 250 * time.Millisecond

	stepsPerHour = 14400
)

// Engine advances and mutates world state. It holds no state of its
// own beyond tuning and a clock, so it is safe to share one value
// across calls.
type Engine struct {
	Bal   config.Balance
	Clock Clock
}

func NewEngine(bal config.Balance, clock Clock) Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return Engine{Bal: bal, Clock: clock}
}

func (e Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// QueenSpeed is the queen's current pace in distance per hour. The
// baseline walk is 1; accelerators and new-shoe charms add to it and
// prestige doublings multiply the total.
func (e Engine) QueenSpeed(st *State) float64 {
	p := st.Ascension.Prestige
	speed := 1.0
	accelMult := p.AcceleratorPowerMult()
	for _, a := range st.QueenAccelerators {
		speed += a.Amount * a.SpeedBoost * a.ProductivityMult * accelMult
	}
	if st.LeprechaunUnlocked {
		shoes := st.LeprechaunProducers[producer.LeprechaunNewShoes]
		speed += shoes.Amount * shoes.Effect * p.LeprechaunEffectsMult() * p.NewShoesPowerMult()
	}
	return speed * p.RoyalSpeedMult()
}

// EffectiveMaxDistance shortens the journey by the space-shrink charm,
// capped at a 90% reduction. Charms are inert while the leprechaun is
// still locked.
func (e Engine) EffectiveMaxDistance(st *State) float64 {
	if !st.LeprechaunUnlocked {
		return st.Queen.MaxDistance
	}
	shrink := st.LeprechaunProducers[producer.LeprechaunSpaceShrink]
	reduction := minf(0.9, shrink.Amount*shrink.Effect*st.Ascension.Prestige.LeprechaunEffectsMult())
	return st.Queen.MaxDistance * (1 - reduction)
}

// ArrivalEstimate formats how long the queen still needs at her
// current speed.
func (e Engine) ArrivalEstimate(st *State) string {
	traveled := st.Queen.MaxDistance - st.Queen.Distance
	remaining := maxf(0, e.EffectiveMaxDistance(st)-traveled)
	return econ.FormatArrival(remaining, e.QueenSpeed(st))
}

// GoldProduction is gold per second before leprechaun unlock gates it.
func (e Engine) GoldProduction(st *State) float64 {
	if !st.LeprechaunUnlocked {
		return 0
	}
	p := st.Ascension.Prestige
	trick := st.LeprechaunProducers[producer.LeprechaunTrickery]
	mult := 1 + trick.Amount*(trick.Effect*p.LeprechaunEffectsMult()*p.TrickeryPowerMult())
	return st.Rainbows.Amount * e.Bal.GoldPerRainbow * mult * p.RainbowGoldMult()
}

// ManualClickPower is the molecule yield of one manual click. Builders
// sweeten manual clicks once their combined speed passes 1.
func (e Engine) ManualClickPower(st *State, k creature.Kind) float64 {
	ac := st.Autoclicker(k)
	return 1 + maxf(0, ac.ClicksPerSecond*st.Ascension.Prestige.AutoclickerSpeedMult()-1)
}

// Tick advances the world by one quarter second of real play.
func (e Engine) Tick(st *State) {
	if st.Paused {
		return
	}
	e.step(st)
	st.RefreshStats()
}

// step is a single quarter-second of simulation, shared by live play
// and offline catch-up. Reports whether the queen arrived during it.
func (e Engine) step(st *State) bool {
	p := st.Ascension.Prestige

	st.Queen.Speed = e.QueenSpeed(st)
	boost := st.Queen.Speed
	rainbowPerCreature := floorf(st.Rainbows.Amount*st.Rainbows.Production + p.RainbowMoleculeBonus())

	// Lines are cross-wired: fairies brew unicorn molecules and
	// unicorns brew fairy molecules. Rates round down per creature.
	fairyRate := floorf((st.Fairies.ProdPower + p.FairyMasteryBonus()) * boost)
	unicornRate := floorf((st.Unicorns.ProdPower + p.UnicornMasteryBonus()) * boost)
	if st.Rainbows.MakingFairies {
		fairyRate += rainbowPerCreature
	} else {
		unicornRate += rainbowPerCreature
	}
	st.Unicorns.Progress += st.Fairies.Amount * fairyRate / TicksPerSecond
	st.Fairies.Progress += st.Unicorns.Amount * unicornRate / TicksPerSecond

	// Builders click their own line.
	acMult := p.AutoclickerSpeedMult()
	fairyClicks := floorf(st.FairyAutoclicker.ClicksPerSecond * acMult)
	unicornClicks := floorf(st.UnicornAutoclicker.ClicksPerSecond * acMult)
	st.Fairies.Progress += st.FairyAutoclicker.Amount * fairyClicks / TicksPerSecond
	st.Unicorns.Progress += st.UnicornAutoclicker.Amount * unicornClicks / TicksPerSecond

	// Zombies only stir once a rainbow exists. Cross-wired like the
	// living, and they share the rainbow boost.
	if st.Rainbows.Amount >= 1 {
		zfRate := floorf(st.ZombieFairies.ProdPower * p.ZombieFairiesMult() * boost)
		zuRate := floorf(st.ZombieUnicorns.ProdPower * p.ZombieUnicornsMult() * boost)
		if st.Rainbows.MakingFairies {
			zfRate += rainbowPerCreature
		} else {
			zuRate += rainbowPerCreature
		}
		st.Unicorns.Progress += st.ZombieFairies.Amount * zfRate / TicksPerSecond
		st.Fairies.Progress += st.ZombieUnicorns.Amount * zuRate / TicksPerSecond
	}

	settleCreatures(st)

	if st.Fairies.Amount >= 10 {
		st.GlitterUnlocked = true
	}
	if st.Unicorns.Amount >= 10 {
		st.StardustUnlocked = true
	}

	glitterProd := 0.0
	for _, pr := range st.GlitterProducers {
		glitterProd += pr.Amount * pr.Production * p.GlitterMult()
	}
	stardustProd := 0.0
	for _, pr := range st.StardustProducers {
		stardustProd += pr.Amount * pr.Production * p.StardustMult()
	}
	st.Glitter += glitterProd / TicksPerSecond
	st.Stardust += stardustProd / TicksPerSecond

	if st.LeprechaunUnlocked {
		gold := e.GoldProduction(st) / TicksPerSecond
		st.Gold += gold
		st.Ascension.TotalGoldGenerated += gold
	}

	cloudProd := 0.0
	for _, pr := range st.CloudProducers {
		cloudProd += pr.Amount * pr.Production * p.CloudsMult()
	}
	st.Rainbows.Progress += cloudProd / TicksPerSecond
	st.Rainbows.Settle()

	arrived := false
	if !st.GameWon {
		st.Queen.Distance -= st.Queen.Speed / stepsPerHour
		traveled := st.Queen.MaxDistance - st.Queen.Distance
		if e.EffectiveMaxDistance(st)-traveled <= 0 {
			st.Queen.Distance = 0
			st.GameWon = true
			st.Paused = true
			arrived = true
		}
	}

	e.runAutobuyer(st, creature.Fairies)
	e.runAutobuyer(st, creature.Unicorns)

	return arrived
}

// settleCreatures hatches pending molecules on both lines. Amounts
// stay whole even after fractional spends elsewhere.
func settleCreatures(st *State) {
	st.Fairies.Settle()
	st.Unicorns.Settle()
	st.Fairies.Amount = floorf(st.Fairies.Amount)
	st.Unicorns.Amount = floorf(st.Unicorns.Amount)
}

// runAutobuyer drips one step of zombie purchasing. Zombies cost live
// creatures at the flat base price; the buyer refuses any purchase
// that would eat into the configured reserve, and an unaffordable
// burst forfeits the accumulated progress instead of queueing.
func (e Engine) runAutobuyer(st *State, k creature.Kind) {
	z := st.Zombie(k)
	ab := &z.Autobuyer
	if !ab.Enabled {
		return
	}
	rate := ab.Rate + st.Ascension.Prestige.AutobuyerRateBonus(string(k))
	ab.Progress += rate * 0.25
	if ab.Progress < 1 {
		return
	}
	n := floorf(ab.Progress)
	cost := n * z.BaseCost
	c := st.Creature(k)
	if c.Amount >= cost && c.Amount-cost > ab.KeepMinimum {
		c.Amount -= cost
		c.RefreshCost()
		z.Amount += n
		ab.Progress -= n
	} else {
		ab.Progress = 0
	}
}

// OfflineGains summarizes what accrued while the player was away.
type OfflineGains struct {
	Fairies       float64 `json:"fairies"`
	Unicorns      float64 `json:"unicorns"`
	Glitter       float64 `json:"glitter"`
	Stardust      float64 `json:"stardust"`
	Gold          float64 `json:"gold"`
	Rainbows      float64 `json:"rainbows"`
	QueenDistance float64 `json:"queen_distance"`
	Duration      string  `json:"duration"`
}

// OfflineProgress simulates the time between the last save and now at
// reduced efficiency, capped at the configured window. Short absences
// below the minimum are ignored. Returns the gains and whether any
// catch-up ran.
func (e Engine) OfflineProgress(st *State, now time.Time) (OfflineGains, bool) {
	away := now.Sub(st.LastSaveTime)
	if away < time.Duration(e.Bal.OfflineMinSeconds)*time.Second {
		return OfflineGains{}, false
	}
	window := time.Duration(e.Bal.OfflineCapHours) * time.Hour
	if away > window {
		away = window
	}

	efficiency := minf(0.9, e.Bal.OfflineBaseEfficiency+st.Ascension.Prestige.OfflineMasteryBonus())
	effectiveSeconds := away.Seconds() * efficiency

	before := offlineSnapshot(st)

	// 60-second chunks keep long absences cheap to simulate.
	const chunkSeconds = 60
	remaining := effectiveSeconds
	for remaining > 0 {
		chunk := minf(chunkSeconds, remaining)
		remaining -= chunk
		if e.simulateChunk(st, chunk) {
			break
		}
	}

	st.RefreshStats()

	after := offlineSnapshot(st)
	return OfflineGains{
		Fairies:       after.fairies - before.fairies,
		Unicorns:      after.unicorns - before.unicorns,
		Glitter:       after.glitter - before.glitter,
		Stardust:      after.stardust - before.stardust,
		Gold:          after.gold - before.gold,
		Rainbows:      after.rainbows - before.rainbows,
		QueenDistance: before.distance - after.distance,
		Duration:      econ.FormatOfflineTime(away),
	}, true
}

// simulateChunk runs seconds' worth of steps and reports whether the
// queen arrived mid-chunk.
func (e Engine) simulateChunk(st *State, seconds float64) bool {
	iterations := int(seconds * TicksPerSecond)
	for i := 0; i < iterations; i++ {
		if e.step(st) {
			return true
		}
	}
	return false
}

type offlineState struct {
	fairies, unicorns, glitter, stardust, gold, rainbows, distance float64
}

func offlineSnapshot(st *State) offlineState {
	return offlineState{
		fairies:  st.Fairies.Amount,
		unicorns: st.Unicorns.Amount,
		glitter:  st.Glitter,
		stardust: st.Stardust,
		gold:     st.Gold,
		rainbows: st.Rainbows.Amount,
		distance: st.Queen.Distance,
	}
}
