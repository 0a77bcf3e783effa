package game

import (
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/creature"
	"github.com/g1tyx/fairies-and-unicorns/internal/prestige"
	"github.com/g1tyx/fairies-and-unicorns/internal/producer"
)

// Rainbows is the rainbow pool. Rainbows are brewed from cloud output
// the same way creatures hatch from molecules. MakingFairies selects
// which creature line the rainbow boost currently feeds.
type Rainbows struct {
	Amount        float64 `json:"amount"`
	Progress      float64 `json:"progress"`
	Cost          float64 `json:"cost"`
	Production    float64 `json:"production"`
	MakingFairies bool    `json:"making_fairies"`
}

// RefreshCost reprices the next rainbow. Rainbow prices round down.
func (r *Rainbows) RefreshCost() {
	r.Cost = maxf(1, floorf(1000*powf(1.1, r.Amount)))
}

// Settle brews rainbows out of accumulated cloud output.
func (r *Rainbows) Settle() {
	for r.Progress >= r.Cost {
		r.Amount++
		r.Progress -= r.Cost
		r.RefreshCost()
	}
}

// Queen tracks the Fairy Queen's journey home. Distance counts down
// from MaxDistance; the game is won when the effective remaining
// distance reaches zero.
type Queen struct {
	Distance    float64 `json:"distance"`
	Speed       float64 `json:"speed"`
	MaxDistance float64 `json:"max_distance"`
}

// UpgradeSlots is the card rack size and the price of widening it.
type UpgradeSlots struct {
	Current          int     `json:"current"`
	Max              int     `json:"max"`
	GlitterSlotCost  float64 `json:"glitter_slot_cost"`
	StardustSlotCost float64 `json:"stardust_slot_cost"`
}

// Autoclicker is a builder that clicks its own creature line. RealCost
// keeps the fractional price, Cost the rounded-up one actually charged.
type Autoclicker struct {
	Amount          float64 `json:"amount"`
	Cost            float64 `json:"cost"`
	RealCost        float64 `json:"real_cost"`
	BaseCost        float64 `json:"base_cost"`
	CostMult        float64 `json:"cost_mult"`
	ClicksPerSecond float64 `json:"clicks_per_second"`
}

func (a *Autoclicker) RefreshCost() {
	a.RealCost = a.BaseCost * powf(a.CostMult, a.Amount)
	a.Cost = maxf(1, ceilf(a.RealCost))
}

// Autobuyer drips zombie purchases, paying with live creatures, while
// keeping at least KeepMinimum of them in reserve.
type Autobuyer struct {
	Enabled     bool    `json:"enabled"`
	Rate        float64 `json:"rate"`
	Progress    float64 `json:"progress"`
	KeepMinimum float64 `json:"keep_minimum"`
}

// Zombie is an undead creature pool. Zombies are only ever bought by
// their autobuyer, at a flat price in live creatures.
type Zombie struct {
	Amount        float64   `json:"amount"`
	Cost          float64   `json:"cost"`
	BaseCost      float64   `json:"base_cost"`
	ProdPower     float64   `json:"prod_power"`
	CostMult      float64   `json:"cost_mult"`
	CostIncreaser float64   `json:"cost_increaser"`
	Autobuyer     Autobuyer `json:"autobuyer"`
}

// DualCost marks an upgrade card that charges two currencies at once,
// both or neither.
type DualCost struct {
	Currency1 string  `json:"currency1"`
	Cost1     float64 `json:"cost1"`
	Currency2 string  `json:"currency2"`
	Cost2     float64 `json:"cost2"`
}

// Card is one dealt upgrade offer. Cost and Currency are frozen at deal
// time from the live template.
type Card struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	Currency    string    `json:"currency"`
	Dual        *DualCost `json:"dual_currency,omitempty"`
}

// BulkModes holds the per-panel purchase quantity. 1 and 10 buy that
// many, -1 means buy as many as affordable.
type BulkModes struct {
	Glitter     int `json:"glitter"`
	Stardust    int `json:"stardust"`
	Cloud       int `json:"cloud"`
	Zombie      int `json:"zombie"`
	Queen       int `json:"queen"`
	Leprechaun  int `json:"leprechaun"`
	Autoclicker int `json:"autoclicker"`
}

// Ascension is the prestige layer carried across runs.
type Ascension struct {
	RoyalEssence       float64         `json:"royal_essence"`
	TotalGoldGenerated float64         `json:"total_gold_generated"`
	RunStartTime       time.Time       `json:"run_start_time"`
	TotalAscensions    int             `json:"total_ascensions"`
	Prestige           prestige.Levels `json:"prestige_upgrades"`
	Milestones         map[string]bool `json:"milestones"`
}

// Stats is the lifetime statistics panel. Max* fields track high-water
// marks, Total* fields cumulative sums or current-run peaks as noted.
type Stats struct {
	GameStartTime   time.Time     `json:"game_start_time"`
	TotalTimePlayed time.Duration `json:"total_time_played"`

	FairyClicks    float64 `json:"fairy_clicks"`
	UnicornClicks  float64 `json:"unicorn_clicks"`
	FairyRerolls   int     `json:"fairy_rerolls"`
	UnicornRerolls int     `json:"unicorn_rerolls"`
	RainbowRerolls int     `json:"rainbow_rerolls"`

	TotalFairies      float64 `json:"total_fairies"`
	TotalUnicorns     float64 `json:"total_unicorns"`
	TotalZombies      float64 `json:"total_zombies"`
	TotalAutoclickers float64 `json:"total_autoclickers"`
	TotalGlitter      float64 `json:"total_glitter"`
	TotalStardust     float64 `json:"total_stardust"`
	TotalRainbows     float64 `json:"total_rainbows"`
	TotalAccelerators float64 `json:"total_accelerators"`
	TotalGold         float64 `json:"total_gold"`

	GlitterProducersBuilt    float64 `json:"glitter_producers_built"`
	StardustProducersBuilt   float64 `json:"stardust_producers_built"`
	CloudProducersBuilt      float64 `json:"cloud_producers_built"`
	LeprechaunProducersBuilt float64 `json:"leprechaun_producers_built"`

	ProductionUpgrades int `json:"production_upgrades"`
	CostUpgrades       int `json:"cost_upgrades"`
	SpecialUpgrades    int `json:"special_upgrades"`
	TotalUpgrades      int `json:"total_upgrades"`

	SaveCount             int     `json:"save_count"`
	MaxQueenSpeed         float64 `json:"max_queen_speed"`
	TotalDistanceTraveled float64 `json:"total_distance_traveled"`
}

// State is the full simulation state for one player world.
type State struct {
	GameWon bool `json:"game_won"`
	Paused  bool `json:"paused"`

	HasClickedFairy   bool `json:"has_clicked_fairy"`
	HasClickedUnicorn bool `json:"has_clicked_unicorn"`

	GlitterUnlocked      bool `json:"glitter_unlocked"`
	StardustUnlocked     bool `json:"stardust_unlocked"`
	RainbowUnlocked      bool `json:"rainbow_unlocked"`
	ZombiesUnlocked      bool `json:"zombies_unlocked"`
	LeprechaunUnlocked   bool `json:"leprechaun_unlocked"`
	RoyalChamberUnlocked bool `json:"royal_chamber_unlocked"`

	LastSaveTime time.Time `json:"last_save_time"`

	Fairies  creature.Creature `json:"fairies"`
	Unicorns creature.Creature `json:"unicorns"`

	Glitter  float64 `json:"glitter"`
	Stardust float64 `json:"stardust"`
	Gold     float64 `json:"gold"`

	Rainbows Rainbows `json:"rainbows"`
	Queen    Queen    `json:"queen"`

	UpgradeBaseCosts      map[string]float64 `json:"upgrade_base_costs"`
	UpgradePurchaseCounts map[string]int     `json:"upgrade_purchase_counts"`
	UpgradeSlots          UpgradeSlots       `json:"upgrade_slots"`
	UpgradeCosts          map[string]float64 `json:"upgrade_costs"`
	RerollCosts           map[string]float64 `json:"reroll_costs"`

	FairyAutoclicker   Autoclicker `json:"fairy_autoclicker"`
	UnicornAutoclicker Autoclicker `json:"unicorn_autoclicker"`

	ZombieFairies  Zombie `json:"zombie_fairies"`
	ZombieUnicorns Zombie `json:"zombie_unicorns"`

	LeprechaunProducers []producer.Producer `json:"leprechaun_producers"`
	QueenAccelerators   []producer.Producer `json:"queen_accelerators"`
	GlitterProducers    []producer.Producer `json:"glitter_producers"`
	StardustProducers   []producer.Producer `json:"stardust_producers"`
	CloudProducers      []producer.Producer `json:"cloud_producers"`

	BulkModes BulkModes `json:"bulk_modes"`

	Upgrades     []Card  `json:"upgrades"`
	UpgradesSeed float64 `json:"upgrades_seed"`

	Ascension Ascension `json:"ascension"`
	Stats     Stats     `json:"stats"`

	OneTimePurchased map[string]bool `json:"one_time_upgrades_purchased"`
}

// defaultUpgradeCosts is the pricing pool for dealt cards, keyed by the
// currency a card charges.
func defaultUpgradeCosts() map[string]float64 {
	return map[string]float64{
		"fairies": 5, "unicorns": 5, "glitter": 500, "stardust": 500, "rainbows": 10,
		"comets": 5, "shooting-stars": 5, "rockets": 5, "string-theories": 5,
		"fairy-autoclickers": 5, "unicorn-autoclickers": 5,
		"zombie-fairies": 100, "zombie-unicorns": 100, "leprechaun": 5,
	}
}

func defaultBulkModes() BulkModes {
	return BulkModes{Glitter: 1, Stardust: 1, Cloud: 1, Zombie: 1, Queen: 1, Leprechaun: 1, Autoclicker: 1}
}

func newAutoclicker() Autoclicker {
	return Autoclicker{Cost: 1, RealCost: 1, BaseCost: 1, CostMult: 1.1, ClicksPerSecond: 1}
}

func newZombie(baseCost, keepMinimum float64) Zombie {
	return Zombie{
		Cost:          baseCost,
		BaseCost:      baseCost,
		ProdPower:     1,
		CostMult:      1,
		CostIncreaser: 1,
		Autobuyer:     Autobuyer{Rate: 1, KeepMinimum: keepMinimum},
	}
}

// NewState returns a fresh world seeded at now. The upgrade rack starts
// empty; deal it with Engine.GenerateUpgrades.
func NewState(bal config.Balance, now time.Time) *State {
	return &State{
		LastSaveTime:          now,
		Fairies:               creature.New(creature.Fairies),
		Unicorns:              creature.New(creature.Unicorns),
		Rainbows:              Rainbows{Cost: 1000, Production: 1, MakingFairies: true},
		Queen:                 Queen{Distance: bal.QueenMaxDistance, Speed: 1, MaxDistance: bal.QueenMaxDistance},
		UpgradeBaseCosts:      map[string]float64{"glitter": 500, "stardust": 500},
		UpgradePurchaseCounts: map[string]int{"glitter": 0, "stardust": 0},
		UpgradeSlots: UpgradeSlots{
			Current:          bal.UpgradeSlotStart,
			Max:              bal.UpgradeSlotMax,
			GlitterSlotCost:  bal.UpgradeSlotBaseCost,
			StardustSlotCost: bal.UpgradeSlotBaseCost,
		},
		UpgradeCosts:        defaultUpgradeCosts(),
		RerollCosts:         map[string]float64{"fairies": 5, "unicorns": 5, "rainbows": 5},
		FairyAutoclicker:    newAutoclicker(),
		UnicornAutoclicker:  newAutoclicker(),
		ZombieFairies:       newZombie(bal.ZombieBaseCost, bal.AutobuyerKeepMinimum),
		ZombieUnicorns:      newZombie(bal.ZombieBaseCost, bal.AutobuyerKeepMinimum),
		LeprechaunProducers: producer.NewSet(producer.FamilyLeprechaun),
		QueenAccelerators:   producer.NewSet(producer.FamilyAccelerator),
		GlitterProducers:    producer.NewSet(producer.FamilyGlitter),
		StardustProducers:   producer.NewSet(producer.FamilyStardust),
		CloudProducers:      producer.NewSet(producer.FamilyCloud),
		BulkModes:           defaultBulkModes(),
		UpgradesSeed:        newUpgradesSeed(),
		Ascension: Ascension{
			RunStartTime: now,
			Prestige:     prestige.Levels{},
			Milestones:   map[string]bool{},
		},
		Stats:            Stats{GameStartTime: now, MaxQueenSpeed: 1},
		OneTimePurchased: map[string]bool{},
	}
}

// Creature returns the pool for a line.
func (s *State) Creature(k creature.Kind) *creature.Creature {
	if k == creature.Fairies {
		return &s.Fairies
	}
	return &s.Unicorns
}

// Autoclicker returns the builder pool for a line.
func (s *State) Autoclicker(k creature.Kind) *Autoclicker {
	if k == creature.Fairies {
		return &s.FairyAutoclicker
	}
	return &s.UnicornAutoclicker
}

// Zombie returns the undead pool for a line.
func (s *State) Zombie(k creature.Kind) *Zombie {
	if k == creature.Fairies {
		return &s.ZombieFairies
	}
	return &s.ZombieUnicorns
}

// CurrencyAmount resolves the balance of any card-pricing currency.
func (s *State) CurrencyAmount(currency string) float64 {
	switch currency {
	case "fairies":
		return s.Fairies.Amount
	case "unicorns":
		return s.Unicorns.Amount
	case "glitter":
		return s.Glitter
	case "stardust":
		return s.Stardust
	case "rainbows":
		return s.Rainbows.Amount
	case "comets":
		return s.QueenAccelerators[0].Amount
	case "shooting-stars":
		return s.QueenAccelerators[1].Amount
	case "rockets":
		return s.QueenAccelerators[2].Amount
	case "string-theories":
		return s.QueenAccelerators[3].Amount
	case "fairy-autoclickers":
		return s.FairyAutoclicker.Amount
	case "unicorn-autoclickers":
		return s.UnicornAutoclicker.Amount
	case "zombie-fairies":
		return s.ZombieFairies.Amount
	case "zombie-unicorns":
		return s.ZombieUnicorns.Amount
	}
	return 0
}

// SpendCurrency deducts amount and reprices whatever got cheaper or
// dearer as a result. Callers check affordability first.
func (s *State) SpendCurrency(currency string, amount float64) {
	switch currency {
	case "fairies":
		s.Fairies.Amount -= amount
		s.Fairies.RefreshCost()
	case "unicorns":
		s.Unicorns.Amount -= amount
		s.Unicorns.RefreshCost()
	case "glitter":
		s.Glitter -= amount
	case "stardust":
		s.Stardust -= amount
	case "rainbows":
		s.Rainbows.Amount -= amount
		s.Rainbows.RefreshCost()
	case "comets":
		s.QueenAccelerators[0].Amount -= amount
		s.QueenAccelerators[0].RefreshCostFractional()
	case "shooting-stars":
		s.QueenAccelerators[1].Amount -= amount
		s.QueenAccelerators[1].RefreshCostFractional()
	case "rockets":
		s.QueenAccelerators[2].Amount -= amount
		s.QueenAccelerators[2].RefreshCostFractional()
	case "string-theories":
		s.QueenAccelerators[3].Amount -= amount
		s.QueenAccelerators[3].RefreshCostFractional()
	case "fairy-autoclickers":
		s.FairyAutoclicker.Amount -= amount
		s.FairyAutoclicker.RefreshCost()
	case "unicorn-autoclickers":
		s.UnicornAutoclicker.Amount -= amount
		s.UnicornAutoclicker.RefreshCost()
	case "zombie-fairies":
		s.ZombieFairies.Amount -= amount
	case "zombie-unicorns":
		s.ZombieUnicorns.Amount -= amount
	}
}

// RefreshStats rolls the high-water marks and derived counters forward.
func (s *State) RefreshStats() {
	s.Stats.TotalFairies = maxf(s.Stats.TotalFairies, s.Fairies.Amount)
	s.Stats.TotalUnicorns = maxf(s.Stats.TotalUnicorns, s.Unicorns.Amount)
	s.Stats.TotalGlitter = maxf(s.Stats.TotalGlitter, s.Glitter)
	s.Stats.TotalStardust = maxf(s.Stats.TotalStardust, s.Stardust)
	s.Stats.TotalRainbows = maxf(s.Stats.TotalRainbows, s.Rainbows.Amount)
	s.Stats.TotalGold = maxf(s.Stats.TotalGold, s.Gold)
	s.Stats.MaxQueenSpeed = maxf(s.Stats.MaxQueenSpeed, s.Queen.Speed)

	s.Stats.TotalDistanceTraveled = s.Queen.MaxDistance - s.Queen.Distance
	s.Stats.TotalZombies = s.ZombieFairies.Amount + s.ZombieUnicorns.Amount
	s.Stats.TotalAutoclickers = s.FairyAutoclicker.Amount + s.UnicornAutoclicker.Amount
	s.Stats.GlitterProducersBuilt = sumAmounts(s.GlitterProducers)
	s.Stats.StardustProducersBuilt = sumAmounts(s.StardustProducers)
	s.Stats.CloudProducersBuilt = sumAmounts(s.CloudProducers)
	s.Stats.LeprechaunProducersBuilt = sumAmounts(s.LeprechaunProducers)
	s.Stats.TotalAccelerators = sumAmounts(s.QueenAccelerators)
}

func sumAmounts(ps []producer.Producer) float64 {
	total := 0.0
	for _, p := range ps {
		total += p.Amount
	}
	return total
}
