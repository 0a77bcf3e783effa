package game

import (
	"fmt"
	"strings"

	"github.com/g1tyx/fairies-and-unicorns/internal/producer"
	"github.com/g1tyx/fairies-and-unicorns/internal/rng"
)

// upgradeTemplate is one entry of the upgrade deck. Cards are dealt
// from the subset whose condition holds; cost and currency are frozen
// into the card at deal time.
type upgradeTemplate struct {
	name        string
	description string
	cost        func(e Engine, st *State) float64
	currency    string
	costMult    float64 // 0 means the default growth applies
	dual        *DualCost
	effect      func(e Engine, st *State)
	condition   func(st *State) bool
}

func boostProduction(ps []producer.Producer) {
	for i := range ps {
		ps[i].Production *= 1.25
	}
}

func discountProducers(ps []producer.Producer, factor float64, refresh func(*producer.Producer)) {
	for i := range ps {
		ps[i].Cost = maxf(0.01, ps[i].Cost*factor)
		ps[i].BaseCost = maxf(0.01, ps[i].BaseCost*factor)
		refresh(&ps[i])
	}
}

func anyOwned(ps []producer.Producer) bool {
	for _, p := range ps {
		if p.Amount >= 1 {
			return true
		}
	}
	return false
}

func costFrom(currency string) func(Engine, *State) float64 {
	return func(e Engine, st *State) float64 { return st.UpgradeCosts[currency] }
}

// upgradeTemplates is the full deck. Order matters: generation indexes
// into the condition-filtered slice with the seeded stream, so the
// catalog order is part of the deal.
func (e Engine) upgradeTemplates() []upgradeTemplate {
	always := func(st *State) bool { return true }
	return []upgradeTemplate{
		{
			name:        "Fairy Production Boost",
			description: "Fairies produce +1 more Unicorn molecules per second",
			cost:        costFrom("fairies"),
			currency:    "fairies",
			effect:      func(e Engine, st *State) { st.Fairies.ProdPower += 1 },
			condition:   always,
		},
		{
			name:        "Unicorn Production Boost",
			description: "Unicorns produce +1 more Fairy molecules per second",
			cost:        costFrom("unicorns"),
			currency:    "unicorns",
			effect:      func(e Engine, st *State) { st.Unicorns.ProdPower += 1 },
			condition:   always,
		},
		{
			name:        "Fairy Cost Reduction",
			description: "Fairy costs increase 5% slower",
			cost:        costFrom("glitter"),
			currency:    "glitter",
			effect: func(e Engine, st *State) {
				st.Fairies.CostIncreaser *= 0.95
				st.Fairies.RefreshCost()
			},
			condition: always,
		},
		{
			name:        "Unicorn Cost Reduction",
			description: "Unicorn costs increase 5% slower",
			cost:        costFrom("stardust"),
			currency:    "stardust",
			effect: func(e Engine, st *State) {
				st.Unicorns.CostIncreaser *= 0.95
				st.Unicorns.RefreshCost()
			},
			condition: always,
		},
		{
			name:        "Rainbow Boost",
			description: "Each Rainbow boost molecule production by 1 more",
			cost:        costFrom("rainbows"),
			currency:    "rainbows",
			effect: func(e Engine, st *State) {
				st.Rainbows.Production *= 1.25
				st.Rainbows.Production += 1
			},
			condition: func(st *State) bool { return st.RainbowUnlocked },
		},
		{
			name:        "Clouds Production Boost",
			description: "Clouds produce +25% more Rainbow parts per second",
			cost:        costFrom("rainbows"),
			currency:    "rainbows",
			effect:      func(e Engine, st *State) { boostProduction(st.CloudProducers) },
			condition:   func(st *State) bool { return st.RainbowUnlocked },
		},
		{
			name:        "Clouds Cost Reduction",
			description: "Clouds costs reduce by 5%",
			cost:        costFrom("rainbows"),
			currency:    "rainbows",
			effect: func(e Engine, st *State) {
				discountProducers(st.CloudProducers, 0.95, (*producer.Producer).RefreshCostFractional)
			},
			condition: func(st *State) bool { return st.RainbowUnlocked },
		},
		{
			name:        "Glitter Producers Boost",
			description: "Glitter producers create +25% more glitter",
			cost:        costFrom("fairies"),
			currency:    "fairies",
			effect:      func(e Engine, st *State) { boostProduction(st.GlitterProducers) },
			condition:   func(st *State) bool { return st.Fairies.Amount >= 10 },
		},
		{
			name:        "Glitter Producers Cost Reduction",
			description: "Glitter producers costs reduce by 5%",
			cost:        costFrom("fairies"),
			currency:    "fairies",
			effect: func(e Engine, st *State) {
				discountProducers(st.GlitterProducers, 0.95, (*producer.Producer).RefreshCostWhole)
			},
			condition: func(st *State) bool { return st.Fairies.Amount >= 10 },
		},
		{
			name:        "Stardust Producers Boost",
			description: "Stardust producers create +25% more stardust",
			cost:        costFrom("unicorns"),
			currency:    "unicorns",
			effect:      func(e Engine, st *State) { boostProduction(st.StardustProducers) },
			condition:   func(st *State) bool { return st.Unicorns.Amount >= 10 },
		},
		{
			name:        "Stardust Producers Cost Reduction",
			description: "Stardust producers costs reduce by 5%",
			cost:        costFrom("unicorns"),
			currency:    "unicorns",
			effect: func(e Engine, st *State) {
				discountProducers(st.StardustProducers, 0.95, (*producer.Producer).RefreshCostWhole)
			},
			condition: func(st *State) bool { return st.Unicorns.Amount >= 10 },
		},
		{
			name:        "Extra Upgrade Card (Glitter)",
			description: "Add one more upgrade card to choose from",
			cost:        func(e Engine, st *State) float64 { return st.UpgradeSlots.GlitterSlotCost },
			currency:    "glitter",
			effect: func(e Engine, st *State) {
				st.UpgradeSlots.Current++
				e.refreshSlotCosts(st)
				e.GenerateUpgrades(st)
			},
			condition: func(st *State) bool { return st.UpgradeSlots.Current < st.UpgradeSlots.Max },
		},
		{
			name:        "Extra Upgrade Card (Stardust)",
			description: "Add one more upgrade card to choose from",
			cost:        func(e Engine, st *State) float64 { return st.UpgradeSlots.StardustSlotCost },
			currency:    "stardust",
			effect: func(e Engine, st *State) {
				st.UpgradeSlots.Current++
				e.refreshSlotCosts(st)
				e.GenerateUpgrades(st)
			},
			condition: func(st *State) bool { return st.UpgradeSlots.Current < st.UpgradeSlots.Max },
		},
		{
			name:        "Queen Accelerators Production Boost (Fairy)",
			description: "All Queen Accelerators are 25% more effective",
			cost:        costFrom("fairies"),
			currency:    "fairies",
			effect: func(e Engine, st *State) {
				for i := range st.QueenAccelerators {
					st.QueenAccelerators[i].ProductivityMult *= 1.5
				}
			},
			condition: func(st *State) bool { return anyOwned(st.QueenAccelerators) },
		},
		{
			name:        "Queen Accelerators Production Boost (Unicorn)",
			description: "All Queen Accelerators are 25% more effective",
			cost:        costFrom("unicorns"),
			currency:    "unicorns",
			effect: func(e Engine, st *State) {
				for i := range st.QueenAccelerators {
					st.QueenAccelerators[i].ProductivityMult *= 1.5
				}
			},
			condition: func(st *State) bool { return anyOwned(st.QueenAccelerators) },
		},
		{
			name:        "Queen Accelerators Cost Reduction (Fairy)",
			description: "All Queen Accelerators cost 10% less",
			cost:        costFrom("fairies"),
			currency:    "fairies",
			effect: func(e Engine, st *State) {
				discountProducers(st.QueenAccelerators, 0.9, (*producer.Producer).RefreshCostFractional)
			},
			condition: func(st *State) bool { return anyOwned(st.QueenAccelerators) },
		},
		{
			name:        "Queen Accelerators Cost Reduction (Unicorn)",
			description: "All Queen Accelerators cost 10% less",
			cost:        costFrom("unicorns"),
			currency:    "unicorns",
			effect: func(e Engine, st *State) {
				discountProducers(st.QueenAccelerators, 0.9, (*producer.Producer).RefreshCostFractional)
			},
			condition: func(st *State) bool { return anyOwned(st.QueenAccelerators) },
		},
		{
			name:        "Fairy Builder Upgrade",
			description: "Fairy Builders autoclick +1 more time per second",
			cost:        costFrom("fairy-autoclickers"),
			currency:    "fairy-autoclickers",
			effect:      func(e Engine, st *State) { st.FairyAutoclicker.ClicksPerSecond += 1 },
			condition:   func(st *State) bool { return st.FairyAutoclicker.Amount >= 5 },
		},
		{
			name:        "Unicorn Builder Upgrade",
			description: "Unicorn Builders autoclick +1 more time per second",
			cost:        costFrom("unicorn-autoclickers"),
			currency:    "unicorn-autoclickers",
			effect:      func(e Engine, st *State) { st.UnicornAutoclicker.ClicksPerSecond += 1 },
			condition:   func(st *State) bool { return st.UnicornAutoclicker.Amount >= 5 },
		},
		{
			name:        "Zombie Fairies Autobuyer Upgrade",
			description: "Zombie Fairies Autobuyer buys +1 more per second",
			cost:        costFrom("zombie-fairies"),
			currency:    "zombie-fairies",
			costMult:    1.5,
			effect:      func(e Engine, st *State) { st.ZombieFairies.Autobuyer.Rate += 1 },
			condition: func(st *State) bool {
				return st.Rainbows.Amount >= 1 && st.ZombieFairies.Amount >= 5
			},
		},
		{
			name:        "Zombie Unicorns Autobuyer Upgrade",
			description: "Zombie Unicorns Autobuyer buys +1 more per second",
			cost:        costFrom("zombie-unicorns"),
			currency:    "zombie-unicorns",
			costMult:    1.5,
			effect:      func(e Engine, st *State) { st.ZombieUnicorns.Autobuyer.Rate += 1 },
			condition: func(st *State) bool {
				return st.Rainbows.Amount >= 1 && st.ZombieUnicorns.Amount >= 5
			},
		},
		{
			name:        "Leprechaun's Mastery",
			description: "All Leprechaun producers are 25% more effective",
			cost:        costFrom("leprechaun"),
			currency:    "rainbows",
			effect: func(e Engine, st *State) {
				for i := range st.LeprechaunProducers {
					st.LeprechaunProducers[i].Effect *= 1.25
				}
				e.refreshLeprechaunCosts(st)
			},
			condition: func(st *State) bool {
				return st.LeprechaunUnlocked && anyOwned(st.LeprechaunProducers)
			},
		},
		{
			name:        "Unlock Rainbows!",
			description: "Unlock the Rainbows tab to create powerful Rainbow artifacts",
			cost:        func(e Engine, st *State) float64 { return 1000 },
			currency:    "glitter",
			dual: &DualCost{
				Currency1: "glitter", Cost1: 1000,
				Currency2: "stardust", Cost2: 1000,
			},
			effect: func(e Engine, st *State) {
				st.RainbowUnlocked = true
				st.OneTimePurchased["unlock-rainbows"] = true
				e.GenerateUpgrades(st)
			},
			condition: func(st *State) bool {
				return st.GlitterUnlocked && st.StardustUnlocked &&
					!st.RainbowUnlocked && !st.OneTimePurchased["unlock-rainbows"]
			},
		},
		{
			name:        "Unlock Zombies!",
			description: "Unlock the Zombies tab to recruit undead armies",
			cost:        func(e Engine, st *State) float64 { return 10 },
			currency:    "rainbows",
			effect: func(e Engine, st *State) {
				st.ZombiesUnlocked = true
				st.OneTimePurchased["unlock-zombies"] = true
				e.GenerateUpgrades(st)
			},
			condition: func(st *State) bool {
				return st.RainbowUnlocked && !st.ZombiesUnlocked &&
					!st.OneTimePurchased["unlock-zombies"]
			},
		},
		{
			name:        "Unlock Leprechaun!",
			description: "Unlock the Leprechaun tab to access magical golden enhancements",
			cost:        func(e Engine, st *State) float64 { return 10000 },
			currency:    "zombie-fairies",
			dual: &DualCost{
				Currency1: "zombie-fairies", Cost1: 10000,
				Currency2: "zombie-unicorns", Cost2: 10000,
			},
			effect: func(e Engine, st *State) {
				st.LeprechaunUnlocked = true
				st.OneTimePurchased["unlock-leprechaun"] = true
				e.GenerateUpgrades(st)
			},
			condition: func(st *State) bool {
				return st.ZombiesUnlocked && !st.LeprechaunUnlocked &&
					!st.OneTimePurchased["unlock-leprechaun"]
			},
		},
		{
			name:        "Unlock the Royal Chamber!",
			description: "Unlock the Royal Chamber tab to access ascension and prestige upgrades",
			cost:        func(e Engine, st *State) float64 { return 100 },
			currency:    "fairies",
			dual: &DualCost{
				Currency1: "fairies", Cost1: 100,
				Currency2: "unicorns", Cost2: 100,
			},
			effect: func(e Engine, st *State) {
				st.RoyalChamberUnlocked = true
				st.OneTimePurchased["unlock-royal-chamber"] = true
				e.GenerateUpgrades(st)
			},
			condition: func(st *State) bool {
				return st.LeprechaunUnlocked && !st.RoyalChamberUnlocked &&
					!st.OneTimePurchased["unlock-royal-chamber"]
			},
		},
	}
}

func isUnlockCard(name string) bool {
	return strings.HasPrefix(name, "Unlock ") && strings.HasSuffix(name, "!")
}

func (e Engine) dealCard(st *State, t upgradeTemplate) Card {
	return Card{
		Name:        t.name,
		Description: t.description,
		Cost:        t.cost(e, st),
		Currency:    t.currency,
		Dual:        t.dual,
	}
}

// GenerateUpgrades deals a full rack from the seeded stream. Unlock
// cards are dealt at most once per rack; everything else may repeat.
func (e Engine) GenerateUpgrades(st *State) {
	stream := rng.New(st.UpgradesSeed)
	available := e.availableTemplates(st)

	st.Upgrades = st.Upgrades[:0]
	dealtUnlocks := map[string]bool{}

	for i := 0; i < st.UpgradeSlots.Current; i++ {
		if len(available) == 0 {
			break
		}
		valid := available[:0:0]
		for _, t := range available {
			if isUnlockCard(t.name) && dealtUnlocks[t.name] {
				continue
			}
			valid = append(valid, t)
		}
		if len(valid) == 0 {
			break
		}
		t := valid[stream.Pick(len(valid))]
		st.Upgrades = append(st.Upgrades, e.dealCard(st, t))
		if isUnlockCard(t.name) {
			dealtUnlocks[t.name] = true
		}
	}
}

// generateSingleUpgrade replaces one slot after a purchase. The slot
// seed mixes in wall time so repeat purchases of the same card do not
// redeal identically, and cards already showing in other slots are
// excluded.
func (e Engine) generateSingleUpgrade(st *State, slot int) {
	slotSeed := st.UpgradesSeed + float64(slot) + float64(e.now().UnixMilli())
	stream := rng.New(slotSeed)

	taken := map[string]bool{}
	for i, c := range st.Upgrades {
		if i != slot {
			taken[c.Name] = true
		}
	}

	var valid []upgradeTemplate
	for _, t := range e.availableTemplates(st) {
		if !taken[t.name] {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 || slot >= len(st.Upgrades) {
		return
	}
	st.Upgrades[slot] = e.dealCard(st, valid[stream.Pick(len(valid))])
}

func (e Engine) availableTemplates(st *State) []upgradeTemplate {
	var out []upgradeTemplate
	for _, t := range e.upgradeTemplates() {
		if t.condition(st) {
			out = append(out, t)
		}
	}
	return out
}

// chargedCost rounds creature-priced cards up to whole creatures.
func chargedCost(currency string, cost float64) float64 {
	if currency == "fairies" || currency == "unicorns" {
		return ceilf(cost)
	}
	return cost
}

// BuyUpgrade purchases the card in a rack slot. Returns false without
// side effects when the slot is empty or unaffordable. Dual-priced
// cards charge both currencies or neither.
func (e Engine) BuyUpgrade(st *State, index int) bool {
	if index < 0 || index >= len(st.Upgrades) {
		return false
	}
	card := st.Upgrades[index]
	tmpl, ok := e.templateByName(card.Name)
	if !ok {
		return false
	}

	if card.Dual != nil {
		cost1 := chargedCost(card.Dual.Currency1, card.Dual.Cost1)
		cost2 := chargedCost(card.Dual.Currency2, card.Dual.Cost2)
		if st.CurrencyAmount(card.Dual.Currency1) < cost1 || st.CurrencyAmount(card.Dual.Currency2) < cost2 {
			return false
		}
		st.SpendCurrency(card.Dual.Currency1, cost1)
		st.SpendCurrency(card.Dual.Currency2, cost2)
	} else {
		cost := chargedCost(card.Currency, card.Cost)
		if st.CurrencyAmount(card.Currency) < cost {
			return false
		}
		st.SpendCurrency(card.Currency, cost)
	}

	tmpl.effect(e, st)

	// Repeat purchases get dearer. Leprechaun's Mastery is priced off
	// its own ledger entry even though it charges rainbows.
	if card.Name == "Leprechaun's Mastery" {
		st.UpgradeCosts["leprechaun"] *= e.Bal.UpgradeCostGrowth
	} else {
		growth := tmpl.costMult
		if growth == 0 {
			growth = e.Bal.UpgradeCostGrowth
		}
		st.UpgradeCosts[card.Currency] *= growth
	}

	st.Stats.TotalUpgrades++
	switch {
	case strings.Contains(card.Name, "Boost") || strings.Contains(card.Name, "Production"):
		st.Stats.ProductionUpgrades++
	case strings.Contains(card.Name, "Cost") || strings.Contains(card.Name, "Reduction"):
		st.Stats.CostUpgrades++
	default:
		st.Stats.SpecialUpgrades++
	}

	e.generateSingleUpgrade(st, index)
	return true
}

func (e Engine) templateByName(name string) (upgradeTemplate, bool) {
	for _, t := range e.upgradeTemplates() {
		if t.name == name {
			return t, true
		}
	}
	return upgradeTemplate{}, false
}

func (e Engine) refreshSlotCosts(st *State) {
	purchased := st.UpgradeSlots.Current - e.Bal.UpgradeSlotStart
	cost := maxf(1, e.Bal.UpgradeSlotBaseCost*powf(10, float64(purchased)))
	st.UpgradeSlots.GlitterSlotCost = cost
	st.UpgradeSlots.StardustSlotCost = cost
}

// refreshLeprechaunCosts reprices the leprechaun shop, applying the
// avarice discount to every other trick.
func (e Engine) refreshLeprechaunCosts(st *State) {
	discount := e.AvariceDiscount(st)
	for i := range st.LeprechaunProducers {
		if i == producer.LeprechaunAvarice {
			st.LeprechaunProducers[i].RefreshCostFractional()
			continue
		}
		st.LeprechaunProducers[i].RefreshCostDiscounted(discount)
	}
}

// AvariceDiscount is the price factor avarice charms buy, floored at
// 1% of list price.
func (e Engine) AvariceDiscount(st *State) float64 {
	av := st.LeprechaunProducers[producer.LeprechaunAvarice]
	reduction := minf(av.Amount*av.Effect*st.Ascension.Prestige.LeprechaunEffectsMult(), 0.99)
	return maxf(0.01, 1-reduction)
}

// RerollUpgrades redeals the whole rack for an escalating creature or
// rainbow fee. The new seed is derived from the pre-spend world state
// so identical situations reroll identically.
func (e Engine) RerollUpgrades(st *State, currency string) bool {
	cost, ok := st.RerollCosts[currency]
	if !ok {
		return false
	}
	actual := ceilf(cost)
	if st.CurrencyAmount(currency) < actual {
		return false
	}

	st.UpgradesSeed = hashState(st)
	st.SpendCurrency(currency, actual)
	st.RerollCosts[currency] = cost * e.Bal.RerollCostGrowth

	switch currency {
	case "fairies":
		st.Stats.FairyRerolls++
	case "unicorns":
		st.Stats.UnicornRerolls++
	case "rainbows":
		st.Stats.RainbowRerolls++
	}

	e.GenerateUpgrades(st)
	return true
}

// hashState folds the visible economy into a reroll seed in [0,1).
func hashState(st *State) float64 {
	summary := fmt.Sprintf(
		`{"fairies":%s,"unicorns":%s,"glitter":%s,"stardust":%s,"rainbows":%s,"queenDistance":%s,"totalUpgradesPurchased":%d}`,
		formatNum(st.Fairies.Amount),
		formatNum(st.Unicorns.Amount),
		formatNum(floorf(st.Glitter)),
		formatNum(floorf(st.Stardust)),
		formatNum(st.Rainbows.Amount),
		formatNum(floorf(st.Queen.Distance)),
		st.UpgradePurchaseCounts["glitter"]+st.UpgradePurchaseCounts["stardust"],
	)
	return rng.Hash(summary)
}
