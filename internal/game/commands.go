package game

import (
	"errors"
	"fmt"

	"github.com/g1tyx/fairies-and-unicorns/internal/creature"
	"github.com/g1tyx/fairies-and-unicorns/internal/econ"
	"github.com/g1tyx/fairies-and-unicorns/internal/prestige"
	"github.com/g1tyx/fairies-and-unicorns/internal/producer"
)

var (
	ErrUnknownProducer = errors.New("unknown producer")
	ErrUnknownPanel    = errors.New("unknown bulk panel")
)

// ClickCreature is one manual click on a creature line.
func (e Engine) ClickCreature(st *State, k creature.Kind) {
	power := e.ManualClickPower(st, k)
	c := st.Creature(k)
	c.Progress += power
	if k == creature.Fairies {
		st.HasClickedFairy = true
		st.Stats.FairyClicks++
	} else {
		st.HasClickedUnicorn = true
		st.Stats.UnicornClicks++
	}
	settleCreatures(st)
	st.RefreshStats()
}

// SetRainbowTarget points the rainbow boost at one creature line.
func (e Engine) SetRainbowTarget(st *State, makingFairies bool) {
	st.Rainbows.MakingFairies = makingFairies
}

// ConfigureAutobuyer updates a zombie autobuyer. A negative reserve is
// rejected so the buyer can never be told to drain the line entirely.
func (e Engine) ConfigureAutobuyer(st *State, k creature.Kind, enabled bool, keepMinimum float64) error {
	if keepMinimum < 0 {
		return errors.New("keep minimum must not be negative")
	}
	ab := &st.Zombie(k).Autobuyer
	ab.Enabled = enabled
	ab.KeepMinimum = keepMinimum
	return nil
}

// SetBulkMode sets how many units a shop panel buys per purchase.
// -1 means buy the maximum affordable.
func (e Engine) SetBulkMode(st *State, panel string, mode int) error {
	if mode != -1 && mode <= 0 {
		return fmt.Errorf("invalid bulk mode %d", mode)
	}
	switch panel {
	case "glitter":
		st.BulkModes.Glitter = mode
	case "stardust":
		st.BulkModes.Stardust = mode
	case "cloud":
		st.BulkModes.Cloud = mode
	case "zombie":
		st.BulkModes.Zombie = mode
	case "queen":
		st.BulkModes.Queen = mode
	case "leprechaun":
		st.BulkModes.Leprechaun = mode
	case "autoclicker":
		st.BulkModes.Autoclicker = mode
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPanel, panel)
	}
	return nil
}

// TogglePause flips the simulation on or off.
func (e Engine) TogglePause(st *State) bool {
	st.Paused = !st.Paused
	return st.Paused
}

// BuyProducer purchases one tier of a producer family at the panel's
// bulk mode. Returns false when the purchase is unaffordable, the
// index is out of range, or a capped leprechaun trick is maxed out.
func (e Engine) BuyProducer(st *State, family producer.Family, index int) (bool, error) {
	switch family {
	case producer.FamilyGlitter:
		return e.buyCreaturePricedProducer(st, st.GlitterProducers, index, creature.Fairies, st.BulkModes.Glitter, &st.Stats.GlitterProducersBuilt), nil
	case producer.FamilyStardust:
		return e.buyCreaturePricedProducer(st, st.StardustProducers, index, creature.Unicorns, st.BulkModes.Stardust, &st.Stats.StardustProducersBuilt), nil
	case producer.FamilyCloud:
		return e.buyResourcePricedProducer(st, st.CloudProducers, index, st.BulkModes.Cloud, (*producer.Producer).RefreshCostFractional), nil
	case producer.FamilyAccelerator:
		return e.buyResourcePricedProducer(st, st.QueenAccelerators, index, st.BulkModes.Queen, (*producer.Producer).RefreshCostFractional), nil
	case producer.FamilyLeprechaun:
		return e.buyLeprechaunProducer(st, index), nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownProducer, family)
}

// buyCreaturePricedProducer handles glitter and stardust tiers, which
// are paid for in live creatures. Bulk totals round down so a ragged
// fractional sum never prices out an otherwise affordable buy.
func (e Engine) buyCreaturePricedProducer(st *State, ps []producer.Producer, index int, payer creature.Kind, bulkMode int, built *float64) bool {
	if index < 0 || index >= len(ps) {
		return false
	}
	p := &ps[index]
	c := st.Creature(payer)

	n := bulkMode
	if n == -1 {
		n = econ.MaxAffordable(p.Cost, p.CostMult, c.Amount)
	}
	if n <= 0 {
		return false
	}
	total := floorf(econ.BulkCost(p.Cost, p.CostMult, n))
	if c.Amount < total {
		return false
	}

	c.Amount -= total
	c.RefreshCost()
	p.Amount += float64(n)
	p.RefreshCostWhole()
	*built += float64(n)
	st.RefreshStats()
	return true
}

// buyResourcePricedProducer handles clouds and queen accelerators,
// paid in glitter or stardust per the tier's currency.
func (e Engine) buyResourcePricedProducer(st *State, ps []producer.Producer, index int, bulkMode int, refresh func(*producer.Producer)) bool {
	if index < 0 || index >= len(ps) {
		return false
	}
	p := &ps[index]

	var pool *float64
	switch p.Currency {
	case "glitter":
		pool = &st.Glitter
	case "stardust":
		pool = &st.Stardust
	default:
		return false
	}

	n := bulkMode
	if n == -1 {
		n = econ.MaxAffordable(p.Cost, p.CostMult, *pool)
	}
	if n <= 0 {
		return false
	}
	total := econ.BulkCost(p.Cost, p.CostMult, n)
	if *pool < total {
		return false
	}

	*pool -= total
	p.Amount += float64(n)
	refresh(p)
	st.RefreshStats()
	return true
}

// buyLeprechaunProducer buys gold-priced tricks. Space shrink stops
// selling at its 90% journey reduction cap and avarice at its 99%
// discount cap.
func (e Engine) buyLeprechaunProducer(st *State, index int) bool {
	if index < 0 || index >= len(st.LeprechaunProducers) {
		return false
	}
	p := &st.LeprechaunProducers[index]
	effMult := st.Ascension.Prestige.LeprechaunEffectsMult()

	if index == producer.LeprechaunSpaceShrink && p.Amount*p.Effect*effMult >= 0.9 {
		return false
	}
	if index == producer.LeprechaunAvarice && p.Amount*p.Effect*effMult >= 0.99 {
		return false
	}

	n := st.BulkModes.Leprechaun
	if n == -1 {
		n = econ.MaxAffordable(p.Cost, p.CostMult, st.Gold)
	}
	if n <= 0 {
		return false
	}
	total := econ.BulkCost(p.Cost, p.CostMult, n)
	if st.Gold < total {
		return false
	}

	st.Gold -= total
	p.Amount += float64(n)
	p.RefreshCostFractional()
	e.refreshLeprechaunCosts(st)
	st.RefreshStats()
	return true
}

// BuyAutoclickers buys builders for one line, paid in that line's own
// creatures.
func (e Engine) BuyAutoclickers(st *State, k creature.Kind) bool {
	ac := st.Autoclicker(k)
	c := st.Creature(k)

	n := st.BulkModes.Autoclicker
	if n == -1 {
		n = econ.MaxAffordable(ac.Cost, ac.CostMult, c.Amount)
	}
	if n <= 0 {
		return false
	}
	total := econ.BulkCost(ac.Cost, ac.CostMult, n)
	if c.Amount < total {
		return false
	}

	c.Amount -= total
	c.RefreshCost()
	ac.Amount += float64(n)
	ac.RefreshCost()
	st.RefreshStats()
	return true
}

// BuyPrestigeUpgrade spends royal essence on one level of a permanent
// upgrade.
func (e Engine) BuyPrestigeUpgrade(st *State, id string) (bool, error) {
	u, ok := prestige.Find(id)
	if !ok {
		return false, fmt.Errorf("unknown prestige upgrade: %s", id)
	}
	level := st.Ascension.Prestige[id]
	if level >= u.MaxLevel {
		return false, nil
	}
	cost := u.Cost(level)
	if st.Ascension.RoyalEssence < cost {
		return false, nil
	}
	st.Ascension.RoyalEssence -= cost
	st.Ascension.Prestige[id] = level + 1
	return true, nil
}

// HardReset wipes everything, prestige included, and deals a fresh
// rack.
func (e Engine) HardReset(st *State) {
	*st = *NewState(e.Bal, e.now())
	e.GenerateUpgrades(st)
}
