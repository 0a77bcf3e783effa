// Package creature models the two base creature pools. Molecules of one
// kind are produced by the other kind; a creature is hatched each time
// accumulated molecule progress covers the current molecule cost.
package creature

import "math"

// Kind selects one of the two creature lines.
type Kind string

const (
	Fairies  Kind = "fairies"
	Unicorns Kind = "unicorns"
)

// Other returns the opposite line. Production is cross-wired: each line
// fills the other line's molecule progress.
func (k Kind) Other() Kind {
	if k == Fairies {
		return Unicorns
	}
	return Fairies
}

// Creature is one creature pool. Cost is the molecule price of the next
// creature and grows geometrically with the owned amount; CostIncreaser
// is a multiplicative discount hook for upgrades.
type Creature struct {
	Amount        float64 `json:"amount"`
	Progress      float64 `json:"progress"`
	Cost          float64 `json:"cost"`
	ProdPower     float64 `json:"prod_power"`
	CostIncreaser float64 `json:"cost_increaser"`

	baseCost float64
}

// New returns a fresh pool with the starting molecule cost for its line.
func New(kind Kind) Creature {
	base := 10.0
	if kind == Unicorns {
		base = 100.0
	}
	return Creature{
		Cost:          base,
		ProdPower:     1,
		CostIncreaser: 1,
		baseCost:      base,
	}
}

// BaseCost returns the line's starting molecule cost.
func (c Creature) BaseCost() float64 {
	if c.baseCost == 0 {
		return 10
	}
	return c.baseCost
}

// SetBaseCost restores the line's base cost on a pool loaded from a
// save, where only the exported fields survive.
func (c *Creature) SetBaseCost(base float64) {
	c.baseCost = base
}

// RefreshCost recomputes the molecule price of the next creature. Prices
// are whole molecules, rounded up, never below one.
func (c *Creature) RefreshCost() {
	c.Cost = math.Max(1, math.Ceil(c.BaseCost()*math.Pow(1.1, c.Amount)*c.CostIncreaser))
}

// Settle converts accumulated progress into creatures, one at a time,
// refreshing the price after each hatch. Returns how many hatched.
func (c *Creature) Settle() int {
	hatched := 0
	for c.Progress >= c.Cost {
		c.Amount++
		c.Progress -= c.Cost
		c.RefreshCost()
		hatched++
	}
	return hatched
}
