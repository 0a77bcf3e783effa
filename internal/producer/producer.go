// Package producer models the purchasable generator tiers: glitter and
// stardust workshops, rainbow-brewing clouds, queen accelerators, and the
// leprechaun's gold-priced tricks.
package producer

import "math"

// Family groups producers that share a shop panel and pricing rules.
type Family string

const (
	FamilyGlitter     Family = "glitter"
	FamilyStardust    Family = "stardust"
	FamilyCloud       Family = "cloud"
	FamilyAccelerator Family = "accelerator"
	FamilyLeprechaun  Family = "leprechaun"
)

// Producer is one owned tier. Which optional fields are live depends on
// the family: Production for resource and cloud tiers, SpeedBoost and
// ProductivityMult for accelerators, Effect for leprechaun tricks.
type Producer struct {
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Cost             float64 `json:"cost"`
	BaseCost         float64 `json:"base_cost"`
	CostMult         float64 `json:"cost_mult"`
	Production       float64 `json:"production,omitempty"`
	Effect           float64 `json:"effect,omitempty"`
	SpeedBoost       float64 `json:"speed_boost,omitempty"`
	ProductivityMult float64 `json:"productivity_mult,omitempty"`
	Currency         string  `json:"currency,omitempty"`
}

// theoretical is the undiscounted price of the next unit.
func (p Producer) theoretical() float64 {
	return p.BaseCost * math.Pow(p.CostMult, p.Amount)
}

// RefreshCostWhole reprices tiers bought with creatures. Creature prices
// are whole units, rounded up.
func (p *Producer) RefreshCostWhole() {
	p.Cost = math.Max(1, math.Ceil(p.theoretical()))
}

// RefreshCostFractional reprices tiers bought with resources, which keep
// fractional prices down to a floor of 0.01.
func (p *Producer) RefreshCostFractional() {
	p.Cost = math.Max(0.01, p.theoretical())
}

// RefreshCostDiscounted reprices with a multiplicative discount applied
// before the fractional floor. Used for leprechaun tiers under Avarice.
func (p *Producer) RefreshCostDiscounted(discount float64) {
	p.Cost = math.Max(0.01, p.theoretical()*discount)
}

// NewSet returns the fresh tiers for a family, in shop order.
func NewSet(f Family) []Producer {
	switch f {
	case FamilyGlitter:
		return []Producer{
			production("Warrior Fairies", 10, 1),
			production("Bard Fairies", 50, 5),
			production("Nature Fairies", 150, 15),
			production("Pirate Fairies", 300, 30),
		}
	case FamilyStardust:
		return []Producer{
			production("Nocorns", 10, 1),
			production("Zebra Unicorns", 50, 5),
			production("Chess Unicorns", 150, 15),
			production("Panda Unicorns", 300, 30),
		}
	case FamilyCloud:
		return []Producer{
			cloud("Sunny Clouds", 1000, 1, "glitter"),
			cloud("Winged Clouds", 1000, 1, "stardust"),
			cloud("Alien Clouds", 100000, 300, "glitter"),
			cloud("Sentient Clouds", 100000, 300, "stardust"),
		}
	case FamilyAccelerator:
		return []Producer{
			accelerator("Comet", 1000, 0.01, "glitter"),
			accelerator("Shooting Star", 1000, 0.01, "stardust"),
			accelerator("Rocket", 100000, 1, "glitter"),
			accelerator("String Theory", 100000, 1, "stardust"),
		}
	case FamilyLeprechaun:
		return []Producer{
			trick("New Shoes", 1000, 0.01),
			trick("Space Shrink", 1000, 0.01),
			trick("Trickery", 100, 0.05),
			trick("Avarice", 1000, 0.01),
		}
	}
	return nil
}

// Indexes of the leprechaun tiers with bespoke effects.
const (
	LeprechaunNewShoes    = 0
	LeprechaunSpaceShrink = 1
	LeprechaunTrickery    = 2
	LeprechaunAvarice     = 3
)

func production(name string, cost, prod float64) Producer {
	return Producer{Name: name, Cost: cost, BaseCost: cost, CostMult: 1.1, Production: prod}
}

func cloud(name string, cost, prod float64, currency string) Producer {
	return Producer{Name: name, Cost: cost, BaseCost: cost, CostMult: 1.1, Production: prod, Currency: currency}
}

func accelerator(name string, cost, boost float64, currency string) Producer {
	return Producer{Name: name, Cost: cost, BaseCost: cost, CostMult: 1.1, SpeedBoost: boost, ProductivityMult: 1, Currency: currency}
}

func trick(name string, cost, effect float64) Producer {
	return Producer{Name: name, Cost: cost, BaseCost: cost, CostMult: 1.1, Effect: effect}
}
