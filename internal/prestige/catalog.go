// Package prestige defines the royal essence upgrade catalog and the
// bonus formulas derived from purchased levels.
package prestige

import "math"

// Upgrade is one purchasable essence upgrade. Cost returns the price of
// advancing from level to level+1.
type Upgrade struct {
	ID          string
	Name        string
	Description string
	MaxLevel    int
	Cost        func(level int) float64
}

// Category is one panel of the royal chamber shop.
type Category struct {
	Name     string
	Upgrades []Upgrade
}

func linear(base float64) func(int) float64 {
	return func(level int) float64 { return base + float64(level)*base }
}

func doubling(base float64) func(int) float64 {
	return func(level int) float64 {
		if level == 0 {
			return base
		}
		return base * math.Pow(2, float64(level))
	}
}

// Catalog returns the purchasable upgrades in shop order.
func Catalog() []Category {
	return []Category{
		{
			Name: "Production Mastery",
			Upgrades: []Upgrade{
				{ID: "fairy-mastery", Name: "Fairy Mastery", Description: "Fairies start producing +1 more Unicorn Molecule per second each", MaxLevel: 25, Cost: linear(100)},
				{ID: "unicorn-mastery", Name: "Unicorn Mastery", Description: "Unicorns start producing +1 more Fairy Molecule per second each", MaxLevel: 25, Cost: linear(100)},
				{ID: "glitter-production", Name: "Glitter Production", Description: "Each Glitter producer starts producing +25% more (cumulative)", MaxLevel: 10, Cost: linear(100)},
				{ID: "stardust-production", Name: "Stardust Production", Description: "Each Stardust producer starts producing +25% more (cumulative)", MaxLevel: 10, Cost: linear(100)},
				{ID: "rainbows-molecule-production", Name: "Rainbows Molecule Production", Description: "Each Rainbow boosts each Fairy/Unicorn by +1 more Molecule per second", MaxLevel: 10, Cost: linear(100)},
				{ID: "clouds-production", Name: "Clouds Production", Description: "Each Cloud produces +25% more Rainbow parts (cumulative)", MaxLevel: 10, Cost: linear(200)},
				{ID: "more-zombie-fairies", Name: "More Zombie Fairies", Description: "Autobuyers start buying 2 more Zombie Fairies per second, per level.", MaxLevel: 5, Cost: linear(200)},
				{ID: "more-zombie-unicorns", Name: "More Zombie Unicorns", Description: "Autobuyers start buying 2 more Zombie Unicorns per second, per level.", MaxLevel: 5, Cost: linear(200)},
			},
		},
		{
			Name: "Starting Resources",
			Upgrades: []Upgrade{
				{ID: "rainbow-genesis", Name: "Rainbow Genesis", Description: "Start each run with +1 Rainbow per level", MaxLevel: 3, Cost: linear(500)},
				{ID: "fairies-favor", Name: "Fairies' Favor", Description: "Start each run with +10 Fairies per level", MaxLevel: 5, Cost: linear(200)},
				{ID: "unicorns-favor", Name: "Unicorns' Favor", Description: "Start each run with +10 Unicorns per level", MaxLevel: 5, Cost: linear(200)},
				{ID: "glitter-galore", Name: "Glitter Galore", Description: "Start each run with +1,000 Glitter per level", MaxLevel: 3, Cost: linear(500)},
				{ID: "stardust-galore", Name: "Stardust Galore", Description: "Start each run with +1,000 Stardust per level", MaxLevel: 3, Cost: linear(500)},
				{ID: "auto-autoclickers", Name: "Auto-Autoclickers", Description: "Start each run with 10 Fairy and Unicorn Autoclickers per level", MaxLevel: 2, Cost: linear(200)},
			},
		},
		{
			Name: "Queen and Gold",
			Upgrades: []Upgrade{
				{ID: "royal-speed", Name: "Royal Speed", Description: "Queen starts with double base speed per level", MaxLevel: 5, Cost: doubling(1000)},
				{ID: "queen-accelerators-power", Name: "Queen Accelerators Power", Description: "Queen Accelerators add 50% more speed (cumulative)", MaxLevel: 10, Cost: linear(1000)},
				{ID: "rainbows-gold-production", Name: "Rainbows Gold Production", Description: "Each Rainbow produces +25% more Gold per second (cumulative)", MaxLevel: 10, Cost: linear(2000)},
				{ID: "new-shoes-power", Name: "New Shoes Power", Description: "New Shoes add 50% more speed", MaxLevel: 5, Cost: linear(5000)},
				{ID: "space-shrink-power", Name: "Space Shrink Power", Description: "Space Shrink adds 50% more distance reduction", MaxLevel: 3, Cost: linear(5000)},
				{ID: "trickery-power", Name: "Trickery Power", Description: "Trickery adds 50% more gold production to Rainbows (cumulative)", MaxLevel: 5, Cost: linear(5000)},
				{ID: "avarice-power", Name: "Avarice Power", Description: "Avarice adds 50% more cost reduction to other Leprechaun producers", MaxLevel: 3, Cost: linear(5000)},
			},
		},
		{
			Name: "Meta Progression",
			Upgrades: []Upgrade{
				{ID: "royal-gathering", Name: "Royal Gathering", Description: "+25% more Royal Essence gained per level", MaxLevel: 20, Cost: linear(1000)},
				{ID: "offline-mastery", Name: "Offline Mastery", Description: "Improve offline efficiency by 10% per level (max 90%)", MaxLevel: 4, Cost: doubling(1000)},
			},
		},
	}
}

// Find returns the catalog entry for id.
func Find(id string) (Upgrade, bool) {
	for _, cat := range Catalog() {
		for _, u := range cat.Upgrades {
			if u.ID == id {
				return u, true
			}
		}
	}
	return Upgrade{}, false
}

// TotalCostToMax sums the cost of every remaining level from zero.
func TotalCostToMax(u Upgrade) float64 {
	total := 0.0
	for level := 0; level < u.MaxLevel; level++ {
		total += u.Cost(level)
	}
	return total
}
