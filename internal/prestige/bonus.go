package prestige

import "math"

// Levels maps upgrade ids to purchased levels. Absent ids count as zero,
// which keeps every bonus at its neutral value. A few ids only reachable
// through old saves (autoclickers-speed, zombie production doublers,
// leprechaun-effects) keep their formulas here even though the catalog
// no longer sells them.
type Levels map[string]int

func (l Levels) level(id string) float64 {
	return float64(l[id])
}

func (l Levels) FairyMasteryBonus() float64   { return l.level("fairy-mastery") }
func (l Levels) UnicornMasteryBonus() float64 { return l.level("unicorn-mastery") }

func (l Levels) AutoclickerSpeedMult() float64 {
	return math.Pow(2, l.level("autoclickers-speed"))
}

func (l Levels) GlitterMult() float64  { return 1 + l.level("glitter-production")*0.25 }
func (l Levels) StardustMult() float64 { return 1 + l.level("stardust-production")*0.25 }

func (l Levels) RainbowMoleculeBonus() float64 { return l.level("rainbows-molecule-production") }
func (l Levels) RainbowGoldMult() float64      { return 1 + l.level("rainbows-gold-production")*0.25 }
func (l Levels) CloudsMult() float64           { return 1 + l.level("clouds-production")*0.25 }

func (l Levels) ZombieFairiesMult() float64 {
	return math.Pow(2, l.level("zombie-fairies-production"))
}

func (l Levels) ZombieUnicornsMult() float64 {
	return math.Pow(2, l.level("zombie-unicorns-production"))
}

func (l Levels) LeprechaunEffectsMult() float64 { return 1 + l.level("leprechaun-effects")*0.25 }

func (l Levels) AcceleratorPowerMult() float64 { return 1 + l.level("queen-accelerators-power")*0.5 }
func (l Levels) NewShoesPowerMult() float64    { return 1 + l.level("new-shoes-power")*0.5 }
func (l Levels) TrickeryPowerMult() float64    { return 1 + l.level("trickery-power")*0.5 }

func (l Levels) RoyalSpeedMult() float64 { return math.Pow(2, l.level("royal-speed")) }

// AutobuyerRateBonus is the extra zombies per second an autobuyer gains
// for the given creature line ("fairies" or "unicorns").
func (l Levels) AutobuyerRateBonus(line string) float64 {
	return l.level("more-zombie-"+line) * 2
}

func (l Levels) EssenceMult() float64 { return 1 + l.level("royal-gathering")*0.25 }

// OfflineMasteryBonus adds 10% of away time per Offline Mastery level
// on top of the configured base efficiency.
func (l Levels) OfflineMasteryBonus() float64 { return l.level("offline-mastery") * 0.1 }

// StartingRainbows and friends feed the post-ascension grants.
func (l Levels) StartingRainbows() float64     { return l.level("rainbow-genesis") }
func (l Levels) StartingFairies() float64      { return l.level("fairies-favor") * 10 }
func (l Levels) StartingUnicorns() float64     { return l.level("unicorns-favor") * 10 }
func (l Levels) StartingGlitter() float64      { return l.level("glitter-galore") * 1000 }
func (l Levels) StartingStardust() float64     { return l.level("stardust-galore") * 1000 }
func (l Levels) StartingAutoclickers() float64 { return l.level("auto-autoclickers") * 10 }
