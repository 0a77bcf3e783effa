package config

// Balance holds gameplay balance configuration
type Balance struct {
	// Queen journey
	QueenMaxDistance float64 `json:"queen_max_distance"`

	// Offline catch-up
	OfflineCapHours       int     `json:"offline_cap_hours"`
	OfflineMinSeconds     int     `json:"offline_min_seconds"`
	OfflineBaseEfficiency float64 `json:"offline_base_efficiency"`

	// Upgrade economy
	UpgradeCostGrowth   float64 `json:"upgrade_cost_growth"`
	RerollCostGrowth    float64 `json:"reroll_cost_growth"`
	UpgradeSlotStart    int     `json:"upgrade_slot_start"`
	UpgradeSlotMax      int     `json:"upgrade_slot_max"`
	UpgradeSlotBaseCost float64 `json:"upgrade_slot_base_cost"`

	// Zombies
	ZombieBaseCost       float64 `json:"zombie_base_cost"`
	AutobuyerKeepMinimum float64 `json:"autobuyer_keep_minimum"`

	// Gold
	GoldPerRainbow float64 `json:"gold_per_rainbow"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		QueenMaxDistance:      100000000,
		OfflineCapHours:       24,
		OfflineMinSeconds:     60,
		OfflineBaseEfficiency: 0.5,
		UpgradeCostGrowth:     1.1,
		RerollCostGrowth:      1.1,
		UpgradeSlotStart:      3,
		UpgradeSlotMax:        8,
		UpgradeSlotBaseCost:   1000,
		ZombieBaseCost:        2,
		AutobuyerKeepMinimum:  10,
		GoldPerRainbow:        0.1,
	}
}

// Casual returns easier balance for casual difficulty
func Casual() Balance {
	cfg := Default()
	cfg.QueenMaxDistance = 10000000
	cfg.OfflineCapHours = 48
	cfg.OfflineBaseEfficiency = 0.7
	cfg.AutobuyerKeepMinimum = 5
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.QueenMaxDistance = 200000000
	cfg.OfflineCapHours = 12
	cfg.OfflineBaseEfficiency = 0.4
	cfg.UpgradeCostGrowth = 1.15
	cfg.RerollCostGrowth = 1.15
	return cfg
}
