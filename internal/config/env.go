package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables
// Falls back to defaults if variables are not set
func FromEnv() Balance {
	cfg := Default()

	if val := getEnvFloat("QUEEN_MAX_DISTANCE"); val > 0 {
		cfg.QueenMaxDistance = val
	}
	if val := getEnvInt("OFFLINE_CAP_HOURS"); val > 0 {
		cfg.OfflineCapHours = val
	}
	if val := getEnvInt("OFFLINE_MIN_SECONDS"); val > 0 {
		cfg.OfflineMinSeconds = val
	}
	if val := getEnvFloat("OFFLINE_BASE_EFFICIENCY"); val > 0 {
		cfg.OfflineBaseEfficiency = val
	}
	if val := getEnvFloat("UPGRADE_COST_GROWTH"); val > 1 {
		cfg.UpgradeCostGrowth = val
	}
	if val := getEnvFloat("REROLL_COST_GROWTH"); val > 1 {
		cfg.RerollCostGrowth = val
	}
	if val := getEnvInt("UPGRADE_SLOT_MAX"); val > 0 {
		cfg.UpgradeSlotMax = val
	}
	if val := getEnvFloat("ZOMBIE_BASE_COST"); val > 0 {
		cfg.ZombieBaseCost = val
	}
	if val := getEnvFloat("AUTOBUYER_KEEP_MINIMUM"); val > 0 {
		cfg.AutobuyerKeepMinimum = val
	}
	if val := getEnvFloat("GOLD_PER_RAINBOW"); val > 0 {
		cfg.GoldPerRainbow = val
	}

	// Support preset modes
	if mode := os.Getenv("DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			return Casual()
		case "hard":
			return Hard()
		}
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}
