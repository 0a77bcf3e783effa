package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period            string            `json:"period"`
	EventCounts       map[EventType]int `json:"event_counts"`
	UpgradePurchases  int               `json:"upgrade_purchases"`
	UpgradesByName    map[string]int    `json:"upgrades_by_name"`
	Rerolls           int               `json:"rerolls"`
	ProducersByFamily map[string]int    `json:"producers_by_family"`
	Ascensions        int               `json:"ascensions"`
	EssenceGained     float64           `json:"essence_gained"`
	OfflineSeconds    float64           `json:"offline_seconds"`
	Wins              int               `json:"wins"`
}

// CalculateStats computes balance stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:            since.Format("2006-01-02"),
		EventCounts:       make(map[EventType]int),
		UpgradesByName:    make(map[string]int),
		ProducersByFamily: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventUpgradePurchased:
			stats.UpgradePurchases++
			if name, ok := metadata["name"].(string); ok {
				stats.UpgradesByName[name]++
			}
		case EventUpgradesRerolled:
			stats.Rerolls++
		case EventProducerPurchased:
			if family, ok := metadata["family"].(string); ok {
				stats.ProducersByFamily[family]++
			}
		case EventAscensionPerformed:
			stats.Ascensions++
			if essence, ok := metadata["essence"].(float64); ok {
				stats.EssenceGained += essence
			}
		case EventOfflineReplayed:
			if seconds, ok := metadata["seconds"].(float64); ok {
				stats.OfflineSeconds += seconds
			}
		case EventGameWon:
			stats.Wins++
		}
	}

	return stats, nil
}
