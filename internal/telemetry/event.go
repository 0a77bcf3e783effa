package telemetry

import "time"

type EventType string

const (
	EventCreatureClicked    EventType = "creature_clicked"
	EventUpgradePurchased   EventType = "upgrade_purchased"
	EventUpgradesRerolled   EventType = "upgrades_rerolled"
	EventProducerPurchased  EventType = "producer_purchased"
	EventAutoclickersBought EventType = "autoclickers_bought"
	EventPrestigePurchased  EventType = "prestige_purchased"
	EventAscensionPerformed EventType = "ascension_performed"
	EventOfflineReplayed    EventType = "offline_replayed"
	EventGameWon            EventType = "game_won"
	EventSaveImported       EventType = "save_imported"
	EventHardReset          EventType = "hard_reset"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
