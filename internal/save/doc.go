// Package save persists player worlds. The on-disk document is the
// state's own JSON; loading is an asymmetric merge onto a freshly
// initialized state so documents written by older versions fall back
// to current defaults for anything they lack.
package save

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/game"
	"github.com/g1tyx/fairies-and-unicorns/internal/producer"
)

// Doc is a loaded save document. Scalars are pointers so absence is
// distinguishable from a zero value; sub-structs stay raw and are
// merged field-by-field onto fresh defaults at Merge time.
type Doc struct {
	GameWon              *bool `json:"game_won"`
	Paused               *bool `json:"paused"`
	HasClickedFairy      *bool `json:"has_clicked_fairy"`
	HasClickedUnicorn    *bool `json:"has_clicked_unicorn"`
	GlitterUnlocked      *bool `json:"glitter_unlocked"`
	StardustUnlocked     *bool `json:"stardust_unlocked"`
	RainbowUnlocked      *bool `json:"rainbow_unlocked"`
	ZombiesUnlocked      *bool `json:"zombies_unlocked"`
	LeprechaunUnlocked   *bool `json:"leprechaun_unlocked"`
	RoyalChamberUnlocked *bool `json:"royal_chamber_unlocked"`

	LastSaveTime *time.Time `json:"last_save_time"`

	Glitter      *float64 `json:"glitter"`
	Stardust     *float64 `json:"stardust"`
	Gold         *float64 `json:"gold"`
	UpgradesSeed *float64 `json:"upgrades_seed"`

	Fairies            json.RawMessage `json:"fairies"`
	Unicorns           json.RawMessage `json:"unicorns"`
	Rainbows           json.RawMessage `json:"rainbows"`
	Queen              json.RawMessage `json:"queen"`
	UpgradeSlots       json.RawMessage `json:"upgrade_slots"`
	FairyAutoclicker   json.RawMessage `json:"fairy_autoclicker"`
	UnicornAutoclicker json.RawMessage `json:"unicorn_autoclicker"`
	ZombieFairies      json.RawMessage `json:"zombie_fairies"`
	ZombieUnicorns     json.RawMessage `json:"zombie_unicorns"`
	BulkModes          json.RawMessage `json:"bulk_modes"`
	Ascension          json.RawMessage `json:"ascension"`
	Stats              json.RawMessage `json:"stats"`

	UpgradeBaseCosts      map[string]float64 `json:"upgrade_base_costs"`
	UpgradePurchaseCounts map[string]int     `json:"upgrade_purchase_counts"`
	UpgradeCosts          map[string]float64 `json:"upgrade_costs"`
	RerollCosts           map[string]float64 `json:"reroll_costs"`
	OneTimePurchased      map[string]bool    `json:"one_time_upgrades_purchased"`

	LeprechaunProducers []json.RawMessage `json:"leprechaun_producers"`
	QueenAccelerators   []json.RawMessage `json:"queen_accelerators"`
	GlitterProducers    []json.RawMessage `json:"glitter_producers"`
	StardustProducers   []json.RawMessage `json:"stardust_producers"`
	CloudProducers      []json.RawMessage `json:"cloud_producers"`

	Upgrades []game.Card `json:"upgrades"`
}

// Merge rebuilds a live state from the document. The state starts
// fully initialized at current defaults; the document then overrides
// what it carries. Scalars copy when present, sub-structs merge
// field-by-field, the upgrade cost maps and the pending rack replace
// wholesale, and the producer arrays merge per index. After merging,
// derived prices are recomputed and creature amounts floored.
//
// LastSaveTime on the returned state is now; read the document's own
// LastSaveTime for offline catch-up.
func (d Doc) Merge(bal config.Balance, now time.Time) (*game.State, error) {
	st := game.NewState(bal, now)

	copyBool(&st.GameWon, d.GameWon)
	copyBool(&st.Paused, d.Paused)
	copyBool(&st.HasClickedFairy, d.HasClickedFairy)
	copyBool(&st.HasClickedUnicorn, d.HasClickedUnicorn)
	copyBool(&st.GlitterUnlocked, d.GlitterUnlocked)
	copyBool(&st.StardustUnlocked, d.StardustUnlocked)
	copyBool(&st.RainbowUnlocked, d.RainbowUnlocked)
	copyBool(&st.ZombiesUnlocked, d.ZombiesUnlocked)
	copyBool(&st.LeprechaunUnlocked, d.LeprechaunUnlocked)
	copyBool(&st.RoyalChamberUnlocked, d.RoyalChamberUnlocked)
	copyFloat(&st.Glitter, d.Glitter)
	copyFloat(&st.Stardust, d.Stardust)
	copyFloat(&st.Gold, d.Gold)
	copyFloat(&st.UpgradesSeed, d.UpgradesSeed)

	merges := []struct {
		name string
		dst  any
		raw  json.RawMessage
	}{
		{"fairies", &st.Fairies, d.Fairies},
		{"unicorns", &st.Unicorns, d.Unicorns},
		{"rainbows", &st.Rainbows, d.Rainbows},
		{"queen", &st.Queen, d.Queen},
		{"upgrade_slots", &st.UpgradeSlots, d.UpgradeSlots},
		{"fairy_autoclicker", &st.FairyAutoclicker, d.FairyAutoclicker},
		{"unicorn_autoclicker", &st.UnicornAutoclicker, d.UnicornAutoclicker},
		{"zombie_fairies", &st.ZombieFairies, d.ZombieFairies},
		{"zombie_unicorns", &st.ZombieUnicorns, d.ZombieUnicorns},
		{"bulk_modes", &st.BulkModes, d.BulkModes},
		{"ascension", &st.Ascension, d.Ascension},
		{"stats", &st.Stats, d.Stats},
	}
	for _, m := range merges {
		if err := mergeInto(m.dst, m.raw); err != nil {
			return nil, fmt.Errorf("merge %s: %w", m.name, err)
		}
	}

	for k, v := range d.UpgradeBaseCosts {
		st.UpgradeBaseCosts[k] = v
	}
	for k, v := range d.UpgradePurchaseCounts {
		st.UpgradePurchaseCounts[k] = v
	}
	if d.UpgradeCosts != nil {
		st.UpgradeCosts = d.UpgradeCosts
	}
	if d.RerollCosts != nil {
		st.RerollCosts = d.RerollCosts
	}
	if d.OneTimePurchased != nil {
		st.OneTimePurchased = d.OneTimePurchased
	}
	if d.Upgrades != nil {
		st.Upgrades = d.Upgrades
	}

	tiers := []struct {
		name string
		dst  []producer.Producer
		raws []json.RawMessage
	}{
		{"leprechaun_producers", st.LeprechaunProducers, d.LeprechaunProducers},
		{"queen_accelerators", st.QueenAccelerators, d.QueenAccelerators},
		{"glitter_producers", st.GlitterProducers, d.GlitterProducers},
		{"stardust_producers", st.StardustProducers, d.StardustProducers},
		{"cloud_producers", st.CloudProducers, d.CloudProducers},
	}
	for _, t := range tiers {
		if err := mergeTiers(t.dst, t.raws); err != nil {
			return nil, fmt.Errorf("merge %s: %w", t.name, err)
		}
	}

	if st.Queen.Speed == 0 {
		st.Queen.Speed = 1
	}
	if st.Queen.MaxDistance == 0 {
		st.Queen.MaxDistance = bal.QueenMaxDistance
	}
	st.Fairies.Amount = math.Floor(st.Fairies.Amount)
	st.Unicorns.Amount = math.Floor(st.Unicorns.Amount)
	st.Fairies.RefreshCost()
	st.Unicorns.RefreshCost()
	st.Rainbows.RefreshCost()
	st.FairyAutoclicker.RefreshCost()
	st.UnicornAutoclicker.RefreshCost()
	st.LastSaveTime = now
	st.RefreshStats()
	return st, nil
}

// OfflineSeconds is how long the world sat idle since the document was
// written. Zero when the document carries no save time.
func (d Doc) OfflineSeconds(now time.Time) float64 {
	if d.LastSaveTime == nil || !now.After(*d.LastSaveTime) {
		return 0
	}
	return now.Sub(*d.LastSaveTime).Seconds()
}

func mergeInto(dst any, raw json.RawMessage) error {
	if !present(raw) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func mergeTiers(dst []producer.Producer, raws []json.RawMessage) error {
	for i, raw := range raws {
		if i >= len(dst) {
			break
		}
		if !present(raw) {
			continue
		}
		if err := json.Unmarshal(raw, &dst[i]); err != nil {
			return err
		}
	}
	return nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func copyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func copyFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
