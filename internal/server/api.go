package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/creature"
	"github.com/g1tyx/fairies-and-unicorns/internal/game"
	"github.com/g1tyx/fairies-and-unicorns/internal/prestige"
	"github.com/g1tyx/fairies-and-unicorns/internal/producer"
	"github.com/g1tyx/fairies-and-unicorns/internal/save"
	"github.com/g1tyx/fairies-and-unicorns/internal/telemetry"
)

// App owns the single player world. One mutex guards the state; the
// tick loop, the autosave loop, and every handler go through it, so a
// tick and a purchase can never interleave.
type App struct {
	mu     sync.Mutex
	Engine game.Engine
	State  *game.State
	Store  *save.Store
	Events telemetry.Repository
	Logger *log.Logger

	BootNow time.Time
}

// Tick advances the world a quarter second. Called by the run loop.
func (a *App) Tick() {
	a.mu.Lock()
	defer a.mu.Unlock()
	wonBefore := a.State.GameWon
	a.Engine.Tick(a.State)
	if a.State.GameWon && !wonBefore {
		a.record(telemetry.EventGameWon, telemetry.EventMetadata{
			"ascensions": a.State.Ascension.TotalAscensions,
		})
	}
}

// Save bumps the save counters and writes the world to disk.
func (a *App) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveLocked()
}

func (a *App) saveLocked() error {
	a.State.Stats.SaveCount++
	a.State.LastSaveTime = a.Engine.Clock.Now()
	return a.Store.Save(a.State)
}

func (a *App) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if a.Events == nil {
		return
	}
	if err := a.Events.RecordEvent(a.Engine.Clock.Now(), t, md); err != nil && a.Logger != nil {
		a.Logger.Printf("telemetry: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func parseKind(s string) (creature.Kind, bool) {
	switch creature.Kind(s) {
	case creature.Fairies, creature.Unicorns:
		return creature.Kind(s), true
	}
	return "", false
}

type prestigeRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Level       int     `json:"level"`
	MaxLevel    int     `json:"max_level"`
	NextCost    float64 `json:"next_cost,omitempty"`
}

type prestigeCategory struct {
	Name     string        `json:"name"`
	Upgrades []prestigeRow `json:"upgrades"`
}

func prestigeView(levels prestige.Levels) []prestigeCategory {
	catalog := prestige.Catalog()
	out := make([]prestigeCategory, 0, len(catalog))
	for _, cat := range catalog {
		rows := make([]prestigeRow, 0, len(cat.Upgrades))
		for _, u := range cat.Upgrades {
			row := prestigeRow{
				ID:          u.ID,
				Name:        u.Name,
				Description: u.Description,
				Level:       levels[u.ID],
				MaxLevel:    u.MaxLevel,
			}
			if row.Level < u.MaxLevel {
				row.NextCost = u.Cost(row.Level)
			}
			rows = append(rows, row)
		}
		out = append(out, prestigeCategory{Name: cat.Name, Upgrades: rows})
	}
	return out
}

// RegisterAPIRoutes wires the command and read surface onto the mux.
func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	Handle(mux, rr, "GET /api/snapshot", "Current world snapshot with derived rates", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		snap := app.Engine.Snapshot(app.State)
		app.mu.Unlock()
		writeJSON(w, snap)
	})

	Handle(mux, rr, "GET /api/stats", "Lifetime statistics panel", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		stats := app.State.Stats
		app.mu.Unlock()
		writeJSON(w, stats)
	})

	Handle(mux, rr, "POST /api/click", "Manually click a creature line", `{"kind":"fairies"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Kind string `json:"kind"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		kind, ok := parseKind(body.Kind)
		if !ok {
			writeErr(w, 400, "unknown creature kind")
			return
		}
		app.mu.Lock()
		power := app.Engine.ManualClickPower(app.State, kind)
		app.Engine.ClickCreature(app.State, kind)
		app.mu.Unlock()
		app.record(telemetry.EventCreatureClicked, telemetry.EventMetadata{"kind": body.Kind})
		writeJSON(w, map[string]any{"power": power})
	})

	Handle(mux, rr, "POST /api/upgrades/buy", "Buy the upgrade card in a slot", `{"slot":0}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Slot int `json:"slot"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		app.mu.Lock()
		var name string
		if body.Slot >= 0 && body.Slot < len(app.State.Upgrades) {
			name = app.State.Upgrades[body.Slot].Name
		}
		bought := app.Engine.BuyUpgrade(app.State, body.Slot)
		app.mu.Unlock()
		if bought {
			app.record(telemetry.EventUpgradePurchased, telemetry.EventMetadata{"name": name})
		}
		writeJSON(w, map[string]any{"bought": bought})
	})

	Handle(mux, rr, "POST /api/upgrades/reroll", "Reroll the upgrade rack", `{"currency":"fairies"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Currency string `json:"currency"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		app.mu.Lock()
		rerolled := app.Engine.RerollUpgrades(app.State, body.Currency)
		app.mu.Unlock()
		if rerolled {
			app.record(telemetry.EventUpgradesRerolled, telemetry.EventMetadata{"currency": body.Currency})
		}
		writeJSON(w, map[string]any{"rerolled": rerolled})
	})

	Handle(mux, rr, "POST /api/producers/buy", "Buy a producer tier at the panel's bulk mode", `{"family":"glitter","index":0}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Family string `json:"family"`
			Index  int    `json:"index"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		app.mu.Lock()
		bought, err := app.Engine.BuyProducer(app.State, producer.Family(body.Family), body.Index)
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 400, err.Error())
			return
		}
		if bought {
			app.record(telemetry.EventProducerPurchased, telemetry.EventMetadata{"family": body.Family, "index": body.Index})
		}
		writeJSON(w, map[string]any{"bought": bought})
	})

	Handle(mux, rr, "POST /api/autoclickers/buy", "Buy autoclickers for a creature line", `{"kind":"unicorns"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Kind string `json:"kind"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		kind, ok := parseKind(body.Kind)
		if !ok {
			writeErr(w, 400, "unknown creature kind")
			return
		}
		app.mu.Lock()
		bought := app.Engine.BuyAutoclickers(app.State, kind)
		app.mu.Unlock()
		if bought {
			app.record(telemetry.EventAutoclickersBought, telemetry.EventMetadata{"kind": body.Kind})
		}
		writeJSON(w, map[string]any{"bought": bought})
	})

	Handle(mux, rr, "POST /api/prestige/buy", "Spend royal essence on a permanent upgrade", `{"id":"royal-speed"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		app.mu.Lock()
		bought, err := app.Engine.BuyPrestigeUpgrade(app.State, body.ID)
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 400, err.Error())
			return
		}
		if bought {
			app.record(telemetry.EventPrestigePurchased, telemetry.EventMetadata{"id": body.ID})
		}
		writeJSON(w, map[string]any{"bought": bought})
	})

	Handle(mux, rr, "GET /api/prestige/catalog", "List prestige upgrades with current levels", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		view := prestigeView(app.State.Ascension.Prestige)
		essence := app.State.Ascension.RoyalEssence
		app.mu.Unlock()
		writeJSON(w, map[string]any{
			"categories":    view,
			"royal_essence": essence,
		})
	})

	Handle(mux, rr, "POST /api/ascend", "Bank pending essence and start a fresh run", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		gained, err := app.Engine.PerformAscension(app.State)
		app.mu.Unlock()
		if errors.Is(err, game.ErrNotEnoughProgress) {
			writeJSON(w, map[string]any{"ascended": false, "essence": 0})
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		app.record(telemetry.EventAscensionPerformed, telemetry.EventMetadata{"essence": gained})
		writeJSON(w, map[string]any{"ascended": true, "essence": gained})
	})

	Handle(mux, rr, "POST /api/rainbow-target", "Point the rainbow boost at one line", `{"making_fairies":true}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MakingFairies bool `json:"making_fairies"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		app.mu.Lock()
		app.Engine.SetRainbowTarget(app.State, body.MakingFairies)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"making_fairies": body.MakingFairies})
	})

	Handle(mux, rr, "POST /api/autobuyer", "Configure a zombie autobuyer", `{"kind":"fairies","enabled":true,"keep_minimum":10}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Kind        string  `json:"kind"`
			Enabled     bool    `json:"enabled"`
			KeepMinimum float64 `json:"keep_minimum"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		kind, ok := parseKind(body.Kind)
		if !ok {
			writeErr(w, 400, "unknown creature kind")
			return
		}
		app.mu.Lock()
		err := app.Engine.ConfigureAutobuyer(app.State, kind, body.Enabled, body.KeepMinimum)
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 400, err.Error())
			return
		}
		writeJSON(w, map[string]any{"enabled": body.Enabled, "keep_minimum": body.KeepMinimum})
	})

	Handle(mux, rr, "POST /api/bulk-mode", "Set a shop panel's purchase quantity (-1 buys max)", `{"panel":"glitter","mode":-1}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Panel string `json:"panel"`
			Mode  int    `json:"mode"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		app.mu.Lock()
		err := app.Engine.SetBulkMode(app.State, body.Panel, body.Mode)
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 400, err.Error())
			return
		}
		writeJSON(w, map[string]any{"panel": body.Panel, "mode": body.Mode})
	})

	Handle(mux, rr, "POST /api/pause", "Toggle the simulation", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		paused := app.Engine.TogglePause(app.State)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"paused": paused})
	})

	Handle(mux, rr, "POST /api/save", "Write the world to disk now", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		err := app.saveLocked()
		count := app.State.Stats.SaveCount
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, map[string]any{"saved": true, "save_count": count})
	})

	Handle(mux, rr, "GET /api/export", "Export the world as a pasteable string", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		encoded, err := save.EncodeExport(app.State, app.Engine.Clock.Now())
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, map[string]any{"data": encoded, "version": save.ExportVersion})
	})

	Handle(mux, rr, "POST /api/import", "Replace the world with pasted save data", `{"data":"..."}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Data string `json:"data"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		doc, err := save.DecodeImport(body.Data)
		if err != nil {
			writeErr(w, 400, err.Error())
			return
		}
		app.mu.Lock()
		now := app.Engine.Clock.Now()
		st, err := doc.Merge(app.Engine.Bal, now)
		if err == nil {
			if len(st.Upgrades) == 0 {
				app.Engine.GenerateUpgrades(st)
			}
			*app.State = *st
		}
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 400, err.Error())
			return
		}
		app.record(telemetry.EventSaveImported, telemetry.EventMetadata{})
		writeJSON(w, map[string]any{"imported": true})
	})

	Handle(mux, rr, "POST /api/reset", "Hard reset, prestige included", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		app.Engine.HardReset(app.State)
		err := app.saveLocked()
		app.mu.Unlock()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		app.record(telemetry.EventHardReset, telemetry.EventMetadata{})
		writeJSON(w, map[string]any{"reset": true})
	})

	Handle(mux, rr, "GET /api/telemetry/events", "Raw event feed", "", func(w http.ResponseWriter, r *http.Request) {
		if app.Events == nil {
			writeJSON(w, []telemetry.Event{})
			return
		}
		events, err := app.Events.GetEvents(app.BootNow, nil)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, events)
	})

	Handle(mux, rr, "GET /api/telemetry/stats", "Aggregated event stats", "", func(w http.ResponseWriter, r *http.Request) {
		if app.Events == nil {
			writeJSON(w, telemetry.Stats{})
			return
		}
		events, err := app.Events.GetEvents(app.BootNow, nil)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		stats, err := telemetry.CalculateStats(events, app.BootNow)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, stats)
	})
}
