package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/game"
	"github.com/g1tyx/fairies-and-unicorns/internal/serverapp"
)

func TestServer_HealthAndAdminExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/_/admin/routes.json"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_ClickBuySaveRoundTrip(t *testing.T) {
	app := newTestApp(t)

	snap := decodeBodyMap(t, app.requestOK(t, http.MethodGet, "/api/snapshot"))
	state := asMap(t, snap["state"])
	if got := asMap(t, state["fairies"])["amount"]; got != float64(0) {
		t.Fatalf("fresh world should start with 0 fairies, got %v", got)
	}

	shopRes := app.json(http.MethodPost, "/api/producers/buy", map[string]any{
		"family": "glitter", "index": 0,
	})
	if shopRes.Code != http.StatusOK {
		t.Fatalf("unaffordable buy expected 200, got %d body=%s", shopRes.Code, shopRes.Body.String())
	}
	if bought, _ := decodeBodyMap(t, shopRes)["bought"].(bool); bought {
		t.Fatalf("expected unaffordable producer buy to report bought=false")
	}

	// Clicks mint molecules, not creatures: 10 of them cover the first
	// fairy's molecule cost, and the price moves to 11.
	for i := 0; i < 10; i++ {
		res := app.json(http.MethodPost, "/api/click", map[string]any{"kind": "fairies"})
		if res.Code != http.StatusOK {
			t.Fatalf("click %d expected 200, got %d body=%s", i, res.Code, res.Body.String())
		}
		if power := decodeBodyMap(t, res)["power"]; power != float64(1) {
			t.Fatalf("expected click power 1, got %v", power)
		}
	}
	snap = decodeBodyMap(t, app.requestOK(t, http.MethodGet, "/api/snapshot"))
	fairies := asMap(t, asMap(t, snap["state"])["fairies"])
	if fairies["amount"] != float64(1) {
		t.Fatalf("expected 10 clicks to hatch 1 fairy, got %v", fairies["amount"])
	}
	if fairies["cost"] != float64(11) {
		t.Fatalf("expected molecule cost 11 after the first hatch, got %v", fairies["cost"])
	}

	// A Warrior Fairy squad costs 10 live fairies, so keep clicking until
	// the pool can pay for one.
	app.clickFairies(t, 190)

	shopRes = app.json(http.MethodPost, "/api/producers/buy", map[string]any{
		"family": "glitter", "index": 0,
	})
	if bought, _ := decodeBodyMap(t, shopRes)["bought"].(bool); !bought {
		t.Fatalf("expected producer buy to succeed with 11 fairies banked, body=%s", shopRes.Body.String())
	}

	badRes := app.json(http.MethodPost, "/api/click", map[string]any{"kind": "dragons"})
	if badRes.Code != http.StatusBadRequest {
		t.Fatalf("unknown creature kind expected 400, got %d", badRes.Code)
	}

	saveRes := decodeBodyMap(t, app.requestOK(t, http.MethodPost, "/api/save"))
	if saved, _ := saveRes["saved"].(bool); !saved {
		t.Fatalf("expected save to report saved=true, got %v", saveRes)
	}

	snap = decodeBodyMap(t, app.requestOK(t, http.MethodGet, "/api/snapshot"))
	state = asMap(t, snap["state"])
	producers, _ := state["glitter_producers"].([]any)
	if len(producers) == 0 {
		t.Fatalf("snapshot missing glitter producers: %v", state)
	}
	if amount := asMap(t, producers[0])["amount"]; amount != float64(1) {
		t.Fatalf("expected 1 Warrior Fairies tier owned, got %v", amount)
	}
}

func TestServer_ExportImportRoundTrip(t *testing.T) {
	app := newTestApp(t)

	// 5 clicks leave 5 unicorn molecules banked, well short of the 100
	// the first unicorn costs.
	for i := 0; i < 5; i++ {
		app.json(http.MethodPost, "/api/click", map[string]any{"kind": "unicorns"})
	}

	exportBody := decodeBodyMap(t, app.requestOK(t, http.MethodGet, "/api/export"))
	blob := asString(t, exportBody["data"])
	if blob == "" {
		t.Fatalf("export returned empty data")
	}

	app.requestOK(t, http.MethodPost, "/api/reset")
	snap := decodeBodyMap(t, app.requestOK(t, http.MethodGet, "/api/snapshot"))
	if got := asMap(t, asMap(t, snap["state"])["unicorns"])["progress"]; got != float64(0) {
		t.Fatalf("hard reset should clear unicorn molecules, got %v", got)
	}

	importRes := app.json(http.MethodPost, "/api/import", map[string]any{"data": blob})
	if importRes.Code != http.StatusOK {
		t.Fatalf("import expected 200, got %d body=%s", importRes.Code, importRes.Body.String())
	}

	snap = decodeBodyMap(t, app.requestOK(t, http.MethodGet, "/api/snapshot"))
	if got := asMap(t, asMap(t, snap["state"])["unicorns"])["progress"]; got != float64(5) {
		t.Fatalf("expected 5 unicorn molecules restored from import, got %v", got)
	}

	garbageRes := app.json(http.MethodPost, "/api/import", map[string]any{"data": "not a save"})
	if garbageRes.Code != http.StatusBadRequest {
		t.Fatalf("garbage import expected 400, got %d", garbageRes.Code)
	}
}

func TestServer_OfflineReplayOnRestart(t *testing.T) {
	dataDir := t.TempDir()
	clock := game.NewFakeClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	app := newTestAppAt(t, dataDir, clock)

	app.clickFairies(t, 200)
	buyRes := app.json(http.MethodPost, "/api/producers/buy", map[string]any{"family": "glitter", "index": 0})
	if bought, _ := decodeBodyMap(t, buyRes)["bought"].(bool); !bought {
		t.Fatalf("expected glitter producer buy to succeed, body=%s", buyRes.Body.String())
	}
	app.requestOK(t, http.MethodPost, "/api/save")

	clock.Advance(2 * time.Hour)
	restarted := newTestAppAt(t, dataDir, clock)

	snap := decodeBodyMap(t, restarted.requestOK(t, http.MethodGet, "/api/snapshot"))
	state := asMap(t, snap["state"])
	glitter, _ := state["glitter"].(float64)
	if glitter <= 0 {
		t.Fatalf("expected offline glitter production after 2h away, got %v", glitter)
	}

	eventsRes := restarted.requestOK(t, http.MethodGet, "/api/telemetry/events")
	if !strings.Contains(eventsRes.Body.String(), "offline_replayed") {
		t.Fatalf("expected an offline_replayed event, body=%s", eventsRes.Body.String())
	}
}

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppAt(t, t.TempDir(), game.NewFakeClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)))
}

func newTestAppAt(t *testing.T, dataDir string, clock game.Clock) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Data.TelemetryEnabled = true

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	srv, err := serverapp.New(serverapp.Options{
		Config:  cfg,
		DataDir: dataDir,
		Logger:  logger,
		Clock:   clock,
	})
	if err != nil {
		t.Fatalf("serverapp.New: %v", err)
	}

	return &testApp{handler: srv.Handler, logs: &logs}
}

// clickFairies mints n fairy molecules; 200 is enough to hatch 11
// fairies from a fresh pool as the molecule cost climbs.
func (a *testApp) clickFairies(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		res := a.json(http.MethodPost, "/api/click", map[string]any{"kind": "fairies"})
		if res.Code != http.StatusOK {
			t.Fatalf("click %d expected 200, got %d body=%s", i, res.Code, res.Body.String())
		}
	}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) requestOK(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	res := a.request(method, path, nil, "")
	if res.Code != http.StatusOK {
		t.Fatalf("%s %s expected 200, got %d body=%s", method, path, res.Code, res.Body.String())
	}
	return res
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	out, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T (%v)", v, v)
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}
