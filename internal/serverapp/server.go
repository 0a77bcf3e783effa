package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/game"
	"github.com/g1tyx/fairies-and-unicorns/internal/httpmw"
	"github.com/g1tyx/fairies-and-unicorns/internal/save"
	"github.com/g1tyx/fairies-and-unicorns/internal/server"
	"github.com/g1tyx/fairies-and-unicorns/internal/telemetry"
)

type Options struct {
	Config  *config.Config
	DataDir string
	Logger  *log.Logger
	Clock   game.Clock
}

// Server is one running world: the HTTP surface plus the tick and
// autosave loops that drive it.
type Server struct {
	App     *server.App
	Handler http.Handler

	logger   *log.Logger
	tick     time.Duration
	autosave time.Duration
}

// New loads (or creates) the world, replays offline time, and builds
// the handler. Call Run to start the loops.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Data.Dir
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = game.RealClock{}
	}

	bal := opts.Config.Balance()
	engine := game.NewEngine(bal, clock)

	store, err := save.NewStore(opts.DataDir, opts.Config.Data.SaveFile)
	if err != nil {
		return nil, err
	}

	now := clock.Now()
	var events telemetry.Repository
	if opts.Config.Data.TelemetryEnabled {
		events = telemetry.NewMemoryRepository()
	}

	st, err := loadWorld(engine, store, events, opts.Logger, now)
	if err != nil {
		return nil, err
	}

	app := &server.App{
		Engine:  engine,
		State:   st,
		Store:   store,
		Events:  events,
		Logger:  opts.Logger,
		BootNow: now,
	}

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, app)
	server.RegisterAdminUI(mux, rr)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "fairies-and-unicorns",
			"time":    clock.Now().UTC().Format(time.RFC3339),
		})
	})

	return &Server{
		App: app,
		Handler: httpmw.Chain(
			mux,
			httpmw.WithAccessLog(opts.Logger),
			httpmw.WithRequestID,
			httpmw.WithRecover(opts.Logger),
		),
		logger:   opts.Logger,
		tick:     time.Duration(opts.Config.Game.TickMillis) * time.Millisecond,
		autosave: time.Duration(opts.Config.Data.AutosaveSeconds) * time.Second,
	}, nil
}

// loadWorld merges the save document onto a fresh state and replays
// the time the world sat idle. A missing save starts a new world.
func loadWorld(engine game.Engine, store *save.Store, events telemetry.Repository, logger *log.Logger, now time.Time) (*game.State, error) {
	doc, ok, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	if !ok {
		st := game.NewState(engine.Bal, now)
		engine.GenerateUpgrades(st)
		return st, nil
	}

	st, err := doc.Merge(engine.Bal, now)
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	if doc.LastSaveTime != nil {
		st.LastSaveTime = *doc.LastSaveTime
	}
	if gains, replayed := engine.OfflineProgress(st, now); replayed {
		logger.Printf("offline catch-up %s: +%.0f fairies +%.0f unicorns +%.1f glitter +%.1f stardust +%.1f gold",
			gains.Duration, gains.Fairies, gains.Unicorns, gains.Glitter, gains.Stardust, gains.Gold)
		if events != nil {
			_ = events.RecordEvent(now, telemetry.EventOfflineReplayed, telemetry.EventMetadata{
				"seconds": doc.OfflineSeconds(now),
			})
		}
	}
	st.LastSaveTime = now
	if len(st.Upgrades) == 0 {
		engine.GenerateUpgrades(st)
	}
	return st, nil
}

// Run drives the tick and autosave loops until the context ends, then
// writes a final save.
func (s *Server) Run(ctx context.Context) error {
	tick := time.NewTicker(s.tick)
	defer tick.Stop()
	autosave := time.NewTicker(s.autosave)
	defer autosave.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.App.Save(); err != nil {
				s.logger.Printf("final save: %v", err)
			}
			return ctx.Err()
		case <-tick.C:
			s.App.Tick()
		case <-autosave.C:
			if err := s.App.Save(); err != nil {
				s.logger.Printf("autosave: %v", err)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
