package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/serverapp"
)

func main() {
	configPath := flag.String("config", "fairies_config.yml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("no config at %s, using defaults", *configPath)
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	} else if err != nil {
		log.Fatalf("load config: %v", err)
	}

	srv, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Handler}
	go func() {
		log.Printf("listening on http://localhost%s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	// Blocks until the context is cancelled, then writes a final save.
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("run: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
