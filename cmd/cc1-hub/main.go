package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/cc1-hub/db"
	"github.com/thatsimonsguy/cc1-hub/internal/config"
	"github.com/thatsimonsguy/cc1-hub/internal/datadog"
	"github.com/thatsimonsguy/cc1-hub/internal/env"
	"github.com/thatsimonsguy/cc1-hub/internal/hub"
	"github.com/thatsimonsguy/cc1-hub/internal/logging"
	"github.com/thatsimonsguy/cc1-hub/internal/radio"
	"github.com/thatsimonsguy/cc1-hub/system/shutdown"
)

func main() {
	cfg := config.Load()
	env.Cfg = &cfg
	logging.Init(cfg.LogLevel)

	log.Info().
		Str("db", cfg.DBPath).
		Str("serial_device", cfg.SerialDevice).
		Msg("Starting CC1 hub")

	if cfg.EnableDatadog {
		datadog.InitMetrics()
	}

	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open hub database")
	}
	shutdown.Register(conn)

	if err := db.SeedRelays(conn, cfg.Relays); err != nil {
		shutdown.ShutdownWithError(err, "Failed to seed relay registry")
	}

	link, err := radio.Open(cfg.SerialDevice, cfg.SerialBaud)
	if err != nil {
		shutdown.ShutdownWithError(err, "Failed to open radio link")
	}
	shutdown.Register(link)

	h := hub.New(conn, link)
	h.RunPollLoop()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		shutdown.Shutdown()
	}()

	if err := h.RunInboundLoop(); err != nil {
		shutdown.ShutdownWithError(err, "Radio link failed")
	}
}
