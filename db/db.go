package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/cc1-hub/internal/config"
)

// InitDB opens the hub database and creates the schema if needed.
func InitDB(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := createSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func createSchema(conn *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS relays (
			hc1 INTEGER NOT NULL,
			hc2 INTEGER NOT NULL,
			name TEXT NOT NULL,
			online BOOLEAN NOT NULL DEFAULT TRUE,
			rad_open_percent INTEGER NOT NULL DEFAULT 0,
			light_colour INTEGER NOT NULL DEFAULT 0,
			light_on_time INTEGER NOT NULL DEFAULT 1,
			light_flash INTEGER NOT NULL DEFAULT 1,
			last_seen TEXT,
			PRIMARY KEY (hc1, hc2)
		)`,
		`CREATE TABLE IF NOT EXISTS telemetry (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hc1 INTEGER NOT NULL,
			hc2 INTEGER NOT NULL,
			rel_humidity INTEGER NOT NULL,
			pipe_temp INTEGER NOT NULL,
			room_temp INTEGER NOT NULL,
			ambient_light INTEGER NOT NULL,
			window_open BOOLEAN NOT NULL,
			switch_toggled BOOLEAN NOT NULL,
			syncing BOOLEAN NOT NULL,
			received_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hc1 INTEGER NOT NULL,
			hc2 INTEGER NOT NULL,
			received_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SeedRelays inserts the configured relay list, leaving command state on
// already-known relays untouched.
func SeedRelays(conn *sql.DB, relays []config.RelaySeed) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range relays {
		_, err = tx.Exec(`INSERT INTO relays (hc1, hc2, name, online) VALUES (?, ?, ?, TRUE)
			ON CONFLICT(hc1, hc2) DO UPDATE SET name = excluded.name`,
			*r.HC1, *r.HC2, r.Name)
		if err != nil {
			return fmt.Errorf("failed to seed relay %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.Info().Int("relays", len(relays)).Msg("Relay registry seeded from config")
	return nil
}
