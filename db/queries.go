package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/thatsimonsguy/cc1-hub/internal/model"
)

// GetRelays retrieves all relays from the database.
func GetRelays(conn *sql.DB) ([]model.Relay, error) {
	rows, err := conn.Query(`SELECT hc1, hc2, name, online, rad_open_percent, light_colour, light_on_time, light_flash, last_seen FROM relays`)
	if err != nil {
		return nil, fmt.Errorf("failed to query relays: %w", err)
	}
	defer rows.Close()

	var relays []model.Relay
	for rows.Next() {
		r, err := scanRelay(rows)
		if err != nil {
			return nil, err
		}
		relays = append(relays, r)
	}
	return relays, rows.Err()
}

// GetRelayByHouseCode retrieves a single relay, or sql.ErrNoRows if the
// house code is unknown.
func GetRelayByHouseCode(conn *sql.DB, hc model.HouseCode) (*model.Relay, error) {
	row := conn.QueryRow(`SELECT hc1, hc2, name, online, rad_open_percent, light_colour, light_on_time, light_flash, last_seen FROM relays WHERE hc1 = ? AND hc2 = ?`,
		hc.HC1, hc.HC2)
	r, err := scanRelay(row)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRelay(row scanner) (model.Relay, error) {
	var r model.Relay
	var lastSeen sql.NullString
	err := row.Scan(&r.HC1, &r.HC2, &r.Name, &r.Online,
		&r.Command.RadOpenPercent, &r.Command.LightColour,
		&r.Command.LightOnTime, &r.Command.LightFlash, &lastSeen)
	if err != nil {
		return r, fmt.Errorf("failed to scan relay: %w", err)
	}
	if lastSeen.Valid {
		r.LastSeen, _ = time.Parse(time.RFC3339, lastSeen.String)
	}
	return r, nil
}

// GetLatestTelemetry retrieves the most recent poll response stored for a
// relay, or sql.ErrNoRows if none has been recorded.
func GetLatestTelemetry(conn *sql.DB, hc model.HouseCode) (*model.Telemetry, error) {
	var tel model.Telemetry
	var receivedAt string
	err := conn.QueryRow(`SELECT hc1, hc2, rel_humidity, pipe_temp, room_temp, ambient_light, window_open, switch_toggled, syncing, received_at
		FROM telemetry WHERE hc1 = ? AND hc2 = ? ORDER BY id DESC LIMIT 1`,
		hc.HC1, hc.HC2).Scan(&tel.HC1, &tel.HC2, &tel.RelHumidity, &tel.PipeTemp, &tel.RoomTemp,
		&tel.AmbientLight, &tel.WindowOpen, &tel.SwitchToggled, &tel.Syncing, &receivedAt)
	if err != nil {
		return nil, err
	}
	tel.ReceivedAt, _ = time.Parse(time.RFC3339, receivedAt)
	return &tel, nil
}

// CountAlerts returns the number of alerts recorded for a relay since the
// given time.
func CountAlerts(conn *sql.DB, hc model.HouseCode, since time.Time) (int, error) {
	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM alerts WHERE hc1 = ? AND hc2 = ? AND received_at >= ?`,
		hc.HC1, hc.HC2, since.Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return count, nil
}
