package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/thatsimonsguy/cc1-hub/internal/model"
)

// UpdateRelayCommand replaces the command state sent to a relay on each
// poll cycle. Values are stored as-is; the codec factory clamps them again
// at encode time.
func UpdateRelayCommand(conn *sql.DB, hc model.HouseCode, cmd model.CommandState) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	res, err := tx.Exec(`UPDATE relays SET rad_open_percent = ?, light_colour = ?, light_on_time = ?, light_flash = ? WHERE hc1 = ? AND hc2 = ?`,
		cmd.RadOpenPercent, cmd.LightColour, cmd.LightOnTime, cmd.LightFlash, hc.HC1, hc.HC2)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("update relay command: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		tx.Rollback()
		return fmt.Errorf("no relay with house code %s", hc)
	}
	return tx.Commit()
}

// SetRelayOnline marks a relay in or out of the poll rotation.
func SetRelayOnline(conn *sql.DB, hc model.HouseCode, online bool) error {
	_, err := conn.Exec(`UPDATE relays SET online = ? WHERE hc1 = ? AND hc2 = ?`, online, hc.HC1, hc.HC2)
	if err != nil {
		return fmt.Errorf("set relay online: %w", err)
	}
	return nil
}

// MarkRelaySeen records the time a frame was last received from a relay.
func MarkRelaySeen(conn *sql.DB, hc model.HouseCode, at time.Time) error {
	_, err := conn.Exec(`UPDATE relays SET last_seen = ? WHERE hc1 = ? AND hc2 = ?`,
		at.Format(time.RFC3339), hc.HC1, hc.HC2)
	if err != nil {
		return fmt.Errorf("mark relay seen: %w", err)
	}
	return nil
}

// RecordTelemetry appends a decoded poll response to the telemetry history.
func RecordTelemetry(conn *sql.DB, tel model.Telemetry) error {
	_, err := conn.Exec(`INSERT INTO telemetry (hc1, hc2, rel_humidity, pipe_temp, room_temp, ambient_light, window_open, switch_toggled, syncing, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tel.HC1, tel.HC2, tel.RelHumidity, tel.PipeTemp, tel.RoomTemp, tel.AmbientLight,
		tel.WindowOpen, tel.SwitchToggled, tel.Syncing, tel.ReceivedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record telemetry: %w", err)
	}
	return nil
}

// RecordAlert appends a decoded alert to the alert history.
func RecordAlert(conn *sql.DB, alert model.Alert) error {
	_, err := conn.Exec(`INSERT INTO alerts (hc1, hc2, received_at) VALUES (?, ?, ?)`,
		alert.HC1, alert.HC2, alert.ReceivedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record alert: %w", err)
	}
	return nil
}

// SetRelayCommandCLI is the debug-CLI entry point for updating a relay's
// command state by path rather than open handle.
func SetRelayCommandCLI(dbPath string, hc model.HouseCode, cmd model.CommandState) error {
	conn, err := InitDB(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	return UpdateRelayCommand(conn, hc, cmd)
}
