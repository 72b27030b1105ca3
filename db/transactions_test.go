package db

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/cc1-hub/internal/config"
	"github.com/thatsimonsguy/cc1-hub/internal/model"
)

func intPtr(i int) *int {
	return &i
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, createSchema(conn))
	return conn
}

func TestSeedRelaysAndQuery(t *testing.T) {
	conn := testDB(t)

	seeds := []config.RelaySeed{
		{HC1: intPtr(12), HC2: intPtr(34), Name: "lounge"},
		{HC1: intPtr(56), HC2: intPtr(78), Name: "bedroom"},
	}
	require.NoError(t, SeedRelays(conn, seeds))

	relays, err := GetRelays(conn)
	require.NoError(t, err)
	require.Len(t, relays, 2)
	assert.Equal(t, "lounge", relays[0].Name)
	assert.True(t, relays[0].Online)
	assert.Equal(t, byte(1), relays[0].Command.LightOnTime, "defaults must be in codec range")
	assert.Equal(t, byte(1), relays[0].Command.LightFlash)

	// Re-seeding renames without clobbering command state.
	require.NoError(t, UpdateRelayCommand(conn, model.HouseCode{HC1: 12, HC2: 34},
		model.CommandState{RadOpenPercent: 80, LightColour: 2, LightOnTime: 4, LightFlash: 1}))
	seeds[0].Name = "lounge-south"
	require.NoError(t, SeedRelays(conn, seeds))

	r, err := GetRelayByHouseCode(conn, model.HouseCode{HC1: 12, HC2: 34})
	require.NoError(t, err)
	assert.Equal(t, "lounge-south", r.Name)
	assert.Equal(t, byte(80), r.Command.RadOpenPercent)
}

func TestUpdateRelayCommandUnknownRelay(t *testing.T) {
	conn := testDB(t)
	err := UpdateRelayCommand(conn, model.HouseCode{HC1: 1, HC2: 2}, model.CommandState{})
	assert.Error(t, err)
}

func TestRecordAndFetchTelemetry(t *testing.T) {
	conn := testDB(t)
	hc := model.HouseCode{HC1: 12, HC2: 34}

	_, err := GetLatestTelemetry(conn, hc)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	first := model.Telemetry{
		HouseCode: hc, RelHumidity: 25, PipeTemp: 90, RoomTemp: 80,
		AmbientLight: 30, WindowOpen: true, ReceivedAt: time.Now().Add(-time.Minute),
	}
	second := model.Telemetry{
		HouseCode: hc, RelHumidity: 26, PipeTemp: 95, RoomTemp: 82,
		AmbientLight: 28, Syncing: true, ReceivedAt: time.Now(),
	}
	require.NoError(t, RecordTelemetry(conn, first))
	require.NoError(t, RecordTelemetry(conn, second))

	tel, err := GetLatestTelemetry(conn, hc)
	require.NoError(t, err)
	assert.Equal(t, byte(26), tel.RelHumidity)
	assert.Equal(t, byte(95), tel.PipeTemp)
	assert.True(t, tel.Syncing)
	assert.False(t, tel.WindowOpen)
}

func TestRecordAlertAndCount(t *testing.T) {
	conn := testDB(t)
	hc := model.HouseCode{HC1: 12, HC2: 34}
	now := time.Now()

	require.NoError(t, RecordAlert(conn, model.Alert{HouseCode: hc, ReceivedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, RecordAlert(conn, model.Alert{HouseCode: hc, ReceivedAt: now}))

	count, err := CountAlerts(conn, hc, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkRelaySeen(t *testing.T) {
	conn := testDB(t)
	require.NoError(t, SeedRelays(conn, []config.RelaySeed{{HC1: intPtr(12), HC2: intPtr(34), Name: "lounge"}}))

	at := time.Now().Truncate(time.Second)
	require.NoError(t, MarkRelaySeen(conn, model.HouseCode{HC1: 12, HC2: 34}, at))

	r, err := GetRelayByHouseCode(conn, model.HouseCode{HC1: 12, HC2: 34})
	require.NoError(t, err)
	assert.WithinDuration(t, at, r.LastSeen, time.Second)
}
