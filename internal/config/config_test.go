package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func validConfig() Config {
	return Config{
		SerialDevice:        "/dev/ttyUSB0",
		SerialBaud:          5000,
		PollIntervalSeconds: 30,
		Relays: []RelaySeed{
			{HC1: intPtr(12), HC2: intPtr(34), Name: "lounge"},
			{HC1: intPtr(56), HC2: intPtr(78), Name: "bedroom"},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := validConfig()
	assert.NotPanics(t, func() { cfg.Validate() })
}

func TestValidateMissingSerialDevice(t *testing.T) {
	cfg := validConfig()
	cfg.SerialDevice = ""
	assert.Panics(t, func() { cfg.Validate() })
}

func TestValidatePollIntervalBounds(t *testing.T) {
	cfg := validConfig()
	cfg.PollIntervalSeconds = 0
	assert.Panics(t, func() { cfg.Validate() })

	cfg.PollIntervalSeconds = 901
	assert.Panics(t, func() { cfg.Validate() })
}

func TestValidateRelaySeeds(t *testing.T) {
	cfg := validConfig()
	cfg.Relays[0].HC2 = nil
	assert.Panics(t, func() { cfg.Validate() }, "missing house code byte")

	cfg = validConfig()
	cfg.Relays[0].HC1 = intPtr(0xFF)
	assert.Panics(t, func() { cfg.Validate() }, "0xFF is the invalid sentinel")

	cfg = validConfig()
	cfg.Relays[1].HC1 = intPtr(12)
	cfg.Relays[1].HC2 = intPtr(34)
	assert.Panics(t, func() { cfg.Validate() }, "duplicate house code")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("info"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("bogus"))
}
