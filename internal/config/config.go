package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

type RelaySeed struct {
	HC1  *int   `json:"hc1"`
	HC2  *int   `json:"hc2"`
	Name string `json:"name"`
}

type Config struct {
	DBPath     string
	ConfigFile string
	LogLevel   zerolog.Level

	SerialDevice string `json:"serial_device"`
	SerialBaud   int    `json:"serial_baud"`

	PollIntervalSeconds int `json:"poll_interval_seconds"`

	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`

	Relays []RelaySeed `json:"relays"`
}

func Load() Config {
	var cfg Config
	var logLevel string

	flag.StringVar(&cfg.DBPath, "db", "data/cc1-hub.db", "Path to the SQLite database file")
	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to hub config file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg.LogLevel = parseLogLevel(logLevel)

	file, err := os.Open(cfg.ConfigFile)
	if err != nil {
		panic("Failed to load config file: " + err.Error())
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		panic("Failed to parse config file: " + err.Error())
	}

	if cfg.SerialBaud == 0 {
		cfg.SerialBaud = 5000 // FS20 carrier raw rate
	}
	if cfg.PollIntervalSeconds == 0 {
		cfg.PollIntervalSeconds = 30
	}
	if cfg.DDNamespace == "" {
		cfg.DDNamespace = "cc1hub."
	}

	cfg.Validate()
	return cfg
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Validate panics on any config the hub cannot safely run with.
func (cfg *Config) Validate() {
	if cfg.SerialDevice == "" {
		panic("Missing required config field: serial_device")
	}
	// The poll loop must run at least every 15 minutes or relays fall back.
	if cfg.PollIntervalSeconds < 1 || cfg.PollIntervalSeconds > 900 {
		panic(fmt.Sprintf("poll_interval_seconds %d outside [1,900]", cfg.PollIntervalSeconds))
	}

	seen := map[string]string{}
	for i, r := range cfg.Relays {
		if r.HC1 == nil || r.HC2 == nil {
			panic(fmt.Sprintf("relay %d (%s) missing hc1/hc2", i, r.Name))
		}
		hc1, hc2 := *r.HC1, *r.HC2
		if hc1 < 0 || hc1 > 0xFE || hc2 < 0 || hc2 > 0xFE {
			panic(fmt.Sprintf("relay %d (%s) house code %d-%d outside [0,254]", i, r.Name, hc1, hc2))
		}
		key := fmt.Sprintf("%d-%d", hc1, hc2)
		if other, exists := seen[key]; exists {
			panic(fmt.Sprintf("relays %q and %q both use house code %s", r.Name, other, key))
		}
		seen[key] = r.Name
	}
}
