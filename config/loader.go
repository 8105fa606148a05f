package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Answer freshness defaults per network, seconds.
const (
	defaultMetroTTL = 30
	defaultBusTTL   = 10
	defaultTrainTTL = 10
)

// LoadAppConfig loads and validates the application configuration from
// config.yml, then fills in defaults for anything left unset.
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	return LoadAppConfigBytes(data)
}

// LoadAppConfigBytes parses and validates raw config bytes. Split out so
// tests and embedders can load without touching the filesystem.
func LoadAppConfigBytes(data []byte) error {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	applyDefaults(&Config)
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.TTL.Metro == 0 {
		cfg.TTL.Metro = defaultMetroTTL
	}
	if cfg.TTL.Bus == 0 {
		cfg.TTL.Bus = defaultBusTTL
	}
	if cfg.TTL.Train == 0 {
		cfg.TTL.Train = defaultTrainTTL
	}
	if cfg.Feed.TTLMS == 0 {
		cfg.Feed.TTLMS = 60000
	}
	if cfg.HTTP.TimeoutMS == 0 {
		cfg.HTTP.TimeoutMS = 10000
	}
	if cfg.HTTP.MaxRetries == 0 {
		cfg.HTTP.MaxRetries = 3
	}
	if cfg.HTTP.BaseDelayMS == 0 {
		cfg.HTTP.BaseDelayMS = 100
	}
	if cfg.HTTP.MaxDelayMS == 0 {
		cfg.HTTP.MaxDelayMS = 5000
	}
	if cfg.Cache.SweepIntervalMS == 0 {
		cfg.Cache.SweepIntervalMS = 60000
	}
}

// TTLForMode returns the answer freshness window in seconds for the named
// network, falling back to the bus default for unknown names.
func TTLForMode(mode string) int {
	switch mode {
	case "metro":
		return Config.TTL.Metro
	case "train":
		return Config.TTL.Train
	case "bus":
		return Config.TTL.Bus
	default:
		return Config.TTL.Bus
	}
}
