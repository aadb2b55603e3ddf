package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// HTTPAddr is the listen address for the HTTP API.
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`
	// PublicBaseURL is used to derive shareable links for file messages.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	// MessageTTLSeconds is the message expiry window (default one hour).
	MessageTTLSeconds int `json:"messageTtlSeconds" yaml:"messageTtlSeconds"`
	// Sweep controls the expiry sweeper.
	Sweep SweepConfig `json:"sweep" yaml:"sweep"`
	// SubscriberBuffer is the bounded per-subscriber event queue size.
	SubscriberBuffer int `json:"subscriberBuffer" yaml:"subscriberBuffer"`
	// MaxPayloadBytes bounds a create request body (text or encoded file).
	MaxPayloadBytes int `json:"maxPayloadBytes" yaml:"maxPayloadBytes"`
}

// SweepConfig captures expiry sweeper scheduling.
type SweepConfig struct {
	// IntervalSeconds drives the periodic sweep ticker. Zero disables it.
	IntervalSeconds int `json:"intervalSeconds" yaml:"intervalSeconds"`
	// Cron optionally schedules sweeps with a cron expression instead of
	// the fixed interval.
	Cron string `json:"cron" yaml:"cron"`
	// OnList runs an opportunistic sweep before serving list requests.
	OnList bool `json:"onList" yaml:"onList"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:          ":8080",
		PublicBaseURL:     "http://127.0.0.1:8080",
		MessageTTLSeconds: 3600,
		Sweep: SweepConfig{
			IntervalSeconds: 60,
			OnList:          true,
		},
		SubscriberBuffer: 256,
		MaxPayloadBytes:  5 << 20,
	}
}

// MessageTTL returns the expiry window as a duration.
func (c Config) MessageTTL() time.Duration {
	if c.MessageTTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.MessageTTLSeconds) * time.Second
}

// SweepInterval returns the periodic sweep interval as a duration.
func (c Config) SweepInterval() time.Duration {
	if c.Sweep.IntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Sweep.IntervalSeconds) * time.Second
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// LoadDotEnv overlays a .env file onto the process environment when present.
// A missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
}
