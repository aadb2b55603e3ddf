package config

import (
	"os"
	"strconv"
)

// FromEnv overlays ST_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("ST_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ST_PUBLIC_BASE_URL"); v != "" {
		cfg.PublicBaseURL = v
	}
	if v := os.Getenv("ST_MESSAGE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MessageTTLSeconds = n
		}
	}
	if v := os.Getenv("ST_SWEEP_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sweep.IntervalSeconds = n
		}
	}
	if v := os.Getenv("ST_SWEEP_CRON"); v != "" {
		cfg.Sweep.Cron = v
	}
	if v := os.Getenv("ST_SWEEP_ON_LIST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Sweep.OnList = b
		}
	}
	if v := os.Getenv("ST_SUBSCRIBER_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SubscriberBuffer = n
		}
	}
	if v := os.Getenv("ST_MAX_PAYLOAD_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPayloadBytes = n
		}
	}
}
