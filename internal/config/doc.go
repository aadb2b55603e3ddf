// Package config provides loading and environment overlay for the
// self-transfer server configuration. It exposes a Default() baseline,
// JSON/YAML file loading, and ST_* environment overrides.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/selftransfer.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
