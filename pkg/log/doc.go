// Package log provides the structured logging facade used across the
// self-transfer services.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Output goes through a pluggable
// Formatter (text or JSON) and one or more Outputs; loggers are constructed
// and injected explicitly rather than accessed through globals.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("server"))
//	l.Info("server started", log.Str("addr", ":8080"))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config (level + format),
// typically fed from environment variables. RedirectStdLog routes standard
// library log output (e.g. from Pebble) through a Logger.
package log
