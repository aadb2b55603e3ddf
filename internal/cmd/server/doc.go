// Package serverrun wires the runtime, broadcaster, sweeper, and HTTP
// server into a running process. The CLI entrypoint calls Run with parsed
// flags and blocks until shutdown.
package serverrun
