// Package httpserver exposes the message store and event stream over HTTP.
// Mutations go through the message service, live updates fan out over SSE
// and WebSocket, and Prometheus metrics are served on /metrics.
package httpserver
