// Package client contains Cobra CLI commands that talk to a running
// selftransfer server over its HTTP API.
//
// Command groups:
//
//	message  post, list, get, delete, seen
//	user     signup, login, list
//	watch    tail the live event stream
//
// The base URL comes from ST_HTTP or defaults to the local server.
package client
