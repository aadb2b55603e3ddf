// Package runtime wires storage, the message store, and configuration into
// a single-node instance. Transports and services receive a *Runtime instead
// of raw storage handles.
package runtime
