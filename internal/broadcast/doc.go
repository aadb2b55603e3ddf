// Package broadcast implements the in-process event fan-out: a registry of
// live subscribers and a fire-and-forget broadcaster that pushes serialized
// domain events to each of them.
//
// The registry is an explicitly owned instance injected into both the
// streaming endpoints (which register subscribers) and the broadcaster
// (which iterates them); there is no process-global state.
//
// Each subscriber owns a bounded queue. Broadcast never blocks: a full
// queue means a dead or stalled consumer and the subscriber is kicked,
// leaving the rest of the fan-out untouched. Delivery is at-most-once with
// no replay; reconnecting clients resynchronize by re-fetching the list.
package broadcast
