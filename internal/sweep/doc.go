// Package sweep runs the background expiry job. Messages past their TTL
// are deleted from the store and a delete event is broadcast per removal.
// The sweeper ticks on a fixed interval by default and can follow a cron
// expression instead for deployments that want off-peak runs.
package sweep
