// Package store implements the durable message and user collections on
// top of Pebble.
//
// # Keyspace
//
// Keys are lexicographically ordered so a prefix scan over messages walks
// them in creation order (message IDs are time-derived and fixed width):
//   - st/meta/init          (first-run bootstrap marker)
//   - st/msg/{id}           (message records, JSON)
//   - st/user/{username}    (user records, JSON; username lowercased)
//
// # Concurrency
//
// All mutations are serialized by a store-level mutex, replacing the
// lost-update-prone whole-file read-modify-write of the system this was
// derived from. Reads take consistent point lookups or iterator scans.
package store
