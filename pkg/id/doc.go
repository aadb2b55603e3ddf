// Package id provides time-derived, lexicographically sortable message
// identifiers.
//
// # Format
//
// An ID is 12 bytes big-endian: [8 bytes ms_timestamp][4 bytes sequence],
// rendered as a fixed-width 24-character hex string. Byte-wise and string
// comparison both preserve chronological order, and IDs minted within the
// same millisecond remain strictly increasing by sequence.
//
// # Monotonicity
//
// The Generator guarantees per-process monotonicity:
//   - If the system clock regresses, it pins to the last seen millisecond
//     and keeps incrementing the sequence.
//   - If the sequence would overflow within one millisecond, it waits for
//     the next millisecond before emitting.
//
// Usage
//
//	g := id.NewGenerator()
//	msgID := g.Next().String()
package id
