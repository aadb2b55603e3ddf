package store

import "strings"

// Keyspace helpers for Pebble keys.
//
// Layout (lexicographically sortable):
// - st/meta/init
// - st/msg/{id}
// - st/user/{username}

var (
	metaInitKey = []byte("st/meta/init")
	msgPrefix   = []byte("st/msg/")
	userPrefix  = []byte("st/user/")
)

// keyMessage builds the record key for a message id.
func keyMessage(id string) []byte {
	k := make([]byte, 0, len(msgPrefix)+len(id))
	k = append(k, msgPrefix...)
	k = append(k, id...)
	return k
}

// keyUser builds the record key for a username (case-insensitive).
func keyUser(username string) []byte {
	u := strings.ToLower(username)
	k := make([]byte, 0, len(userPrefix)+len(u))
	k = append(k, userPrefix...)
	k = append(k, u...)
	return k
}

// prefixUpperBound returns the smallest key greater than every key with the
// given prefix, for use as an iterator upper bound.
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
