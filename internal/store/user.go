package store

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
)

// User is an account record. Passwords are stored as given; this service
// is an ephemeral sharing demo, not an identity provider.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns a copy safe for listing (password cleared).
func (u User) Public() User {
	u.Password = ""
	return u
}

// CreateUser registers a new account. Usernames are unique
// case-insensitively.
func (s *Store) CreateUser(username, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyUser(username)
	if _, err := s.db.Get(key); err == nil {
		return User{}, ErrDuplicateUser
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return User{}, err
	}

	u := User{
		ID:        s.ids.Next().String(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(u)
	if err != nil {
		return User{}, err
	}
	if err := s.db.Set(key, b); err != nil {
		return User{}, err
	}
	return u.Public(), nil
}

// Authenticate checks a username/password pair. Lookup is case-insensitive
// on the username; the password must match exactly.
func (s *Store) Authenticate(username, password string) (User, error) {
	b, err := s.db.Get(keyUser(username))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return User{}, err
	}
	if !strings.EqualFold(u.Username, username) || u.Password != password {
		return User{}, ErrInvalidCredentials
	}
	return u.Public(), nil
}

// ListUsers returns all accounts with passwords cleared.
func (s *Store) ListUsers() ([]User, error) {
	snap := s.db.NewSnapshot()
	defer snap.Close()

	iter, err := snap.NewIter(&pebble.IterOptions{
		LowerBound: userPrefix,
		UpperBound: prefixUpperBound(userPrefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	out := []User{}
	for ok := iter.First(); ok; ok = iter.Next() {
		var u User
		if err := json.Unmarshal(iter.Value(), &u); err != nil {
			continue
		}
		out = append(out, u.Public())
	}
	return out, nil
}
