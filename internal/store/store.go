package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/mrsanskar19/self-transfer/internal/storage/pebble"
	"github.com/mrsanskar19/self-transfer/pkg/id"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

// Errors surfaced to mutation handlers.
var (
	ErrNotFound           = errors.New("store: not found")
	ErrDuplicateUser      = errors.New("store: username already exists")
	ErrInvalidCredentials = errors.New("store: invalid username or password")
)

// Store owns the message and user collections. All mutations go through a
// single mutex so concurrent writers cannot clobber each other.
type Store struct {
	db        *pebblestore.DB
	ids       *id.Generator
	shareBase string
	logger    logpkg.Logger

	mu sync.Mutex
}

// Open wires a Store over the given database. shareBase is the public base
// URL used to derive shareable links for file messages. First open writes a
// bootstrap marker so an empty keyspace is an initialized, empty collection.
func Open(db *pebblestore.DB, shareBase string, logger logpkg.Logger) (*Store, error) {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	s := &Store{db: db, ids: id.NewGenerator(), shareBase: shareBase, logger: logger.WithComponent("store")}
	if _, err := db.Get(metaInitKey); err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			return nil, err
		}
		init, _ := json.Marshal(map[string]int64{"createdAtMs": time.Now().UnixMilli()})
		if err := db.Set(metaInitKey, init); err != nil {
			return nil, err
		}
		s.logger.Info("initialized empty collection")
	}
	return s, nil
}

// ListFilter narrows ListMessages results.
type ListFilter struct {
	UserID string
}

// AppendMessage persists a new message, assigning ID and UploadedAt when
// absent, and deriving ShareableURL for file messages. The returned copy is
// the full stored record.
func (s *Store) AppendMessage(m Message) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = s.ids.Next().String()
	}
	if m.UploadedAt.IsZero() {
		m.UploadedAt = time.Now().UTC()
	}
	if m.Type == TypeFile && m.ShareableURL == "" && s.shareBase != "" {
		m.ShareableURL = fmt.Sprintf("%s/v1/shared/%s", s.shareBase, m.ID)
	}
	if m.SeenBy == nil {
		m.SeenBy = []string{}
	}
	if err := s.putMessage(m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// GetMessage returns the full record, including URL, or ErrNotFound.
func (s *Store) GetMessage(msgID string) (Message, error) {
	b, err := s.db.Get(keyMessage(msgID))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return Message{}, ErrNotFound
		}
		return Message{}, err
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// ListMessages returns messages in creation order with URL stripped,
// optionally filtered by author.
func (s *Store) ListMessages(filter ListFilter) ([]Message, error) {
	out := []Message{}
	err := s.scanMessages(func(m Message) bool {
		if filter.UserID != "" && m.UserID != filter.UserID {
			return true
		}
		out = append(out, m.WithoutURL())
		return true
	})
	return out, err
}

// ExpiredMessages returns URL-stripped records older than ttl at now.
func (s *Store) ExpiredMessages(now time.Time, ttl time.Duration) ([]Message, error) {
	out := []Message{}
	err := s.scanMessages(func(m Message) bool {
		if m.Expired(now, ttl) {
			out = append(out, m.WithoutURL())
		}
		return true
	})
	return out, err
}

// MarkSeen records the viewer in the message's seen set. Returns the updated
// record and whether the set changed; a repeat viewer is a no-op, not an
// error.
func (s *Store) MarkSeen(msgID, viewer string) (Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.GetMessage(msgID)
	if err != nil {
		return Message{}, false, err
	}
	if m.SeenByContains(viewer) {
		return m, false, nil
	}
	m.SeenBy = append(m.SeenBy, viewer)
	if err := s.putMessage(m); err != nil {
		return Message{}, false, err
	}
	return m, true, nil
}

// DeleteMessage removes the record. Deleting a missing id returns
// ErrNotFound so callers can treat a repeat delete as benign.
func (s *Store) DeleteMessage(msgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyMessage(msgID)
	if _, err := s.db.Get(key); err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Delete(key)
}

func (s *Store) putMessage(m Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.Set(keyMessage(m.ID), b)
}

// scanMessages walks the message keyspace in key (creation) order, invoking
// fn per decoded record until fn returns false. The walk runs against a
// snapshot so concurrent writes do not shift the view mid-scan.
func (s *Store) scanMessages(fn func(Message) bool) error {
	snap := s.db.NewSnapshot()
	defer snap.Close()

	iter, err := snap.NewIter(&pebble.IterOptions{
		LowerBound: msgPrefix,
		UpperBound: prefixUpperBound(msgPrefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for ok := iter.First(); ok; ok = iter.Next() {
		var m Message
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			s.logger.Warn("skipping undecodable message record", logpkg.Str("key", string(iter.Key())), logpkg.Err(err))
			continue
		}
		if !fn(m) {
			break
		}
	}
	return nil
}
