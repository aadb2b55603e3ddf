package store

import (
	"errors"
	"testing"
	"time"

	pebblestore "github.com/mrsanskar19/self-transfer/internal/storage/pebble"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	logger, _ := logpkg.ApplyConfig(&logpkg.Config{Level: "error"})
	s, err := Open(db, "http://share.test", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	m, err := s.AppendMessage(Message{Type: TypeText, Content: "hi", UserID: "alice"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if m.UploadedAt.IsZero() {
		t.Fatalf("expected assigned uploadedAt")
	}
	if m.ShareableURL != "" {
		t.Fatalf("text message should not get a shareable url")
	}
	if m.SeenBy == nil || len(m.SeenBy) != 0 {
		t.Fatalf("seenBy should start empty, got %v", m.SeenBy)
	}
}

func TestAppendFileDerivesShareableURL(t *testing.T) {
	s := newTestStore(t)
	m, err := s.AppendMessage(Message{Type: TypeFile, Content: "report.pdf", Name: "report.pdf", URL: "data:application/pdf;base64,AAAA", UserID: "bob"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	want := "http://share.test/v1/shared/" + m.ID
	if m.ShareableURL != want {
		t.Fatalf("shareable url: got %q want %q", m.ShareableURL, want)
	}
}

func TestListStripsURLAndFilters(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AppendMessage(Message{Type: TypeText, Content: "a", UserID: "alice"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	f, err := s.AppendMessage(Message{Type: TypeFile, Content: "f.bin", URL: "data:;base64,xyz", UserID: "bob"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := s.ListMessages(ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 messages, got %d", len(all))
	}
	for _, m := range all {
		if m.URL != "" {
			t.Fatalf("list leaked url for %s", m.ID)
		}
	}

	bobs, err := s.ListMessages(ListFilter{UserID: "bob"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(bobs) != 1 || bobs[0].ID != f.ID {
		t.Fatalf("filter by user failed: %v", bobs)
	}

	// direct fetch keeps the payload
	got, err := s.GetMessage(f.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.URL == "" {
		t.Fatalf("direct fetch should include url")
	}
}

func TestListOrderMatchesCreation(t *testing.T) {
	s := newTestStore(t)
	var ids []string
	for i := 0; i < 5; i++ {
		m, err := s.AppendMessage(Message{Type: TypeText, Content: "x", UserID: "u"})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		ids = append(ids, m.ID)
	}
	all, err := s.ListMessages(ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, m := range all {
		if m.ID != ids[i] {
			t.Fatalf("order mismatch at %d: %s != %s", i, m.ID, ids[i])
		}
	}
}

func TestMarkSeenIdempotent(t *testing.T) {
	s := newTestStore(t)
	m, _ := s.AppendMessage(Message{Type: TypeText, Content: "hi", UserID: "alice"})

	upd, changed, err := s.MarkSeen(m.ID, "10.0.0.1")
	if err != nil || !changed {
		t.Fatalf("first seen: changed=%v err=%v", changed, err)
	}
	if len(upd.SeenBy) != 1 || upd.SeenBy[0] != "10.0.0.1" {
		t.Fatalf("seenBy: %v", upd.SeenBy)
	}

	upd2, changed2, err := s.MarkSeen(m.ID, "10.0.0.1")
	if err != nil || changed2 {
		t.Fatalf("repeat seen should be a no-op: changed=%v err=%v", changed2, err)
	}
	if len(upd2.SeenBy) != 1 {
		t.Fatalf("seenBy grew on repeat: %v", upd2.SeenBy)
	}

	if _, _, err := s.MarkSeen("missing", "10.0.0.1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsTerminal(t *testing.T) {
	s := newTestStore(t)
	m, _ := s.AppendMessage(Message{Type: TypeText, Content: "bye", UserID: "alice"})

	if err := s.DeleteMessage(m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetMessage(m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fetch after delete: %v", err)
	}
	if err := s.DeleteMessage(m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestExpiredMessages(t *testing.T) {
	s := newTestStore(t)
	old, _ := s.AppendMessage(Message{Type: TypeText, Content: "old", UserID: "u", UploadedAt: time.Now().Add(-2 * time.Hour)})
	fresh, _ := s.AppendMessage(Message{Type: TypeText, Content: "fresh", UserID: "u"})

	expired, err := s.ExpiredMessages(time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("expired: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != old.ID {
		t.Fatalf("expected only the old message, got %v", expired)
	}
	_ = fresh
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	u, err := s.CreateUser("Alice", "s3cret")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Password != "" {
		t.Fatalf("create leaked password")
	}

	if _, err := s.CreateUser("alice", "other"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("case-insensitive duplicate should be rejected, got %v", err)
	}

	if _, err := s.Authenticate("alice", "s3cret"); err != nil {
		t.Fatalf("auth: %v", err)
	}
	if _, err := s.Authenticate("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := s.Authenticate("nobody", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}

	users, err := s.ListUsers()
	if err != nil || len(users) != 1 {
		t.Fatalf("list users: %v %v", users, err)
	}
	if users[0].Password != "" {
		t.Fatalf("list leaked password")
	}
}

func TestBootstrapSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	logger, _ := logpkg.ApplyConfig(&logpkg.Config{Level: "error"})
	s, err := Open(db, "", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	m, _ := s.AppendMessage(Message{Type: TypeText, Content: "persisted", UserID: "u"})
	_ = db.Close()

	db2, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("reopen pebble: %v", err)
	}
	t.Cleanup(func() { _ = db2.Close() })
	s2, err := Open(db2, "", logger)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	got, err := s2.GetMessage(m.ID)
	if err != nil || got.Content != "persisted" {
		t.Fatalf("message lost across reopen: %v %v", got, err)
	}
}
