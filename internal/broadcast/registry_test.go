package broadcast

import (
	"sync"
	"testing"
)

func newTestSubscriber(t *testing.T, buf int, filter string) *Subscriber {
	t.Helper()
	s, err := NewSubscriber(buf, filter)
	if err != nil {
		t.Fatalf("NewSubscriber: %v", err)
	}
	return s
}

func TestRegistryRegisterUnregister(t *testing.T) {
	reg := NewRegistry(nil)
	s := newTestSubscriber(t, 8, "")

	reg.Register(s)
	if got := reg.Len(); got != 1 {
		t.Fatalf("Len after register = %d, want 1", got)
	}

	// Re-registering the same handle is a no-op.
	reg.Register(s)
	if got := reg.Len(); got != 1 {
		t.Fatalf("Len after double register = %d, want 1", got)
	}

	reg.Unregister(s)
	if got := reg.Len(); got != 0 {
		t.Fatalf("Len after unregister = %d, want 0", got)
	}
	select {
	case <-s.Done():
	default:
		t.Fatalf("Done not closed after unregister")
	}

	// Unregistering an absent handle is a no-op.
	reg.Unregister(s)
	if got := reg.Len(); got != 0 {
		t.Fatalf("Len after double unregister = %d, want 0", got)
	}
}

func TestRegistryChurnNetZero(t *testing.T) {
	reg := NewRegistry(nil)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := NewSubscriber(4, "")
			if err != nil {
				t.Errorf("NewSubscriber: %v", err)
				return
			}
			reg.Register(s)
			reg.Unregister(s)
		}()
	}
	wg.Wait()

	if got := reg.Len(); got != 0 {
		t.Fatalf("Len after churn = %d, want 0", got)
	}
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	reg := NewRegistry(nil)
	a := newTestSubscriber(t, 4, "")
	b := newTestSubscriber(t, 4, "")
	reg.Register(a)
	reg.Register(b)

	snap := reg.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot size = %d, want 2", len(snap))
	}
	reg.Unregister(a)
	if len(snap) != 2 {
		t.Fatalf("snapshot mutated by unregister")
	}
}
