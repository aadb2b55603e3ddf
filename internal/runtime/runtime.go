package runtime

import (
	"context"
	"errors"
	"time"

	cfgpkg "github.com/mrsanskar19/self-transfer/internal/config"
	pebblestore "github.com/mrsanskar19/self-transfer/internal/storage/pebble"
	"github.com/mrsanskar19/self-transfer/internal/store"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        logpkg.Logger
	Metrics       pebblestore.MetricsHook
}

// Runtime owns the storage handle and the message store for a single-node
// instance.
type Runtime struct {
	db     *pebblestore.DB
	store  *store.Store
	config cfgpkg.Config
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: opts.DataDir, Fsync: opts.Fsync, FsyncInterval: opts.FsyncInterval, Metrics: opts.Metrics})
	if err != nil {
		return nil, err
	}
	st, err := store.Open(db, opts.Config.PublicBaseURL, opts.Logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Runtime{db: db, store: st, config: opts.Config}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth verifies the storage layer can open an iterator.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Store returns the message store.
func (r *Runtime) Store() *store.Store { return r.store }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
