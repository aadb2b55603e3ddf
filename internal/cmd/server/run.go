package serverrun

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/mrsanskar19/self-transfer/internal/broadcast"
	cfgpkg "github.com/mrsanskar19/self-transfer/internal/config"
	"github.com/mrsanskar19/self-transfer/internal/runtime"
	httpserver "github.com/mrsanskar19/self-transfer/internal/server/http"
	pebblestore "github.com/mrsanskar19/self-transfer/internal/storage/pebble"
	"github.com/mrsanskar19/self-transfer/internal/sweep"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

type Options struct {
	DataDir       string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Run starts the HTTP server and expiry sweeper and blocks until ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers
	// without signal handling still shut down cleanly.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	storeDir := filepath.Join(opts.DataDir, "store")

	cfg := &logpkg.Config{
		Level:  getenvDefault("ST_LOG_LEVEL", "info"),
		Format: getenvDefault("ST_LOG_FORMAT", "text"),
	}
	procLogger, err := logpkg.ApplyConfig(cfg)
	if err != nil {
		lvl := logpkg.InfoLevel
		if l, e := logpkg.ParseLevel(cfg.Level); e == nil {
			lvl = l
		}
		procLogger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
	}

	// Redirect stdlib logs (e.g., Pebble) to our logger
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{
		DataDir:       storeDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
		Logger:        procLogger,
		Metrics:       pebblestore.NewPromMetrics(),
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("Starting selftransfer server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("data_dir", storeDir),
		logpkg.Str("level", cfg.Level),
		logpkg.Str("format", cfg.Format),
		logpkg.Int("message_ttl_s", opts.Config.MessageTTLSeconds),
		logpkg.Int("sub_buf", opts.Config.SubscriberBuffer),
	)

	reg := broadcast.NewRegistry(procLogger)
	bc := broadcast.NewBroadcaster(reg, procLogger)
	hsrv := httpserver.New(rt, reg, bc, procLogger)

	sweeper, err := sweep.New(hsrv.Service(), opts.Config.SweepInterval(), opts.Config.Sweep.Cron, procLogger)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(sctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			log.Printf("http error: %v", err)
		}
	}()

	<-sctx.Done()
	// Shut the server down before closing the runtime/DB to avoid races.
	hsrv.Close()
	wg.Wait()
	return nil
}
