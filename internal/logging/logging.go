// Package logging provides categorized loggers for the engine, built on zap.
// Logging is off by default: a library embedded in a learning UI must stay
// silent unless the host opts into debug mode. Each engine subsystem logs
// under its own category so a host can enable them selectively.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"algoviz/internal/config"
)

// Category names one engine subsystem.
type Category string

const (
	CategorySandbox  Category = "sandbox"  // learner code execution
	CategoryHarness  Category = "harness"  // test orchestration
	CategoryPlayback Category = "playback" // playback controller
	CategoryCatalog  Category = "catalog"  // scenario catalog
	CategoryDrafts   Category = "drafts"   // draft persistence
	CategoryCLI      Category = "cli"      // command line surface
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	cfg     = config.DefaultLoggingConfig()
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the root logger from cfg. Call once at startup; before
// Initialize (or with DebugMode off) every category logger is a nop.
func Initialize(c config.LoggingConfig) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = c
	loggers = make(map[Category]*zap.Logger)

	if !c.DebugMode {
		root = zap.NewNop()
		return nil
	}

	zc := zap.NewDevelopmentConfig()
	if lvl, err := zapcore.ParseLevel(c.Level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zc.Build()
	if err != nil {
		return err
	}
	root = logger
	return nil
}

// Get returns the logger for a category. Disabled categories get a nop
// logger, so call sites never need to guard.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[cat]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}

	l := zap.NewNop()
	if cfg.DebugMode && categoryEnabled(cat) {
		l = root.Named(string(cat))
	}
	loggers[cat] = l
	return l
}

func categoryEnabled(cat Category) bool {
	if cfg.Categories == nil {
		return true
	}
	enabled, ok := cfg.Categories[string(cat)]
	if !ok {
		return true
	}
	return enabled
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
