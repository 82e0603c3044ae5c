// Package autosave periodically writes the open document to a recovery
// file in the cache directory. Failures are reported through a passive
// status callback and never interrupt editing.
package autosave

import (
	"context"
	"fmt"
	"time"

	"github.com/yamaryu999/pdf-editor/internal/logger"
)

// Target is the slice of the editor session the saver needs: dirty
// tracking, the derived autosave path, and export.
type Target interface {
	Dirty() bool
	AutosavePath() string
	Export(targetPath string) error
}

// Status describes the outcome of one autosave attempt, for a passive
// status indicator.
type Status struct {
	When time.Time
	Path string
	Err  error
}

// Saver runs the periodic autosave loop.
type Saver struct {
	target   Target
	logger   *logger.Logger
	interval time.Duration
	onStatus func(Status)
}

// Config holds saver options.
type Config struct {
	Target   Target
	Logger   *logger.Logger
	Interval time.Duration // 0 disables autosave
	OnStatus func(Status)  // optional, called after every attempt
}

// New creates a saver.
func New(cfg *Config) (*Saver, error) {
	if cfg == nil || cfg.Target == nil {
		return nil, fmt.Errorf("autosave target is required")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	return &Saver{
		target:   cfg.Target,
		logger:   log,
		interval: cfg.Interval,
		onStatus: cfg.OnStatus,
	}, nil
}

// Run blocks until ctx is cancelled, attempting a save every interval.
// A zero interval returns immediately.
func (s *Saver) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Debug("Autosave disabled")
		return nil
	}

	s.logger.WithFields("interval", s.interval).Info("Starting autosave")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping autosave")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

// runOnce performs a single autosave attempt. Errors are logged and
// reported, never propagated: autosave must not block editing.
func (s *Saver) runOnce() {
	if !s.target.Dirty() {
		return
	}
	path := s.target.AutosavePath()
	if path == "" {
		return
	}

	start := time.Now()
	err := s.target.Export(path)
	if err != nil {
		s.logger.WithError(err).WithFields("path", path).Warn("Autosave failed")
	} else {
		s.logger.WithFields("path", path, "duration", time.Since(start)).Debug("Autosaved")
	}

	if s.onStatus != nil {
		s.onStatus(Status{When: time.Now(), Path: path, Err: err})
	}
}
