// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/logging"
	"github.com/tomtom215/revenuelens/internal/metrics"
)

// State is the scheduler's position in its cycle.
type State int

const (
	StateIdle State = iota
	StateWaiting
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting_for_next_window"
	case StateRunning:
		return "running"
	default:
		return "idle"
	}
}

// DefaultCooldown is the pause after a failed refresh.
const DefaultCooldown = 5 * time.Minute

// Loader runs one load. *ingest.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, source string, overwrite bool) (int, error)
}

// Status is a snapshot of the scheduler.
type Status struct {
	State      string     `json:"state"`
	Enabled    bool       `json:"enabled"`
	Hour       int        `json:"hour"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	LastRun    *time.Time `json:"last_run,omitempty"`
	LastLoaded int        `json:"last_loaded"`
	LastError  string     `json:"last_error,omitempty"`
}

// Scheduler fires an incremental load once a day at a fixed hour.
type Scheduler struct {
	loader   Loader
	source   string
	hour     int
	cooldown time.Duration
	onStart  bool
	enabled  bool
	clock    Clock
	logger   zerolog.Logger

	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	state      State
	nextRun    time.Time
	lastRun    time.Time
	lastLoaded int
	lastErr    error
}

// New creates a scheduler that loads source. A nil clock uses SystemClock.
func New(loader Loader, source string, cfg config.RefreshConfig, clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	hour := cfg.Hour
	if hour < 0 || hour > 23 {
		hour = 2
	}
	return &Scheduler{
		loader:   loader,
		source:   source,
		hour:     hour,
		cooldown: cooldown,
		onStart:  cfg.RunOnStart,
		enabled:  cfg.Enabled,
		clock:    clock,
		logger:   logging.WithComponent("refresh-scheduler"),
	}
}

// Start launches the scheduling loop. The loop ends when ctx is canceled or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("scheduler already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	if !s.enabled {
		s.logger.Info().Msg("Refresh scheduler disabled")
		go func() {
			defer close(s.doneCh)
			select {
			case <-s.stopCh:
			case <-ctx.Done():
			}
		}()
		return nil
	}

	s.logger.Info().
		Int("hour", s.hour).
		Dur("cooldown", s.cooldown).
		Str("source", s.source).
		Msg("Starting refresh scheduler")

	go s.run(ctx)
	return nil
}

// Stop ends the loop and waits for it to exit. An in-flight load is
// canceled and commits what it has processed.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	stopCh, doneCh := s.stopCh, s.doneCh
	s.running = false
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	s.logger.Info().Msg("Refresh scheduler stopped")
	return nil
}

// Status returns the current state, next fire time and last outcome.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		State:      s.state.String(),
		Enabled:    s.enabled,
		Hour:       s.hour,
		LastLoaded: s.lastLoaded,
	}
	if s.state == StateWaiting {
		next := s.nextRun
		st.NextRun = &next
	}
	if !s.lastRun.IsZero() {
		last := s.lastRun
		st.LastRun = &last
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)
	defer s.setState(StateIdle, time.Time{})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if s.onStart {
		if !s.fire(ctx) && !s.sleepUntil(ctx, s.clock.Now().Add(s.cooldown)) {
			return
		}
	}

	for {
		if !s.sleepUntil(ctx, NextWindow(s.clock.Now(), s.hour)) {
			return
		}
		if s.fire(ctx) {
			continue
		}
		if !s.sleepUntil(ctx, s.clock.Now().Add(s.cooldown)) {
			return
		}
	}
}

// sleepUntil waits for at. It reports false when the loop should exit.
func (s *Scheduler) sleepUntil(ctx context.Context, at time.Time) bool {
	s.setState(StateWaiting, at)
	metrics.SetSchedulerNextRun(at)
	s.logger.Info().
		Time("next", at).
		Dur("in", at.Sub(s.clock.Now())).
		Msg("Next scheduled refresh")

	select {
	case <-s.clock.After(at.Sub(s.clock.Now())):
		return true
	case <-ctx.Done():
		return false
	}
}

// fire runs one load and reports whether it succeeded.
func (s *Scheduler) fire(ctx context.Context) bool {
	s.setState(StateRunning, time.Time{})

	n, err := s.loader.Load(ctx, s.source, false)
	metrics.RecordSchedulerRun(err)

	s.mu.Lock()
	s.lastRun = s.clock.Now()
	s.lastLoaded = n
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled refresh failed")
		return false
	}
	s.logger.Info().Int("loaded", n).Msg("Scheduled refresh completed")
	return true
}

func (s *Scheduler) setState(state State, next time.Time) {
	s.mu.Lock()
	s.state = state
	s.nextRun = next
	s.mu.Unlock()
}
