// Package jobs runs the bot's periodic background work on a cron scheduler.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/ratelimit"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/user"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/metrics"
)

// Scheduler owns recurring maintenance tasks: the active-users gauge refresh
// and cleanup of in-memory rate-limit buckets.
type Scheduler struct {
	cron       *cron.Cron
	users      *user.Service
	limiter    *ratelimit.MemoryLimiter
	windowDays int
	log        *slog.Logger
}

// NewScheduler builds a Scheduler with no registered tasks.
func NewScheduler(users *user.Service, limiter *ratelimit.MemoryLimiter, windowDays int, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}

	return &Scheduler{
		cron:       cron.New(),
		users:      users,
		limiter:    limiter,
		windowDays: windowDays,
		log:        log,
	}
}

// RegisterTasks wires the recurring tasks into the cron table.
func (s *Scheduler) RegisterTasks() error {
	if _, err := s.cron.AddFunc("*/5 * * * *", s.refreshActiveUsers); err != nil {
		return err
	}

	if s.limiter != nil {
		if _, err := s.cron.AddFunc("@hourly", s.cleanupLimiter); err != nil {
			return err
		}
	}

	s.log.Info("scheduler: registered maintenance tasks")
	return nil
}

// Run starts the cron loop in its own goroutine.
func (s *Scheduler) Run() {
	s.log.Info("scheduler: starting")
	s.cron.Start()
}

// Shutdown stops the cron loop, waiting for running jobs to finish.
func (s *Scheduler) Shutdown() {
	s.log.Info("scheduler: shutting down")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshActiveUsers() {
	if s.users == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.users.CountActive(ctx, s.windowDays)
	if err != nil {
		s.log.Error("scheduler: active users refresh failed", slog.Any("error", err))
		return
	}

	metrics.SetActiveUsers(count)
}

func (s *Scheduler) cleanupLimiter() {
	s.limiter.Cleanup(time.Hour)
}
