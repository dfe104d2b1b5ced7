// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"
)

// runTimeout bounds a single scheduled backup.
const runTimeout = 2 * time.Minute

// Scheduler runs the backup service every few hours.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
}

// NewScheduler schedules svc every intervalHours. It returns nil when
// intervalHours is not positive, meaning scheduled backups are off.
func NewScheduler(svc *Service, intervalHours int) (*Scheduler, error) {
	if intervalHours <= 0 {
		return nil, nil
	}

	s := &Scheduler{cron: cron.New(), svc: svc}
	spec := fmt.Sprintf("@every %dh", intervalHours)
	if _, err := s.cron.AddFunc(spec, recoveryWrapper(s.run)); err != nil {
		return nil, fmt.Errorf("schedule backup %q: %w", spec, err)
	}
	slog.Info("backups scheduled", "every_hours", intervalHours)
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	if s != nil {
		s.cron.Start()
	}
}

// Stop stops the scheduler and waits for a running backup to finish or
// ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	_, err := s.svc.Run(ctx)
	switch {
	case errors.Is(err, ErrNoChange):
		slog.Info("scheduled backup skipped, content unchanged")
	case err != nil:
		slog.Error("scheduled backup failed", "error", err)
	}
}

func recoveryWrapper(job func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("backup job panicked", "error", r, "stack", string(debug.Stack()))
			}
		}()
		job()
	}
}
