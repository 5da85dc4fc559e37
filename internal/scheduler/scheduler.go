package scheduler

import (
	"context"
	"log/slog"
	"time"

	"content_plan_bot/internal/dates"
	"content_plan_bot/internal/model"
	"content_plan_bot/internal/storage"
)

// Reminder runs one reminder.
type Reminder interface {
	Run(ctx context.Context, trigger model.Trigger) (model.Run, error)
}

// Scheduler fires the daily reminder once the configured local time has passed.
type Scheduler struct {
	reminder Reminder
	store    storage.Storage
	clock    *dates.Clock
	remindAt int
	log      *slog.Logger
	tick     time.Duration
	lastDay  string
}

// New creates a Scheduler that runs at remindAt minutes past local midnight.
func New(reminder Reminder, store storage.Storage, clock *dates.Clock, remindAt int, log *slog.Logger) *Scheduler {
	return &Scheduler{
		reminder: reminder,
		store:    store,
		clock:    clock,
		remindAt: remindAt,
		log:      log,
		tick:     1 * time.Minute,
	}
}

// SetTickInterval overrides the default 1-minute check interval.
func (s *Scheduler) SetTickInterval(d time.Duration) {
	s.tick = d
}

// Run starts the scheduler loop, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.check(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *Scheduler) check(ctx context.Context) {
	now := s.clock.Now()
	if now.Hour()*60+now.Minute() < s.remindAt {
		return
	}

	day := s.clock.Today()
	if day == s.lastDay {
		return
	}

	// A restart after the reminder time must not send the digest twice.
	done, err := s.store.HasRun(ctx, day, model.TriggerSchedule)
	if err != nil {
		s.log.Error("check scheduled run", "day", day, "error", err)
		return
	}
	if done {
		s.lastDay = day
		return
	}

	s.log.Debug("scheduled reminder due", "day", day)
	if _, err := s.reminder.Run(ctx, model.TriggerSchedule); err != nil {
		s.log.Warn("scheduled reminder failed", "day", day, "error", err)
	}
	s.lastDay = day
}
