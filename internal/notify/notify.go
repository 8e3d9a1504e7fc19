// Package notify runs the supplement reminder scheduler. It ticks once
// a minute, matches enabled schedules against the current weekday and
// time, and delivers at most one reminder per (user, supplement, time)
// per day.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// Notifier delivers one reminder text to the user's transport.
type Notifier interface {
	Notify(ctx context.Context, userID model.UserID, text string) error
}

// Scheduler matches supplement schedules against wall-clock minutes.
// It runs in its own goroutine and never blocks user event handling.
type Scheduler struct {
	repo     repository.SupplementRepository
	out      Notifier
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	sentDay string
	sent    map[string]bool
}

// NewScheduler constructs a scheduler ticking once a minute.
func NewScheduler(repo repository.SupplementRepository, out Notifier, log *zap.Logger) *Scheduler {
	return &Scheduler{
		repo:     repo,
		out:      out,
		log:      log,
		interval: time.Minute,
		now:      time.Now,
		sent:     make(map[string]bool),
	}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

// tick performs one matching pass.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()
	day := now.Format("2006-01-02")
	hm := now.Format("15:04")
	weekday := strings.ToLower(now.Weekday().String())

	supps, err := s.repo.ListNotifiable(ctx)
	if err != nil {
		s.log.Warn("reminder pass failed", zap.Error(err))
		return
	}

	for i := range supps {
		supp := &supps[i]
		if !scheduledToday(supp, weekday) {
			continue
		}
		for _, at := range supp.Times {
			if at != hm {
				continue
			}
			key := dedupKey(supp, at, day)
			if s.alreadySent(day, key) {
				continue
			}
			text := fmt.Sprintf("Time to take %s (%s).", supp.Name, at)
			if err := s.out.Notify(ctx, supp.UserID, text); err != nil {
				s.log.Warn("reminder delivery failed",
					zap.String("user", string(supp.UserID)),
					zap.String("supplement", supp.Name),
					zap.Error(err),
				)
				continue
			}
			s.markSent(day, key)
		}
	}
}

func scheduledToday(supp *model.Supplement, weekday string) bool {
	for _, d := range supp.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

func dedupKey(supp *model.Supplement, at, day string) string {
	return string(supp.UserID) + "|" + supp.ID.String() + "|" + at + "|" + day
}

// alreadySent also rolls the dedup set over at midnight so it cannot
// grow without bound.
func (s *Scheduler) alreadySent(day, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sentDay != day {
		s.sentDay = day
		s.sent = make(map[string]bool)
	}
	return s.sent[key]
}

func (s *Scheduler) markSent(day, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sentDay == day {
		s.sent[key] = true
	}
}
