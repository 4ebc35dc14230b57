// Package scanner drives the periodic due-check over the stored collections.
// Each tick reads an immutable snapshot, sends one-shot notifications for
// due normal-mode records, and raises at most one alarm at a time for
// alarm-mode records. An alarm stays raised until explicit dismissal or
// snooze; there is no timeout auto-dismissal.
package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/qenapp/qen/internal/logger"
	"github.com/qenapp/qen/internal/models"
	"github.com/qenapp/qen/internal/state"
	"github.com/qenapp/qen/internal/utils"
)

// Notifier delivers a one-shot platform notification. Best effort: a failed
// delivery is logged and dropped, never queued or retried.
type Notifier interface {
	Notify(title, body string) error
}

// Player loops the alarm sound between Start and Stop. Playback failure is
// non-fatal; the alarm is still presented.
type Player interface {
	Start()
	Stop()
}

// Decision is the user's answer to a raised alarm.
type Decision int

const (
	// Dismiss marks the record done (event completion flag, habit ledger
	// toggle for today) and returns the scanner to idle.
	Dismiss Decision = iota
	// Snooze returns the scanner to idle without touching the record, so
	// the alarm handler can re-present it later.
	Snooze
)

// Alarm identifies the record an alarm was raised for. Exactly one of Event
// or Habit is set.
type Alarm struct {
	Event *models.Event
	Habit *models.Habit
}

func (a Alarm) Title() string {
	if a.Event != nil {
		return a.Event.Title
	}
	return a.Habit.Title
}

// Handler presents a raised alarm to the user and blocks until a decision.
// Because presentation is synchronous, no overlapping scans are possible.
type Handler func(Alarm) Decision

type Scanner struct {
	st       *state.State
	notifier Notifier
	player   Player
	handler  Handler
	interval time.Duration

	// The alarm gate. Checked and set under mu so "at most one active
	// alarm" holds even with mutations arriving from other goroutines.
	mu     sync.Mutex
	active *Alarm
}

func New(st *state.State, notifier Notifier, player Player, handler Handler, interval time.Duration) *Scanner {
	return &Scanner{
		st:       st,
		notifier: notifier,
		player:   player,
		handler:  handler,
		interval: interval,
	}
}

// Run ticks until the context is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Tick(now)
		}
	}
}

// Active returns the currently presented alarm, if any.
func (s *Scanner) Active() *Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Tick evaluates every stored record against the given instant: all events
// first, in collection order, then all habits. Normal-mode notifications are
// not gated by the active alarm; only alarm-mode triggering is, and the
// first due alarm-mode match wins for the tick.
func (s *Scanner) Tick(now time.Time) {
	events, habits := s.st.Snapshot()

	var candidate *Alarm
	for i := range events {
		e := &events[i]
		if !e.IsDueAt(now) {
			continue
		}
		switch e.AlertMode {
		case models.AlertAlarm:
			if candidate == nil {
				candidate = &Alarm{Event: e}
			}
		case models.AlertNormal:
			s.notify("Reminder: "+e.Title, "Scheduled for now.")
		}
		// Silent records produce no side effect.
	}

	for i := range habits {
		h := &habits[i]
		if !h.IsDueAt(now) {
			continue
		}
		switch h.AlertMode {
		case models.AlertAlarm:
			if candidate == nil {
				candidate = &Alarm{Habit: h}
			}
		case models.AlertNormal:
			s.notify("Activity: "+h.Title, "Commitment time!")
		}
	}

	if candidate != nil {
		s.trigger(now, *candidate)
	}
}

func (s *Scanner) notify(title, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(title, body); err != nil {
		logger.Debug("Notification dropped", "title", title, "error", err)
	}
}

// trigger moves Idle -> Alarming if the gate is free, presents the alarm,
// and applies the user's decision. If an alarm is already active the
// candidate is ignored; an uncompleted record stays due on later ticks.
func (s *Scanner) trigger(now time.Time, alarm Alarm) {
	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return
	}
	s.active = &alarm
	s.mu.Unlock()

	logger.Info("Alarm raised", "title", alarm.Title())
	if s.player != nil {
		s.player.Start()
	}

	decision := Snooze
	if s.handler != nil {
		decision = s.handler(alarm)
	}
	s.resolve(now, decision)
}

// resolve stops the sound, applies the decision, and clears the gate.
func (s *Scanner) resolve(now time.Time, decision Decision) {
	s.mu.Lock()
	alarm := s.active
	s.active = nil
	s.mu.Unlock()

	if s.player != nil {
		s.player.Stop()
	}
	if alarm == nil {
		return
	}

	if decision == Dismiss {
		var err error
		if alarm.Event != nil {
			err = s.st.CompleteEvent(alarm.Event.ID)
		} else if alarm.Habit != nil {
			err = s.st.ToggleHabit(alarm.Habit.ID, utils.DateKey(now))
		}
		if err != nil {
			logger.Error("Failed to record alarm dismissal", "error", err)
		}
	}
	logger.Debug("Alarm cleared", "dismissed", decision == Dismiss)
}
