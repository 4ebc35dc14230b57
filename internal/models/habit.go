package models

import (
	"fmt"
	"time"

	"github.com/qenapp/qen/internal/constants"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"

	// FrequencyNone is never stored on a habit; it is the extraction
	// service's way of saying "this text described a one-off event".
	FrequencyNone Frequency = "none"
)

// Habit is a recurring commitment. History is sparse: an absent day means
// "not yet evaluated". Streak is a running tally maintained only by
// ToggleCompletion; History is the source of truth for whether a given day
// was done.
type Habit struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Frequency       Frequency       `json:"frequency"`
	StartTime       string          `json:"start_time"`         // HH:MM format
	StartDate       string          `json:"start_date"`         // YYYY-MM-DD format
	EndDate         string          `json:"end_date,omitempty"` // YYYY-MM-DD format
	DurationMinutes int             `json:"duration_minutes"`
	Priority        Priority        `json:"priority"`
	AlertMode       AlertMode       `json:"alert_mode"`
	ReminderMinutes int             `json:"reminder_minutes"`
	CreatedAt       time.Time       `json:"created_at"`
	History         map[string]bool `json:"history"` // YYYY-MM-DD -> done
	Streak          int             `json:"streak"`
	IsPaused        bool            `json:"is_paused"`
}

func (h *Habit) Validate() error {
	if h.Title == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	switch h.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyWeekdays, FrequencyWeekends:
	default:
		return fmt.Errorf("invalid frequency: %s", h.Frequency)
	}
	if _, err := time.Parse(constants.DateFormat, h.StartDate); err != nil {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %w", err)
	}
	if _, err := time.Parse(constants.TimeFormat, h.StartTime); err != nil {
		return fmt.Errorf("invalid start time (expected HH:MM): %w", err)
	}
	if h.EndDate != "" {
		if _, err := time.Parse(constants.DateFormat, h.EndDate); err != nil {
			return fmt.Errorf("invalid end date (expected YYYY-MM-DD): %w", err)
		}
	}
	switch h.AlertMode {
	case AlertNormal, AlertAlarm, AlertSilent:
	default:
		return fmt.Errorf("invalid alert mode: %s", h.AlertMode)
	}
	if h.Streak < 0 {
		return fmt.Errorf("streak cannot be negative")
	}
	return nil
}

// IsScheduledOn reports whether the habit recurs on the given day. It depends
// only on the frequency, the creation weekday, and the candidate weekday.
func (h *Habit) IsScheduledOn(day time.Time) bool {
	switch h.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekdays:
		wd := day.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case FrequencyWeekends:
		wd := day.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case FrequencyWeekly:
		return day.Weekday() == h.CreatedAt.Weekday()
	default:
		return false
	}
}

// IsDueAt reports whether the habit is due at the given instant. A habit
// already marked done today never re-triggers that day.
func (h *Habit) IsDueAt(now time.Time) bool {
	if h.IsPaused {
		return false
	}
	today := now.Format(constants.DateFormat)
	if h.History[today] {
		return false
	}
	if !h.IsScheduledOn(now) {
		return false
	}
	if h.StartDate > today {
		return false
	}
	if h.EndDate != "" && h.EndDate < today {
		return false
	}
	return h.StartTime == now.Format(constants.TimeFormat)
}

// ToggleCompletion flips the completion bit for the given day and returns an
// updated copy; the receiver is left untouched. A false-to-true flip
// increments the streak, the reverse decrements it, floored at zero. No other
// path may alter streak or history.
func (h Habit) ToggleCompletion(day string) Habit {
	history := make(map[string]bool, len(h.History)+1)
	for k, v := range h.History {
		history[k] = v
	}

	done := history[day]
	history[day] = !done

	if done {
		h.Streak = max(0, h.Streak-1)
	} else {
		h.Streak++
	}
	h.History = history
	return h
}

// CompletionCount returns the number of days marked done in the history.
func (h *Habit) CompletionCount() int {
	count := 0
	for _, done := range h.History {
		if done {
			count++
		}
	}
	return count
}
