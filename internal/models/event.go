package models

import (
	"fmt"
	"time"

	"github.com/qenapp/qen/internal/constants"
)

type AlertMode string

const (
	AlertNormal AlertMode = "NORMAL"
	AlertAlarm  AlertMode = "ALARM"
	AlertSilent AlertMode = "SILENT"
)

type Priority string

const (
	PriorityNormal    Priority = "NORMAL"
	PriorityImportant Priority = "IMPORTANT"
)

// Event is a single-occurrence calendar entry. StartDate and StartTime are
// required; an event without an EndDate occurs on its start date only.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	StartTime       string    `json:"start_time"`         // HH:MM format
	StartDate       string    `json:"start_date"`         // YYYY-MM-DD format
	EndDate         string    `json:"end_date,omitempty"` // YYYY-MM-DD format
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location,omitempty"`
	Description     string    `json:"description,omitempty"`
	AlertMode       AlertMode `json:"alert_mode"`
	ReminderMinutes int       `json:"reminder_minutes"`
	IsCompleted     bool      `json:"is_completed"`
}

func (e *Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, e.StartDate); err != nil {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %w", err)
	}
	if _, err := time.Parse(constants.TimeFormat, e.StartTime); err != nil {
		return fmt.Errorf("invalid start time (expected HH:MM): %w", err)
	}
	if e.EndDate != "" {
		if _, err := time.Parse(constants.DateFormat, e.EndDate); err != nil {
			return fmt.Errorf("invalid end date (expected YYYY-MM-DD): %w", err)
		}
	}
	switch e.AlertMode {
	case AlertNormal, AlertAlarm, AlertSilent:
	default:
		return fmt.Errorf("invalid alert mode: %s", e.AlertMode)
	}
	return nil
}

// IsDueAt reports whether the event is due at the given instant. Matching is
// at minute granularity; a minute skipped by the scanner is never retried.
func (e *Event) IsDueAt(now time.Time) bool {
	if e.IsCompleted {
		return false
	}
	return e.StartDate == now.Format(constants.DateFormat) &&
		e.StartTime == now.Format(constants.TimeFormat)
}
