package models

import "time"

// Draft is an unconfirmed entry awaiting user confirmation. Exactly one of
// Event or Habit is set. Drafts are never persisted; they become real records
// only through the lifecycle manager's confirm operations.
type Draft struct {
	Event *Event
	Habit *Habit
}

func (d Draft) IsHabit() bool {
	return d.Habit != nil
}

// NewEventDraft returns an event draft carrying the defaults the original
// confirmation form starts from.
func NewEventDraft() *Event {
	return &Event{
		AlertMode:       AlertSilent,
		ReminderMinutes: 10,
	}
}

// NewHabitDraft returns a habit draft with an empty history, zero streak,
// and a creation timestamp of now.
func NewHabitDraft(now time.Time) *Habit {
	return &Habit{
		Frequency:       FrequencyDaily,
		Priority:        PriorityNormal,
		AlertMode:       AlertSilent,
		ReminderMinutes: 10,
		CreatedAt:       now,
		History:         map[string]bool{},
	}
}
