package storage

import (
	"encoding/json"
	"fmt"

	"github.com/qenapp/qen/internal/logger"
	"github.com/qenapp/qen/internal/models"
)

// The slot codec is shared by every backend so the stored shape is identical
// regardless of substrate. Malformed or missing data decodes to an empty
// collection: storage read failures degrade to "no records", never to a
// user-visible error.

func encodeEvents(events []models.Event) (string, error) {
	if events == nil {
		events = []models.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("failed to serialize events: %w", err)
	}
	return string(data), nil
}

func decodeEvents(raw string) []models.Event {
	if raw == "" {
		return []models.Event{}
	}
	var events []models.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		logger.Warn("Malformed event slot, falling back to empty collection", "error", err)
		return []models.Event{}
	}
	return events
}

func encodeHabits(habits []models.Habit) (string, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return "", fmt.Errorf("failed to serialize habits: %w", err)
	}
	return string(data), nil
}

func decodeHabits(raw string) []models.Habit {
	if raw == "" {
		return []models.Habit{}
	}
	var habits []models.Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		logger.Warn("Malformed habit slot, falling back to empty collection", "error", err)
		return []models.Habit{}
	}
	for i := range habits {
		if habits[i].History == nil {
			habits[i].History = map[string]bool{}
		}
	}
	return habits
}
