package storage

import "github.com/qenapp/qen/internal/models"

// Provider is the persistence substrate: three string-keyed slots holding
// the serialized event collection, the serialized habit collection, and the
// dismissal phrase. Each slot is read once at startup and rewritten in full
// on every relevant mutation.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Wipe drops every slot, returning the store to its uninitialized-empty
	// shape. Callers reseed whatever defaults they need afterwards.
	Wipe() error

	// Events
	GetEvents() ([]models.Event, error)
	SaveEvents([]models.Event) error

	// Habits
	GetHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error

	// Dismissal phrase
	GetPhrase() (string, error)
	SavePhrase(string) error

	// Utils
	GetConfigPath() string
}
