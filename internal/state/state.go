// Package state holds the in-memory application state: the event and habit
// collections plus the dismissal phrase, loaded once at startup and written
// back in full on every mutation. Collections are treated as immutable
// snapshots; every mutation builds a new slice with the one affected record
// replaced, so a scan in progress never observes a half-written record.
package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/logger"
	"github.com/qenapp/qen/internal/models"
	"github.com/qenapp/qen/internal/storage"
)

type State struct {
	store storage.Provider

	mu     sync.RWMutex
	events []models.Event
	habits []models.Habit
	phrase string
}

// Load reads all three slots from the store. Missing or malformed slots are
// already decoded to empty collections by the storage layer.
func Load(store storage.Provider) (*State, error) {
	events, err := store.GetEvents()
	if err != nil {
		return nil, err
	}
	habits, err := store.GetHabits()
	if err != nil {
		return nil, err
	}
	phrase, err := store.GetPhrase()
	if err != nil || phrase == "" {
		phrase = constants.DefaultDismissalPhrase
	}

	return &State{
		store:  store,
		events: events,
		habits: habits,
		phrase: phrase,
	}, nil
}

// Snapshot returns copies of both collections, safe to iterate while
// mutations happen on other goroutines.
func (s *State) Snapshot() ([]models.Event, []models.Habit) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, len(s.events))
	copy(events, s.events)
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	return events, habits
}

func (s *State) DismissalPhrase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phrase
}

func (s *State) SetDismissalPhrase(phrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phrase = phrase
	return s.store.SavePhrase(phrase)
}

// ConfirmEvent turns a confirmed draft into a persisted record. With
// editingID set it replaces the record with that id, keeping the id; a
// missing target is a silent no-op. Without editingID the draft gets a fresh
// id and is appended.
func (s *State) ConfirmEvent(draft models.Event, editingID string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if editingID != "" {
		events := make([]models.Event, len(s.events))
		found := false
		for i, e := range s.events {
			if e.ID == editingID {
				draft.ID = editingID
				events[i] = draft
				found = true
			} else {
				events[i] = e
			}
		}
		if !found {
			// Editing targets are always sourced from the current
			// collection, so an absent id is not worth surfacing.
			logger.Warn("Edit target not found, ignoring", "id", editingID)
			return draft, nil
		}
		s.events = events
		return draft, s.store.SaveEvents(s.events)
	}

	draft.ID = uuid.NewString()
	events := make([]models.Event, len(s.events), len(s.events)+1)
	copy(events, s.events)
	s.events = append(events, draft)
	return draft, s.store.SaveEvents(s.events)
}

// ConfirmHabit mirrors ConfirmEvent for habits.
func (s *State) ConfirmHabit(draft models.Habit, editingID string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.History == nil {
		draft.History = map[string]bool{}
	}

	if editingID != "" {
		habits := make([]models.Habit, len(s.habits))
		found := false
		for i, h := range s.habits {
			if h.ID == editingID {
				draft.ID = editingID
				habits[i] = draft
				found = true
			} else {
				habits[i] = h
			}
		}
		if !found {
			logger.Warn("Edit target not found, ignoring", "id", editingID)
			return draft, nil
		}
		s.habits = habits
		return draft, s.store.SaveHabits(s.habits)
	}

	draft.ID = uuid.NewString()
	habits := make([]models.Habit, len(s.habits), len(s.habits)+1)
	copy(habits, s.habits)
	s.habits = append(habits, draft)
	return draft, s.store.SaveHabits(s.habits)
}

// DeleteEvent removes the record with the given id. No-op if absent.
func (s *State) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.ID != id {
			events = append(events, e)
		}
	}
	if len(events) == len(s.events) {
		return nil
	}
	s.events = events
	return s.store.SaveEvents(s.events)
}

// DeleteHabit removes the record with the given id. No-op if absent.
func (s *State) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := make([]models.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if h.ID != id {
			habits = append(habits, h)
		}
	}
	if len(habits) == len(s.habits) {
		return nil
	}
	s.habits = habits
	return s.store.SaveHabits(s.habits)
}

// CompleteEvent sets the completion flag on the matching event.
func (s *State) CompleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.Event, len(s.events))
	changed := false
	for i, e := range s.events {
		if e.ID == id {
			e.IsCompleted = true
			changed = true
		}
		events[i] = e
	}
	if !changed {
		return nil
	}
	s.events = events
	return s.store.SaveEvents(s.events)
}

// ToggleHabit flips the habit's completion for the given day through the
// ledger. This is the only mutation path for history and streak.
func (s *State) ToggleHabit(id, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := make([]models.Habit, len(s.habits))
	changed := false
	for i, h := range s.habits {
		if h.ID == id {
			h = h.ToggleCompletion(day)
			changed = true
		}
		habits[i] = h
	}
	if !changed {
		return nil
	}
	s.habits = habits
	return s.store.SaveHabits(s.habits)
}

// TogglePause flips the habit's paused flag.
func (s *State) TogglePause(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := make([]models.Habit, len(s.habits))
	changed := false
	for i, h := range s.habits {
		if h.ID == id {
			h.IsPaused = !h.IsPaused
			changed = true
		}
		habits[i] = h
	}
	if !changed {
		return nil
	}
	s.habits = habits
	return s.store.SaveHabits(s.habits)
}

// FindEvent returns the event with the given id, if present.
func (s *State) FindEvent(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// FindHabit returns the habit with the given id, if present.
func (s *State) FindHabit(id string) (models.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Wipe drops every stored slot and resets the dismissal phrase to its
// default.
func (s *State) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Wipe(); err != nil {
		return err
	}

	s.events = []models.Event{}
	s.habits = []models.Habit{}
	s.phrase = constants.DefaultDismissalPhrase
	return s.store.SavePhrase(s.phrase)
}
