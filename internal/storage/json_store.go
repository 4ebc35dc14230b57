package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/models"
)

// fileStore is the on-disk shape of the JSON backend: the three slots in one
// document, versioned in case the shape ever has to change.
type fileStore struct {
	Version int               `json:"version"`
	Slots   map[string]string `json:"slots"`
}

// JSONStore is a plain-file backend. It doubles as an export format and as
// the lightest-weight substrate for tests.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Slots: map[string]string{
			constants.SlotPhrase: constants.DefaultDismissalPhrase,
		},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'qen init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Malformed file degrades to an empty store rather than failing.
		s.store = &fileStore{Version: 1, Slots: map[string]string{}}
		return nil
	}
	if s.store.Slots == nil {
		s.store.Slots = map[string]string{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) setSlot(key, value string) error {
	if s.store == nil {
		s.store = &fileStore{Version: 1, Slots: map[string]string{}}
	}
	s.store.Slots[key] = value
	return s.save()
}

func (s *JSONStore) GetEvents() ([]models.Event, error) {
	if s.store == nil {
		return []models.Event{}, nil
	}
	return decodeEvents(s.store.Slots[constants.SlotEvents]), nil
}

func (s *JSONStore) SaveEvents(events []models.Event) error {
	raw, err := encodeEvents(events)
	if err != nil {
		return err
	}
	return s.setSlot(constants.SlotEvents, raw)
}

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	if s.store == nil {
		return []models.Habit{}, nil
	}
	return decodeHabits(s.store.Slots[constants.SlotHabits]), nil
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	raw, err := encodeHabits(habits)
	if err != nil {
		return err
	}
	return s.setSlot(constants.SlotHabits, raw)
}

func (s *JSONStore) GetPhrase() (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	phrase, ok := s.store.Slots[constants.SlotPhrase]
	if !ok {
		return "", fmt.Errorf("phrase not set")
	}
	return phrase, nil
}

func (s *JSONStore) SavePhrase(phrase string) error {
	return s.setSlot(constants.SlotPhrase, phrase)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) Wipe() error {
	s.store = &fileStore{Version: 1, Slots: map[string]string{}}
	return s.save()
}
