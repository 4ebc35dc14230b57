package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/models"
)

// SQLiteStore is the default backend: a single slots table keyed by slot
// name, one row per serialized collection.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed the phrase slot so a fresh store behaves like the reference app.
	if _, err := s.GetPhrase(); err != nil {
		if err := s.SavePhrase(constants.DefaultDismissalPhrase); err != nil {
			return fmt.Errorf("failed to save default phrase: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'qen init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.createSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	return err
}

func (s *SQLiteStore) getSlot(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) setSlot(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (s *SQLiteStore) GetEvents() ([]models.Event, error) {
	raw, err := s.getSlot(constants.SlotEvents)
	if err != nil {
		// Absent slot means nothing has been saved yet.
		return []models.Event{}, nil
	}
	return decodeEvents(raw), nil
}

func (s *SQLiteStore) SaveEvents(events []models.Event) error {
	raw, err := encodeEvents(events)
	if err != nil {
		return err
	}
	return s.setSlot(constants.SlotEvents, raw)
}

func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	raw, err := s.getSlot(constants.SlotHabits)
	if err != nil {
		return []models.Habit{}, nil
	}
	return decodeHabits(raw), nil
}

func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	raw, err := encodeHabits(habits)
	if err != nil {
		return err
	}
	return s.setSlot(constants.SlotHabits, raw)
}

func (s *SQLiteStore) GetPhrase() (string, error) {
	return s.getSlot(constants.SlotPhrase)
}

func (s *SQLiteStore) SavePhrase(phrase string) error {
	return s.setSlot(constants.SlotPhrase, phrase)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) Wipe() error {
	_, err := s.db.Exec("DELETE FROM slots")
	return err
}
