package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/models"
)

// PostgresStore keeps the same slots table in a shared database, for users
// who point more than one machine at the same schedule.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

// HasEmbeddedCredentials reports whether a postgres:// URL carries a
// password. Credentials belong in the OS keyring or environment, never on
// the command line.
func HasEmbeddedCredentials(connStr string) bool {
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetPhrase(); err != nil {
		if err := s.SavePhrase(constants.DefaultDismissalPhrase); err != nil {
			return fmt.Errorf("failed to save default phrase: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return s.createSchema()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS qen_slots (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	return err
}

func (s *PostgresStore) getSlot(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM qen_slots WHERE key = $1", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *PostgresStore) setSlot(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO qen_slots (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}

func (s *PostgresStore) GetEvents() ([]models.Event, error) {
	raw, err := s.getSlot(constants.SlotEvents)
	if err != nil {
		return []models.Event{}, nil
	}
	return decodeEvents(raw), nil
}

func (s *PostgresStore) SaveEvents(events []models.Event) error {
	raw, err := encodeEvents(events)
	if err != nil {
		return err
	}
	return s.setSlot(constants.SlotEvents, raw)
}

func (s *PostgresStore) GetHabits() ([]models.Habit, error) {
	raw, err := s.getSlot(constants.SlotHabits)
	if err != nil {
		return []models.Habit{}, nil
	}
	return decodeHabits(raw), nil
}

func (s *PostgresStore) SaveHabits(habits []models.Habit) error {
	raw, err := encodeHabits(habits)
	if err != nil {
		return err
	}
	return s.setSlot(constants.SlotHabits, raw)
}

func (s *PostgresStore) GetPhrase() (string, error) {
	return s.getSlot(constants.SlotPhrase)
}

func (s *PostgresStore) SavePhrase(phrase string) error {
	return s.setSlot(constants.SlotPhrase, phrase)
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

func (s *PostgresStore) Wipe() error {
	_, err := s.db.Exec("DELETE FROM qen_slots")
	return err
}
