package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/models"
	"github.com/qenapp/qen/internal/storage"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "qen.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	st, err := Load(store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return st
}

func sampleEvent() models.Event {
	return models.Event{
		Title:     "Dentist",
		StartDate: "2026-03-02",
		StartTime: "14:00",
		AlertMode: models.AlertNormal,
	}
}

func sampleHabit() models.Habit {
	return models.Habit{
		Title:     "Gym",
		Frequency: models.FrequencyDaily,
		StartDate: "2026-01-01",
		StartTime: "06:30",
		Priority:  models.PriorityNormal,
		AlertMode: models.AlertAlarm,
		CreatedAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		History:   map[string]bool{},
	}
}

func TestConfirmEvent_New(t *testing.T) {
	st := newTestState(t)

	created, err := st.ConfirmEvent(sampleEvent(), "")
	if err != nil {
		t.Fatalf("ConfirmEvent() error = %v", err)
	}
	if created.ID == "" {
		t.Error("expected a fresh id on a new record")
	}

	events, _ := st.Snapshot()
	if len(events) != 1 || events[0].ID != created.ID {
		t.Errorf("expected one persisted event with id %s, got %+v", created.ID, events)
	}
}

func TestConfirmEvent_Edit(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmEvent(sampleEvent(), "")

	edited := created
	edited.Title = "Dentist (moved)"
	edited.StartTime = "15:30"

	updated, err := st.ConfirmEvent(edited, created.ID)
	if err != nil {
		t.Fatalf("ConfirmEvent() error = %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("edit must preserve id: got %s, want %s", updated.ID, created.ID)
	}

	events, _ := st.Snapshot()
	if len(events) != 1 || events[0].Title != "Dentist (moved)" {
		t.Errorf("expected edited record in place, got %+v", events)
	}
}

func TestConfirmEvent_MissingEditTargetIsNoop(t *testing.T) {
	st := newTestState(t)
	st.ConfirmEvent(sampleEvent(), "")
	before, _ := st.Snapshot()

	if _, err := st.ConfirmEvent(sampleEvent(), "no-such-id"); err != nil {
		t.Fatalf("ConfirmEvent() error = %v", err)
	}

	after, _ := st.Snapshot()
	if len(after) != len(before) {
		t.Fatalf("collection length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("record %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestConfirmHabit_MissingEditTargetIsNoop(t *testing.T) {
	st := newTestState(t)
	st.ConfirmHabit(sampleHabit(), "")
	_, before := st.Snapshot()

	if _, err := st.ConfirmHabit(sampleHabit(), "no-such-id"); err != nil {
		t.Fatalf("ConfirmHabit() error = %v", err)
	}

	_, after := st.Snapshot()
	if len(after) != 1 || after[0].ID != before[0].ID {
		t.Errorf("collection changed on missing edit target: %+v", after)
	}
}

func TestDelete_NoopWhenAbsent(t *testing.T) {
	st := newTestState(t)
	st.ConfirmEvent(sampleEvent(), "")

	if err := st.DeleteEvent("no-such-id"); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	events, _ := st.Snapshot()
	if len(events) != 1 {
		t.Errorf("expected collection unchanged, got %d events", len(events))
	}
}

func TestDeleteEvent(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmEvent(sampleEvent(), "")

	if err := st.DeleteEvent(created.ID); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	events, _ := st.Snapshot()
	if len(events) != 0 {
		t.Errorf("expected empty collection, got %d events", len(events))
	}
}

func TestToggleHabitRoutesThroughLedger(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmHabit(sampleHabit(), "")

	if err := st.ToggleHabit(created.ID, "2026-03-02"); err != nil {
		t.Fatalf("ToggleHabit() error = %v", err)
	}
	h, ok := st.FindHabit(created.ID)
	if !ok {
		t.Fatal("habit disappeared")
	}
	if !h.History["2026-03-02"] || h.Streak != 1 {
		t.Errorf("got history=%v streak=%d, want done and streak 1", h.History, h.Streak)
	}

	if err := st.ToggleHabit(created.ID, "2026-03-02"); err != nil {
		t.Fatalf("ToggleHabit() error = %v", err)
	}
	h, _ = st.FindHabit(created.ID)
	if h.History["2026-03-02"] || h.Streak != 0 {
		t.Errorf("toggle involution violated: history=%v streak=%d", h.History, h.Streak)
	}
}

func TestTogglePause(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmHabit(sampleHabit(), "")

	if err := st.TogglePause(created.ID); err != nil {
		t.Fatalf("TogglePause() error = %v", err)
	}
	h, _ := st.FindHabit(created.ID)
	if !h.IsPaused {
		t.Error("expected habit to be paused")
	}

	st.TogglePause(created.ID)
	h, _ = st.FindHabit(created.ID)
	if h.IsPaused {
		t.Error("expected habit to be unpaused again")
	}
}

func TestCompleteEvent(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmEvent(sampleEvent(), "")

	if err := st.CompleteEvent(created.ID); err != nil {
		t.Fatalf("CompleteEvent() error = %v", err)
	}
	e, _ := st.FindEvent(created.ID)
	if !e.IsCompleted {
		t.Error("expected event to be completed")
	}
}

func TestMutationsPersistAcrossReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qen.json")

	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	st, err := Load(store)
	if err != nil {
		t.Fatal(err)
	}
	created, _ := st.ConfirmHabit(sampleHabit(), "")
	st.ToggleHabit(created.ID, "2026-03-02")
	st.SetDismissalPhrase("really done")

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	st2, err := Load(reopened)
	if err != nil {
		t.Fatal(err)
	}
	h, ok := st2.FindHabit(created.ID)
	if !ok || !h.History["2026-03-02"] || h.Streak != 1 {
		t.Errorf("habit state lost across reload: %+v", h)
	}
	if st2.DismissalPhrase() != "really done" {
		t.Errorf("phrase lost across reload: %q", st2.DismissalPhrase())
	}
}

func TestWipe(t *testing.T) {
	st := newTestState(t)
	st.ConfirmEvent(sampleEvent(), "")
	st.ConfirmHabit(sampleHabit(), "")

	if err := st.Wipe(); err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}
	events, habits := st.Snapshot()
	if len(events) != 0 || len(habits) != 0 {
		t.Errorf("expected empty collections after wipe, got %d events, %d habits", len(events), len(habits))
	}
	if st.DismissalPhrase() != constants.DefaultDismissalPhrase {
		t.Errorf("phrase after wipe = %q, want default", st.DismissalPhrase())
	}
}
