package scanner

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/qenapp/qen/internal/models"
	"github.com/qenapp/qen/internal/state"
	"github.com/qenapp/qen/internal/storage"
)

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Notify(title, body string) error {
	f.sent = append(f.sent, title)
	return nil
}

type fakePlayer struct {
	started int
	stopped int
}

func (f *fakePlayer) Start() { f.started++ }
func (f *fakePlayer) Stop()  { f.stopped++ }

func newTestState(t *testing.T) *state.State {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "qen.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	st, err := state.Load(store)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func eventAt(title, date, clock string, mode models.AlertMode) models.Event {
	return models.Event{
		Title:     title,
		StartDate: date,
		StartTime: clock,
		AlertMode: mode,
	}
}

func habitAt(title, date, clock string, mode models.AlertMode) models.Habit {
	return models.Habit{
		Title:     title,
		Frequency: models.FrequencyDaily,
		StartDate: "2024-01-01",
		StartTime: clock,
		Priority:  models.PriorityNormal,
		AlertMode: mode,
		CreatedAt: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC),
		History:   map[string]bool{},
	}
}

var tickTime = time.Date(2024, 1, 15, 7, 0, 10, 0, time.UTC)

func TestTick_AlarmModeEventRaisesAlarm(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmEvent(eventAt("Standup", "2024-01-15", "07:00", models.AlertAlarm), "")

	var raised []string
	handler := func(a Alarm) Decision {
		raised = append(raised, a.Title())
		return Dismiss
	}
	player := &fakePlayer{}
	s := New(st, &fakeNotifier{}, player, handler, time.Second)

	s.Tick(tickTime)

	if len(raised) != 1 || raised[0] != "Standup" {
		t.Fatalf("raised = %v, want [Standup]", raised)
	}
	if player.started != 1 || player.stopped != 1 {
		t.Errorf("player started=%d stopped=%d, want 1/1", player.started, player.stopped)
	}
	if s.Active() != nil {
		t.Error("gate must be clear after dismissal")
	}

	// Dismissal marks the event completed; the next tick sees nothing due.
	e, _ := st.FindEvent(created.ID)
	if !e.IsCompleted {
		t.Error("dismissal must set the completion flag")
	}
	s.Tick(tickTime)
	if len(raised) != 1 {
		t.Errorf("completed event re-triggered: %v", raised)
	}
}

func TestTick_NoAlarmWhenNotDue(t *testing.T) {
	st := newTestState(t)
	st.ConfirmEvent(eventAt("Standup", "2024-01-15", "07:30", models.AlertAlarm), "")

	raised := 0
	s := New(st, &fakeNotifier{}, &fakePlayer{}, func(Alarm) Decision { raised++; return Dismiss }, time.Second)
	s.Tick(tickTime)

	if raised != 0 {
		t.Error("alarm raised for a record that is not due")
	}
}

func TestTick_NormalAndAlarmFireTogether(t *testing.T) {
	// An event with normal mode due at the same instant as an alarm-mode
	// habit: both fire in the same tick, and a second alarm-mode record
	// does not open a second modal.
	st := newTestState(t)
	st.ConfirmEvent(eventAt("Dentist", "2024-01-15", "07:00", models.AlertNormal), "")
	st.ConfirmHabit(habitAt("Gym", "2024-01-01", "07:00", models.AlertAlarm), "")
	st.ConfirmHabit(habitAt("Meditate", "2024-01-01", "07:00", models.AlertAlarm), "")

	notifier := &fakeNotifier{}
	var raised []string
	s := New(st, notifier, &fakePlayer{}, func(a Alarm) Decision {
		raised = append(raised, a.Title())
		return Dismiss
	}, time.Second)

	s.Tick(tickTime)

	if len(notifier.sent) != 1 || notifier.sent[0] != "Reminder: Dentist" {
		t.Errorf("notifications = %v, want the dentist reminder", notifier.sent)
	}
	if len(raised) != 1 || raised[0] != "Gym" {
		t.Errorf("raised = %v, want only the first due alarm-mode record", raised)
	}
}

func TestTick_EventsEvaluatedBeforeHabits(t *testing.T) {
	st := newTestState(t)
	st.ConfirmHabit(habitAt("Gym", "2024-01-01", "07:00", models.AlertAlarm), "")
	st.ConfirmEvent(eventAt("Standup", "2024-01-15", "07:00", models.AlertAlarm), "")

	var raised []string
	s := New(st, &fakeNotifier{}, &fakePlayer{}, func(a Alarm) Decision {
		raised = append(raised, a.Title())
		return Snooze
	}, time.Second)
	s.Tick(tickTime)

	if len(raised) != 1 || raised[0] != "Standup" {
		t.Errorf("raised = %v, want the event to win over the habit", raised)
	}
}

func TestTick_SilentRecordsProduceNothing(t *testing.T) {
	st := newTestState(t)
	st.ConfirmEvent(eventAt("Quiet", "2024-01-15", "07:00", models.AlertSilent), "")
	st.ConfirmHabit(habitAt("Stretch", "2024-01-01", "07:00", models.AlertSilent), "")

	notifier := &fakeNotifier{}
	raised := 0
	s := New(st, notifier, &fakePlayer{}, func(Alarm) Decision { raised++; return Dismiss }, time.Second)
	s.Tick(tickTime)

	if len(notifier.sent) != 0 || raised != 0 {
		t.Errorf("silent records produced side effects: sent=%v raised=%d", notifier.sent, raised)
	}
}

func TestTick_HabitDueThenDoneScenario(t *testing.T) {
	// Daily habit starting 2024-01-01 at 07:00: due at 2024-01-15T07:00,
	// not due at the same minute once toggled done for the day.
	st := newTestState(t)
	created, _ := st.ConfirmHabit(habitAt("Gym", "2024-01-01", "07:00", models.AlertAlarm), "")

	raised := 0
	s := New(st, &fakeNotifier{}, &fakePlayer{}, func(Alarm) Decision { raised++; return Dismiss }, time.Second)

	s.Tick(tickTime)
	if raised != 1 {
		t.Fatalf("first scan raised %d alarms, want 1", raised)
	}

	h, _ := st.FindHabit(created.ID)
	if !h.History["2024-01-15"] || h.Streak != 1 {
		t.Fatalf("dismissal must toggle today's completion: %+v", h)
	}

	s.Tick(tickTime)
	if raised != 1 {
		t.Error("second scan at the same minute re-raised a completed habit")
	}
}

func TestTick_SnoozeLeavesRecordDue(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmHabit(habitAt("Gym", "2024-01-01", "07:00", models.AlertAlarm), "")

	raised := 0
	player := &fakePlayer{}
	s := New(st, &fakeNotifier{}, player, func(Alarm) Decision { raised++; return Snooze }, time.Second)

	s.Tick(tickTime)
	if raised != 1 {
		t.Fatalf("raised = %d, want 1", raised)
	}
	if player.stopped != 1 {
		t.Error("snooze must stop the alarm sound")
	}
	if s.Active() != nil {
		t.Error("snooze must clear the gate")
	}

	h, _ := st.FindHabit(created.ID)
	if h.History["2024-01-15"] || h.Streak != 0 {
		t.Errorf("snooze must not touch the ledger: %+v", h)
	}

	// Still due on the next tick within the same minute.
	s.Tick(tickTime)
	if raised != 2 {
		t.Errorf("snoozed record should re-raise, raised = %d", raised)
	}
}

func TestTick_PausedHabitSkipped(t *testing.T) {
	st := newTestState(t)
	created, _ := st.ConfirmHabit(habitAt("Gym", "2024-01-01", "07:00", models.AlertAlarm), "")
	st.TogglePause(created.ID)

	raised := 0
	s := New(st, &fakeNotifier{}, &fakePlayer{}, func(Alarm) Decision { raised++; return Dismiss }, time.Second)
	s.Tick(tickTime)

	if raised != 0 {
		t.Error("paused habit must never raise an alarm")
	}
}
