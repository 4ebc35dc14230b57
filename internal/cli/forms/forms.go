// Package forms holds the two confirmation forms. Every draft, AI-extracted
// or opened from an existing record, passes through one of these before it
// becomes (or updates) a persisted record.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/models"
	"github.com/qenapp/qen/internal/utils"
)

func validateDate(s string) error {
	if !utils.ValidateDateFormat(s) {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	return validateDate(s)
}

func validateTime(s string) error {
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}

func validatePositiveInt(s string) error {
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if i <= 0 {
		return fmt.Errorf("must be a positive number of minutes")
	}
	return nil
}

func reminderOptions() []huh.Option[int] {
	return []huh.Option[int]{
		huh.NewOption("5 minutes", constants.Reminder5Min),
		huh.NewOption("10 minutes", constants.Reminder10Min),
		huh.NewOption("30 minutes", constants.Reminder30Min),
		huh.NewOption("1 hour", constants.Reminder1Hour),
		huh.NewOption("1 day", constants.Reminder1Day),
	}
}

func alertOptions() []huh.Option[models.AlertMode] {
	return []huh.Option[models.AlertMode]{
		huh.NewOption("Silent", models.AlertSilent),
		huh.NewOption("Notification", models.AlertNormal),
		huh.NewOption("Alarm", models.AlertAlarm),
	}
}

// ConfirmEvent runs the event confirmation form over the draft in place.
// Returns huh.ErrUserAborted if the user cancels.
func ConfirmEvent(draft *models.Event) error {
	duration := strconv.Itoa(draft.DurationMinutes)
	if draft.DurationMinutes == 0 {
		duration = "60"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&draft.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&draft.StartDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&draft.StartTime).
				Validate(validateTime),
			huh.NewInput().
				Title("End date").
				Description("Optional, for multi-day entries").
				Value(&draft.EndDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Duration (min)").
				Value(&duration).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Location").
				Value(&draft.Location),
			huh.NewInput().
				Title("Description").
				Value(&draft.Description),
		),
		huh.NewGroup(
			huh.NewSelect[models.AlertMode]().
				Title("Alert").
				Options(alertOptions()...).
				Value(&draft.AlertMode),
			huh.NewSelect[int]().
				Title("Remind me before").
				Options(reminderOptions()...).
				Value(&draft.ReminderMinutes),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	draft.DurationMinutes, _ = strconv.Atoi(duration)
	return draft.Validate()
}

// ConfirmHabit runs the habit confirmation form over the draft in place.
func ConfirmHabit(draft *models.Habit) error {
	duration := strconv.Itoa(draft.DurationMinutes)
	if draft.DurationMinutes == 0 {
		duration = "30"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&draft.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Every day", models.FrequencyDaily),
					huh.NewOption("Weekdays", models.FrequencyWeekdays),
					huh.NewOption("Weekends", models.FrequencyWeekends),
					huh.NewOption("Weekly", models.FrequencyWeekly),
				).
				Value(&draft.Frequency),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Value(&draft.StartDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&draft.StartTime).
				Validate(validateTime),
			huh.NewInput().
				Title("End date").
				Description("Optional").
				Value(&draft.EndDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Duration (min)").
				Value(&duration).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Normal", models.PriorityNormal),
					huh.NewOption("Important", models.PriorityImportant),
				).
				Value(&draft.Priority),
			huh.NewSelect[models.AlertMode]().
				Title("Alert").
				Options(alertOptions()...).
				Value(&draft.AlertMode),
			huh.NewSelect[int]().
				Title("Remind me before").
				Options(reminderOptions()...).
				Value(&draft.ReminderMinutes),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	draft.DurationMinutes, _ = strconv.Atoi(duration)
	return draft.Validate()
}
