package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/qenapp/qen/internal/cli/forms"
	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/extract"
	"github.com/qenapp/qen/internal/keyring"
	"github.com/qenapp/qen/internal/logger"
	"github.com/qenapp/qen/internal/models"
)

type AddCmd struct {
	Text  string `arg:"" help:"Free-form text, e.g. 'Go to gym every day at 6:30 AM'."`
	Habit bool   `help:"Extract a habit even if the text does not mention a recurrence."`
	Model string `help:"Extraction model." default:"gpt-4o-mini"`
}

// Run hands the text to the extraction service and walks the resulting draft
// through its confirmation form. An extraction that carries a recognized
// frequency always becomes a habit draft, even when invoked from the event
// surface. Extraction failure produces no draft and no error record.
func (c *AddCmd) Run(ctx *Context) error {
	apiKey, err := keyring.GetAPIKey()
	if err != nil {
		return fmt.Errorf("no extraction API key configured: run 'qen settings set-api-key' or set %s", constants.APIKeyEnvVar)
	}

	extractor := extract.New(apiKey, c.Model)
	reqCtx, cancel := context.WithTimeout(context.Background(), extract.DefaultTimeout)
	defer cancel()

	var extracted *extract.Extracted
	if c.Habit {
		extracted, err = extractor.ParseHabit(reqCtx, c.Text)
	} else {
		extracted, err = extractor.ParseEvent(reqCtx, c.Text)
	}
	if err != nil || extracted == nil {
		logger.Warn("Extraction produced no draft", "error", err)
		fmt.Println("Could not extract an entry from that text.")
		return nil
	}

	draft := extracted.Draft(time.Now(), c.Habit)
	if draft.IsHabit() {
		return confirmHabitDraft(ctx, draft.Habit, "")
	}
	return confirmEventDraft(ctx, draft.Event, "")
}

func confirmEventDraft(ctx *Context, draft *models.Event, editingID string) error {
	if err := forms.ConfirmEvent(draft); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Cancelled.")
			return nil
		}
		return err
	}

	created, err := ctx.State.ConfirmEvent(*draft, editingID)
	if err != nil {
		return err
	}
	fmt.Printf("Saved event %q on %s at %s\n", created.Title, created.StartDate, created.StartTime)
	return nil
}

func confirmHabitDraft(ctx *Context, draft *models.Habit, editingID string) error {
	if err := forms.ConfirmHabit(draft); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Cancelled.")
			return nil
		}
		return err
	}

	created, err := ctx.State.ConfirmHabit(*draft, editingID)
	if err != nil {
		return err
	}
	fmt.Printf("Saved habit %q (%s at %s)\n", created.Title, created.Frequency, created.StartTime)
	return nil
}
