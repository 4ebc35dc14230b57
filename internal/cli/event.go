package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qenapp/qen/internal/models"
	"github.com/qenapp/qen/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alarmStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type EventAddCmd struct{}

func (c *EventAddCmd) Run(ctx *Context) error {
	return confirmEventDraft(ctx, models.NewEventDraft(), "")
}

type EventEditCmd struct {
	ID string `arg:"" help:"Event id."`
}

func (c *EventEditCmd) Run(ctx *Context) error {
	event, ok := ctx.State.FindEvent(c.ID)
	if !ok {
		return fmt.Errorf("no event with id %s", c.ID)
	}
	draft := event
	return confirmEventDraft(ctx, &draft, c.ID)
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event id."`
}

func (c *EventDeleteCmd) Run(ctx *Context) error {
	if err := ctx.State.DeleteEvent(c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

type EventDoneCmd struct {
	ID string `arg:"" help:"Event id."`
}

func (c *EventDoneCmd) Run(ctx *Context) error {
	if err := ctx.State.CompleteEvent(c.ID); err != nil {
		return err
	}
	fmt.Println("Marked done.")
	return nil
}

type EventListCmd struct {
	Date string `help:"Only show events on this date (YYYY-MM-DD)."`
	All  bool   `help:"Include completed events."`
}

func (c *EventListCmd) Run(ctx *Context) error {
	if c.Date != "" && !utils.ValidateDateFormat(c.Date) {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD)")
	}

	events, _ := ctx.State.Snapshot()
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartDate != events[j].StartDate {
			return events[i].StartDate < events[j].StartDate
		}
		return events[i].StartTime < events[j].StartTime
	})

	fmt.Println(headerStyle.Render("Schedule"))
	shown := 0
	for _, e := range events {
		if c.Date != "" && e.StartDate != c.Date {
			continue
		}
		if e.IsCompleted && !c.All {
			continue
		}
		fmt.Println(formatEvent(e))
		shown++
	}
	if shown == 0 {
		fmt.Println("  (no events)")
	}
	return nil
}

func formatEvent(e models.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s  %s", e.StartDate, e.StartTime, e.Title)
	if e.Location != "" {
		fmt.Fprintf(&b, " @ %s", e.Location)
	}
	line := b.String()
	if e.IsCompleted {
		line = doneStyle.Render(line)
	} else if e.AlertMode == models.AlertAlarm {
		line += alarmStyle.Render("  ⏰")
	}
	return line + idStyle.Render("  ["+e.ID+"]")
}
