package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/qenapp/qen/internal/models"
	"github.com/qenapp/qen/internal/utils"
)

var (
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	streakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	priorityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

type HabitAddCmd struct{}

func (c *HabitAddCmd) Run(ctx *Context) error {
	draft := models.NewHabitDraft(time.Now())
	draft.StartDate = utils.DateKey(time.Now())
	return confirmHabitDraft(ctx, draft, "")
}

type HabitEditCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, ok := ctx.State.FindHabit(c.ID)
	if !ok {
		return fmt.Errorf("no habit with id %s", c.ID)
	}
	draft := habit
	return confirmHabitDraft(ctx, &draft, c.ID)
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.State.DeleteHabit(c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

type HabitToggleCmd struct {
	ID   string `arg:"" help:"Habit id."`
	Date string `help:"Day to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	day := c.Date
	if day == "" {
		day = utils.DateKey(time.Now())
	} else if !utils.ValidateDateFormat(day) {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD)")
	}

	if err := ctx.State.ToggleHabit(c.ID, day); err != nil {
		return err
	}
	if h, ok := ctx.State.FindHabit(c.ID); ok {
		if h.History[day] {
			fmt.Printf("Marked %q done for %s. Streak: %d\n", h.Title, day, h.Streak)
		} else {
			fmt.Printf("Unmarked %q for %s. Streak: %d\n", h.Title, day, h.Streak)
		}
	}
	return nil
}

type HabitPauseCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *HabitPauseCmd) Run(ctx *Context) error {
	if err := ctx.State.TogglePause(c.ID); err != nil {
		return err
	}
	if h, ok := ctx.State.FindHabit(c.ID); ok {
		if h.IsPaused {
			fmt.Printf("Paused %q.\n", h.Title)
		} else {
			fmt.Printf("Resumed %q.\n", h.Title)
		}
	}
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	_, habits := ctx.State.Snapshot()
	today := utils.DateKey(time.Now())

	fmt.Println(headerStyle.Render("Habits"))
	if len(habits) == 0 {
		fmt.Println("  (no habits)")
		return nil
	}
	for _, h := range habits {
		fmt.Println(formatHabit(h, today))
	}
	return nil
}

func formatHabit(h models.Habit, today string) string {
	var b strings.Builder
	mark := " "
	if h.History[today] {
		mark = "✓"
	}
	fmt.Fprintf(&b, "  [%s] %s  %s (%s at %s)", mark, streakStyle.Render(fmt.Sprintf("%3d🔥", h.Streak)), h.Title, h.Frequency, h.StartTime)
	line := b.String()
	if h.Priority == models.PriorityImportant {
		line += priorityStyle.Render("  !")
	}
	if h.IsPaused {
		line += pausedStyle.Render("  (paused)")
	}
	return line + idStyle.Render("  ["+h.ID+"]")
}
