package cli

import (
	"fmt"
	"time"

	"github.com/qenapp/qen/internal/utils"
)

type ActivityCmd struct{}

// Run prints the activity summary: today's schedule plus per-habit
// completion totals and streaks.
func (c *ActivityCmd) Run(ctx *Context) error {
	events, habits := ctx.State.Snapshot()
	now := time.Now()
	today := utils.DateKey(now)

	fmt.Println(headerStyle.Render("Today " + today))
	shown := 0
	for _, e := range events {
		if e.StartDate != today {
			continue
		}
		fmt.Println(formatEvent(e))
		shown++
	}
	for _, h := range habits {
		if h.IsScheduledOn(now) && !h.IsPaused {
			fmt.Println(formatHabit(h, today))
			shown++
		}
	}
	if shown == 0 {
		fmt.Println("  (nothing scheduled)")
	}

	if len(habits) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Habit totals"))
		for _, h := range habits {
			fmt.Printf("  %-24s %3d days done, streak %d\n", h.Title, h.CompletionCount(), h.Streak)
		}
	}
	return nil
}
