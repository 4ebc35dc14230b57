package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/qenapp/qen/internal/audio"
	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/logger"
	"github.com/qenapp/qen/internal/notifier"
	"github.com/qenapp/qen/internal/scanner"
	"github.com/qenapp/qen/internal/tui/alarm"
)

type WatchCmd struct {
	Interval time.Duration `help:"Scan interval. Must be one minute or less to catch every due minute." default:"${scan_interval}"`
	Sound    string        `help:"Path to the alarm sound file." type:"path"`
}

// Run starts the alarm scanner and blocks until interrupted. Alarm-mode
// alerts raise the full-screen overlay; normal-mode alerts go to the tray
// notifier.
func (c *WatchCmd) Run(ctx *Context) error {
	if c.Interval <= 0 || c.Interval > constants.MaxScanInterval {
		return fmt.Errorf("interval must be between 1s and %s", constants.MaxScanInterval)
	}

	player := audio.New(c.Sound)
	handler := func(a scanner.Alarm) scanner.Decision {
		return alarm.Present(a, ctx.State.DismissalPhrase())
	}

	s := scanner.New(ctx.State, notifier.New(), player, handler, c.Interval)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching for due events and habits every %s. Ctrl-C to stop.\n", c.Interval)
	logger.Info("Scanner started", "interval", c.Interval)
	s.Run(runCtx)
	logger.Info("Scanner stopped")
	return nil
}
