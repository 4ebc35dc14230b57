package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/qenapp/qen/internal/cli"
	"github.com/qenapp/qen/internal/constants"
	"github.com/qenapp/qen/internal/errors"
	"github.com/qenapp/qen/internal/logger"
	"github.com/qenapp/qen/internal/state"
	"github.com/qenapp/qen/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.db for SQLite, .json for a plain file) or a PostgreSQL connection string. Credentials must NOT be embedded in connection strings." default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize qen storage."`
	Add      cli.AddCmd      `cmd:"" help:"Create an entry from natural language."`
	Activity cli.ActivityCmd `cmd:"" help:"Show today's schedule and habit totals." default:"1"`
	Watch    cli.WatchCmd    `cmd:"" help:"Run the alarm scanner."`
	Event    struct {
		Add    cli.EventAddCmd    `cmd:"" help:"Add an event."`
		Edit   cli.EventEditCmd   `cmd:"" help:"Edit an event."`
		Delete cli.EventDeleteCmd `cmd:"" help:"Delete an event."`
		Done   cli.EventDoneCmd   `cmd:"" help:"Mark an event completed."`
		List   cli.EventListCmd   `cmd:"" help:"List events."`
	} `cmd:"" help:"Manage calendar events."`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a habit."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit a habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
		Toggle cli.HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
		Pause  cli.HabitPauseCmd  `cmd:"" help:"Pause or resume a habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits."`
	} `cmd:"" help:"Manage habits."`
	Settings struct {
		Show         cli.SettingsShowCmd         `cmd:"" help:"Show current settings." default:"1"`
		SetPhrase    cli.SettingsSetPhraseCmd    `cmd:"" help:"Set the alarm dismissal phrase."`
		SetApiKey    cli.SettingsSetAPIKeyCmd    `cmd:"" name:"set-api-key" help:"Store the extraction API key in the OS keyring."`
		DeleteApiKey cli.SettingsDeleteAPIKeyCmd `cmd:"" name:"delete-api-key" help:"Remove the extraction API key."`
		Wipe         cli.SettingsWipeCmd         `cmd:"" help:"Delete all stored data."`
	} `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal scheduling and habit-tracking companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"config_path":   constants.DefaultConfigPath,
			"scan_interval": constants.DefaultScanInterval.String(),
		},
	)

	config := expandHome(CLI.Config)

	var store storage.Provider
	switch {
	case strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://"):
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintln(os.Stderr, "Error: connection strings with embedded credentials are not allowed; use the environment or .pgpass instead.")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(config)
	case strings.HasSuffix(config, ".json"):
		store = storage.NewJSONStore(config)
	default:
		store = storage.NewSQLiteStore(config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{Store: store, Debug: CLI.Debug}

	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		st, err := state.Load(store)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.State = st
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// configDir is where logs live: next to a file-backed store, or under the
// user config dir when storage is remote.
func configDir(config string) string {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, constants.AppName)
		}
		return "."
	}
	return filepath.Dir(config)
}
