package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/qenapp/qen/internal/keyring"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	fmt.Printf("Storage:          %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("Dismissal phrase: %q\n", ctx.State.DismissalPhrase())
	if _, err := keyring.GetAPIKey(); err == nil {
		fmt.Println("Extraction key:   configured")
	} else {
		fmt.Println("Extraction key:   not configured")
	}
	return nil
}

type SettingsSetPhraseCmd struct {
	Phrase string `arg:"" help:"Phrase required to dismiss an alarm."`
}

func (c *SettingsSetPhraseCmd) Run(ctx *Context) error {
	phrase := strings.TrimSpace(c.Phrase)
	if phrase == "" {
		return fmt.Errorf("dismissal phrase cannot be empty")
	}
	if err := ctx.State.SetDismissalPhrase(phrase); err != nil {
		return err
	}
	fmt.Printf("Dismissal phrase set to %q.\n", phrase)
	return nil
}

type SettingsSetAPIKeyCmd struct {
	Key string `arg:"" help:"Extraction service API key."`
}

func (c *SettingsSetAPIKeyCmd) Run(ctx *Context) error {
	if err := keyring.SetAPIKey(c.Key); err != nil {
		return err
	}
	fmt.Println("API key stored in the OS keyring.")
	return nil
}

type SettingsDeleteAPIKeyCmd struct{}

func (c *SettingsDeleteAPIKeyCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		return err
	}
	fmt.Println("API key removed from the OS keyring.")
	return nil
}

type SettingsWipeCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

// Run deletes all stored events, habits, and settings.
func (c *SettingsWipeCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Print("Delete all data? This cannot be undone. Type 'yes' to confirm: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.State.Wipe(); err != nil {
		return err
	}
	fmt.Println("All data wiped.")
	return nil
}
