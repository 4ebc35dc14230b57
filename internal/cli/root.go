package cli

import (
	"github.com/qenapp/qen/internal/state"
	"github.com/qenapp/qen/internal/storage"
)

// Context is passed to every command by kong.
type Context struct {
	Store storage.Provider
	State *state.State
	Debug bool
}
