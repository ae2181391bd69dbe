package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskpad/internal/tui"
)

// TuiCmd runs the interactive single-screen task list.
type TuiCmd struct {
	flags *Flags
	app   *App
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Run executes the TUI. Exported for use as the default action.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	m := tui.New(tui.Deps{
		Store:         cmd.app.Tasks,
		MaxTextLength: cmd.app.Config.Tasks.MaxTextLength,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
