package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Plan workouts in an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the interactive session requires a terminal")
			}
			return runSession(app)
		},
	}
}

func runSession(app *App) error {
	p := tea.NewProgram(newSessionModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
