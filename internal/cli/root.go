package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/wodforge/internal/llm"
	"github.com/alexanderramin/wodforge/internal/pipeline"
	"github.com/alexanderramin/wodforge/internal/wod"
)

// Planner runs the full generation pipeline for one request.
// *pipeline.Pipeline satisfies it; tests substitute a scripted planner.
type Planner interface {
	Run(ctx context.Context, request string, userCtx wod.Mapping) (*pipeline.Result, error)
}

// App holds the wired dependencies CLI commands run against.
type App struct {
	Planner Planner
	Config  llm.Config

	// IsInteractive reports whether stdin is attached to a terminal.
	// Set from main; nil means non-interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "wodforge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "wodforge",
		Short: "Turn a free-text training request into a complete workout plan",
	}

	// The JSON output uses snake_case field names, so accept the same
	// spelling for flags: --full_json normalizes to --full-json.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newPlanCmd(app),
		newSessionCmd(app),
		newStagesCmd(app),
		newLedgerCmd(app),
	)

	return root
}
