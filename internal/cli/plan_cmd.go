package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wodforge/internal/cli/formatter"
	"github.com/alexanderramin/wodforge/internal/wod"
)

// The documented example pair. It predates the CLI surface and stays the
// reference input: `plan --example` runs it, and the interactive session
// seeds its placeholder from it.
const exampleRequest = "I want to train my endurance and improve my running"

func exampleUserContext() wod.Mapping {
	return wod.Mapping{
		"injury": "back pain",
		"goals":  []any{"improve endurance"},
	}
}

func newPlanCmd(app *App) *cobra.Command {
	var injury string
	var goals []string
	var contextFile string
	var example, verbose, jsonOut, fullJSON bool

	cmd := &cobra.Command{
		Use:   "plan [request]",
		Short: "Generate a workout plan for a training request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := ""
			if len(args) > 0 {
				request = args[0]
			}
			if example {
				request = exampleRequest
			}
			if strings.TrimSpace(request) == "" {
				if app.interactive() {
					return runSession(app)
				}
				return fmt.Errorf("no request given: pass one as an argument, or run 'wodforge session' on a terminal")
			}

			userCtx, err := buildUserContext(contextFile, injury, goals, example)
			if err != nil {
				return err
			}

			var stopSpinner func()
			if app.interactive() && !jsonOut && !fullJSON {
				stopSpinner = formatter.StartSpinner("Generating plan...")
			}
			res, err := app.Planner.Run(context.Background(), request, userCtx)
			if stopSpinner != nil {
				stopSpinner()
			}
			if err != nil {
				return err
			}

			switch {
			case fullJSON:
				return printJSON(res)
			case jsonOut:
				return printJSON(res.Plan)
			default:
				fmt.Println(formatter.FormatPlan(res))
				if verbose {
					fmt.Println(formatter.FormatTrace(res.RunID, res.Stages))
					fmt.Println(formatter.FormatIntermediates(res))
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&injury, "injury", "", "Active injury to train around (e.g. \"back pain\")")
	cmd.Flags().StringArrayVar(&goals, "goal", nil, "Training goal, repeatable")
	cmd.Flags().StringVar(&contextFile, "context-file", "", "YAML or JSON file with user context")
	cmd.Flags().BoolVar(&example, "example", false, "Run the documented example request and context")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print per-stage traces and intermediate mappings after the plan")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the raw plan as JSON")
	cmd.Flags().BoolVar(&fullJSON, "full-json", false, "Print the whole pipeline result as JSON")

	return cmd
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
