package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wodforge/internal/cli/formatter"
	"github.com/alexanderramin/wodforge/internal/pipeline"
)

func newStagesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "Show the field contracts of the four generation stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(formatter.FormatContracts(pipeline.Contracts()))
			return nil
		},
	}
}
