package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wodforge/internal/cli/formatter"
	"github.com/alexanderramin/wodforge/internal/ledger"
)

func newLedgerCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show recent generation calls from the call ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Config.LedgerPath
			if path == "" {
				return fmt.Errorf("no call ledger configured: set WODFORGE_LLM_LEDGER to a database path")
			}

			led, err := ledger.Open(path)
			if err != nil {
				return fmt.Errorf("opening ledger: %w", err)
			}
			defer led.Close()

			entries, err := led.Recent(limit)
			if err != nil {
				return fmt.Errorf("reading ledger: %w", err)
			}

			fmt.Println(formatter.FormatLedger(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of calls to show")

	return cmd
}
