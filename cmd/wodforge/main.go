package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/wodforge/internal/cli"
	"github.com/alexanderramin/wodforge/internal/ledger"
	"github.com/alexanderramin/wodforge/internal/llm"
	"github.com/alexanderramin/wodforge/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is developer convenience; a missing one is not an error.
	_ = godotenv.Load()

	cfg := llm.LoadConfig()

	// Assemble call observers: stderr log and SQLite ledger, both opt-in.
	var observers llm.MultiObserver
	if cfg.LogCalls {
		observers = append(observers, llm.NewLogObserver(os.Stderr))
	}
	if cfg.LedgerPath != "" {
		led, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return fmt.Errorf("opening call ledger: %w", err)
		}
		defer led.Close()
		observers = append(observers, led)
	}
	var observer llm.Observer = llm.NoopObserver{}
	if len(observers) > 0 {
		observer = observers
	}

	client, err := llm.NewClient(cfg, observer)
	if err != nil {
		return err
	}

	app := &cli.App{
		Planner: pipeline.New(client),
		Config:  cfg,
	}

	// Detect an interactive terminal for the session entrypoint and the
	// one-shot spinner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
