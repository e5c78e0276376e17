package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Placement/internal/config"
	"github.com/MikeSquared-Agency/Placement/internal/runner"
	"github.com/MikeSquared-Agency/Placement/internal/store"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// app holds what every subcommand needs once the config is loaded.
type app struct {
	cfg    *config.Config
	runner *runner.Runner
	logger *slog.Logger
	out    io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout}
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:          "placementctl",
		Short:        "Run VIKOR internship placements from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(configPath, verbose, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log engine progress to stderr")

	root.AddCommand(runCmd(a))
	root.AddCommand(sampleCmd(a))
	root.AddCommand(sheetsCmd(a))
	return root
}

func (a *app) init(configPath string, verbose bool, stderr io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := slog.LevelWarn
	if verbose {
		level = cfg.SlogLevel()
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	weights, err := cfg.WeightVector()
	if err != nil {
		return err
	}
	engine := vikor.NewEngine(cfg.EngineOptions(), a.logger)
	a.cfg = cfg
	a.runner = runner.New(engine, store.NewMemoryStore(1), nil, nil,
		runner.Defaults{Weights: weights, V: cfg.VIKOR.V}, a.logger)
	return nil
}

func (a *app) execute(ctx context.Context, req runner.Request) (*vikor.Result, error) {
	run, err := a.runner.Execute(ctx, store.SourceCLI, req)
	if err != nil {
		return nil, err
	}
	return run.Result, nil
}
