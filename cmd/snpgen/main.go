// Package main provides the snpgen binary entry point. snpgen writes spiking
// neural P system fixtures (chains and complete graphs) in the v3 and v2
// simulator formats.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"snpgen/internal/batch"
	"snpgen/internal/config"
	"snpgen/internal/storage"
)

const appName = "snpgen"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate spiking neural P system fixtures",
		Long: `snpgen builds one-spike chains, all-spike chains, simple complete graphs
and benchmark complete graphs at increasing sizes and writes each of them as
v3 (JSON) and v2 (XMP) documents under <root>/<family>/<version>/.

Generation parameters come from snpgen.yaml (or --config); without a file the
built-in defaults are used.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), configPath, cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Write every fixture family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), configPath, cmd.ErrOrStderr())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "runs",
		Short: "List recorded generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd.Context(), configPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "fixtures [run-id]",
		Short: "List fixtures written by a run (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runFixtures(cmd.Context(), configPath, runID, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})
	return cmd
}

func setup(ctx context.Context, configPath string, logOut io.Writer) (*config.Config, storage.Store, *slog.Logger, error) {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	store, err := storage.NewStore(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, nil, nil, fmt.Errorf("init %s store: %w", cfg.Store.Kind, err)
	}
	return cfg, store, logger, nil
}

func runGenerate(ctx context.Context, configPath string, logOut io.Writer) error {
	cfg, store, logger, err := setup(ctx, configPath, logOut)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	runner, err := batch.NewRunner(batch.Config{
		Settings: cfg,
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	_, err = runner.Run(ctx)
	return err
}

func runRuns(ctx context.Context, configPath string, out, logOut io.Writer) error {
	_, store, _, err := setup(ctx, configPath, logOut)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Fprintf(out, "%s\t%s\t%s\tfixtures=%d\n", run.ID, run.StartedAtUTC, run.Status, run.Fixtures)
	}
	return nil
}

func runFixtures(ctx context.Context, configPath, runID string, out, logOut io.Writer) error {
	_, store, _, err := setup(ctx, configPath, logOut)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	if runID == "" {
		runs, err := store.ListRuns(ctx)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no runs recorded")
		}
		runID = runs[0].ID
	}

	fixtures, err := store.ListFixtures(ctx, runID)
	if err != nil {
		return err
	}
	for _, f := range fixtures {
		fmt.Fprintf(out, "%s\t%s\t%s\tneurons=%d\tsynapses=%d\tbytes=%d\n", f.Path, f.Family, f.Format, f.Neurons, f.Synapses, f.Bytes)
	}
	return nil
}
