package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/hwcursor"
	"github.com/gogpu/hwcursor/backend"
)

type options struct {
	scenario string
	output   string
	backend  string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{output: "cursor.png"}

	cmd := &cobra.Command{
		Use:   "cursordemo",
		Short: "Render a cursor scenario to a PNG image.",
		Long: `Render a cursor scenario to a PNG image.

The scenario sets up an output on a display backend, gives it a cursor and
moves or locks the cursor. The final frame is captured the way the display
would show it, with the hardware cursor plane composited over the primary
plane.`,
		Example:       "cursordemo --scenario rotated.toml --out rotated.png",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.verbose {
				hwcursor.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(
		&opts.verbose, "verbose", "v", opts.verbose,
		`Log cursor plane decisions to stderr`,
	)
	cmd.Flags().StringVar(
		&opts.scenario, "scenario", opts.scenario,
		`Path to the TOML scenario file`,
	)
	cmd.Flags().StringVarP(
		&opts.output, "out", "o", opts.output,
		`Where to write the PNG frame`,
	)
	cmd.Flags().StringVar(
		&opts.backend, "backend", opts.backend,
		fmt.Sprintf(`Override the scenario backend (one of %v)`, backend.Available()),
	)
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runDemo(cmd *cobra.Command, opts *options) error {
	s, err := loadScenario(opts.scenario)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		s.Output.Backend = opts.backend
	}

	res, err := run(s)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writePNG(f, res.Frame); err != nil {
		f.Close()
		return fmt.Errorf("failed to write PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	mode := "software"
	if res.Hardware {
		mode = "hardware"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s cursor, damage %v, wrote %s\n",
		s.Output.Name, mode, res.Damage.Extents(), opts.output)
	return nil
}
