// Package cmd provides the command-line interface for cellpop.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cellpop/scenario"
)

type rootOptions struct {
	envFiles []string
	logLevel string

	logger *slog.Logger
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cellpop",
		Short: "cellpop counts the cells alive on a given day of a population model.",
		Long: `cellpop counts the cells alive on a given day of a population model ` +
			`in which every cell produces one offspring per day once it is old ` +
			`enough, and dies when it reaches its lifespan. Counts are reported ` +
			`modulo 1,000,000,007.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil,
		"Load CELLPOP_* defaults from these .env files (default ./.env if present)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn",
		"Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newCountCmd(opts),
		newSimulateCmd(opts),
		newBatchCmd(opts),
	)

	return rootCmd
}

func (o *rootOptions) setup(stderr io.Writer) error {
	logger, err := newLogger(stderr, o.logLevel)
	if err != nil {
		return err
	}

	o.logger = logger

	return scenario.LoadEnv(o.envFiles...)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// Execute runs the root command and exits the process, running the atexit
// handlers first.
func Execute() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
