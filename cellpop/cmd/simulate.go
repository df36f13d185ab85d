package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cellpop/colony"
	"github.com/sarchlab/cellpop/hooking"
	"github.com/sarchlab/cellpop/scenario"
	"github.com/sarchlab/cellpop/simulation"
)

type simulateFlags struct {
	modelFlags

	record bool
	output string
	trace  bool
}

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	flags := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate the colony day by day on the event engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			warnIfSterile(opts, s.Params)

			return runSimulation(cmd, opts, flags, s)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.record, "record", false,
		"Record every day into a SQLite file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Name of the SQLite file, without extension (default $CELLPOP_OUTPUT or a generated name)")
	cmd.Flags().BoolVar(&flags.trace, "trace", false,
		"Print born and alive counts for every day")

	return cmd
}

func runSimulation(
	cmd *cobra.Command,
	opts *rootOptions,
	flags *simulateFlags,
	s scenario.Scenario,
) error {
	out := cmd.OutOrStdout()

	builder := simulation.MakeBuilder().
		WithParams(s.Params).
		WithLogger(opts.logger)

	output := flags.output
	if output == "" {
		output = os.Getenv(scenario.EnvOutput)
	}

	if flags.record {
		builder = builder.WithRecording().WithOutputFileName(output)
	}

	sim, err := builder.Build()
	if err != nil {
		return err
	}

	if flags.trace {
		fmt.Fprintf(out, "%6s %12s %12s\n", "day", "born", "alive")
		sim.Colony().AcceptHook(tracePrinter(out))
	}

	alive, err := sim.Run()
	if err != nil {
		return terminateAfter(sim, err)
	}

	fmt.Fprintf(out, "Alive cells on day %d: %d\n", s.Params.Horizon, alive)

	if sim.OutputFile() != "" {
		fmt.Fprintf(out, "Recorded run %s in %s\n", sim.ID(), sim.OutputFile())
	}

	logMemoryUsage(opts.logger)

	return terminateAfter(sim, nil)
}

type terminator interface {
	Terminate() error
}

// terminateAfter releases the simulation once and reports a terminate
// failure alongside err.
func terminateAfter(sim terminator, err error) error {
	if termErr := sim.Terminate(); termErr != nil {
		return errors.Join(err,
			fmt.Errorf("terminating simulation: %w", termErr))
	}

	return err
}

func tracePrinter(w io.Writer) hooking.Hook {
	return hooking.HookFunc(func(ctx hooking.HookCtx) {
		if ctx.Pos != colony.HookPosDayEnd {
			return
		}

		r := ctx.Item.(colony.DayReport)
		fmt.Fprintf(w, "%6d %12d %12d\n", r.Day, r.Born, r.Alive)
	})
}

func logMemoryUsage(logger *slog.Logger) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Debug("cannot inspect process", "error", err)
		return
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		logger.Debug("cannot read memory usage", "error", err)
		return
	}

	logger.Debug("memory usage", "rss_bytes", mem.RSS, "vms_bytes", mem.VMS)
}
