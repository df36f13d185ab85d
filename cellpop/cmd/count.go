package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cellpop/population"
	"github.com/sarchlab/cellpop/scenario"
)

// modelFlags are the flags shared by every command that takes one model.
type modelFlags struct {
	horizon  int
	delay    int
	lifespan int
	strategy string
}

func (f *modelFlags) register(cmd *cobra.Command) {
	d := population.DefaultParams()

	cmd.Flags().IntVarP(&f.horizon, "horizon", "a", d.Horizon,
		"Day whose alive count is reported")
	cmd.Flags().IntVarP(&f.delay, "delay", "b", d.ReproductionDelay,
		"Age in days from which a cell produces one offspring per day")
	cmd.Flags().IntVarP(&f.lifespan, "lifespan", "c", d.Lifespan,
		"Age in days at which a cell dies")
	cmd.Flags().StringVar(&f.strategy, "strategy", "",
		"Window summation: prefix-sum or window-scan")
}

// resolve layers the flags the user set over the environment defaults.
func (f *modelFlags) resolve(cmd *cobra.Command) (scenario.Scenario, error) {
	s, err := scenario.Defaults()
	if err != nil {
		return scenario.Scenario{}, err
	}

	flags := cmd.Flags()

	if flags.Changed("horizon") {
		s.Params.Horizon = f.horizon
	}

	if flags.Changed("delay") {
		s.Params.ReproductionDelay = f.delay
	}

	if flags.Changed("lifespan") {
		s.Params.Lifespan = f.lifespan
	}

	if flags.Changed("strategy") {
		s.Strategy, err = population.ParseStrategy(f.strategy)
		if err != nil {
			return scenario.Scenario{}, err
		}
	}

	if err := s.Params.Validate(); err != nil {
		return scenario.Scenario{}, err
	}

	return s, nil
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	flags := &modelFlags{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of cells alive on the horizon day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			warnIfSterile(opts, s.Params)

			alive, err := population.Count(s.Params,
				population.WithStrategy(s.Strategy))
			if err != nil {
				return err
			}

			opts.logger.Debug("counted", "params", s.Params.String(),
				"strategy", s.Strategy.String(), "alive", alive)

			fmt.Fprintf(cmd.OutOrStdout(), "Alive cells on day %d: %d\n",
				s.Params.Horizon, alive)

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func warnIfSterile(opts *rootOptions, p population.Params) {
	if p.Sterile() {
		opts.logger.Warn("cells die before they can reproduce",
			"reproduction_delay", p.ReproductionDelay,
			"lifespan", p.Lifespan)
	}
}
