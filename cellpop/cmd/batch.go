package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cellpop/population"
	"github.com/sarchlab/cellpop/scenario"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE.hcl...",
		Short: "Count every scenario defined in HCL files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCENARIO\tHORIZON\tDELAY\tLIFESPAN\tSTRATEGY\tALIVE")

			for _, path := range args {
				scenarios, err := scenario.Load(path)
				if err != nil {
					return err
				}

				opts.logger.Info("loaded scenarios",
					"file", path, "count", len(scenarios))

				for _, s := range scenarios {
					warnIfSterile(opts, s.Params)

					alive, err := population.Count(s.Params,
						population.WithStrategy(s.Strategy))
					if err != nil {
						return fmt.Errorf("scenario %q: %w", s.Name, err)
					}

					fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\n",
						s.Name,
						s.Params.Horizon,
						s.Params.ReproductionDelay,
						s.Params.Lifespan,
						s.Strategy,
						alive)
				}
			}

			return w.Flush()
		},
	}
}
