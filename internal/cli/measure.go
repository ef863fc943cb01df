package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/b97tsk/asyncgen"
	"github.com/b97tsk/asyncgen/internal/measure"
	"github.com/b97tsk/asyncgen/internal/uniform"
)

func measureCmd(a *app) *cobra.Command {
	var gen generatorFlags
	var parallel int
	var format string

	c := &cobra.Command{
		Use:   "measure",
		Short: "Run several collections concurrently and report the elapsed time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			cfg, err := gen.apply(cmd, a.cfg.Generator)
			if err != nil {
				return err
			}

			p := a.cfg.Measure.Parallel
			if cmd.Flags().Changed("parallel") {
				p = parallel
			}

			seed := cfg.Seed
			newGen := func() *asyncgen.Generator[float64] {
				c := cfg
				if seed != 0 {
					c.Seed = seed
					seed++
				}
				return uniform.New(c)
			}

			rep, err := measure.Runtime(cmd.Context(), a.log, p, newGen)
			if err != nil {
				return err
			}

			return printReport(cmd.OutOrStdout(), rep, format)
		},
	}

	gen.register(c)
	c.Flags().IntVarP(&parallel, "parallel", "p", 4, "number of collections to run concurrently")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	return c
}

func printReport(w io.Writer, rep measure.Report, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"parallel":        rep.Parallel,
			"elapsed":         rep.Elapsed.String(),
			"elapsed_seconds": rep.Elapsed.Seconds(),
			"runs":            nonNil(rep.Runs),
		})
	}
	fmt.Fprintf(w, "Parallel: %d\n", rep.Parallel)
	fmt.Fprintf(w, "Elapsed:  %s\n", rep.Elapsed)
	for i, s := range rep.Runs {
		fmt.Fprintf(w, "- run %d: %s\n", i, formatList(s))
	}
	return nil
}
