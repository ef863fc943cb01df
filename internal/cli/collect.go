package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/b97tsk/asyncgen"
	"github.com/b97tsk/asyncgen/internal/uniform"
)

func collectCmd(a *app) *cobra.Command {
	var gen generatorFlags
	var repeat int
	var format string

	c := &cobra.Command{
		Use:   "collect",
		Short: "Collect every value of a generator into a list and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if repeat < 1 {
				return fmt.Errorf("repeat must be positive, got %d", repeat)
			}

			cfg, err := gen.apply(cmd, a.cfg.Generator)
			if err != nil {
				return err
			}

			runs, err := collectRuns(cmd.Context(), a.log, cfg, repeat)
			if err != nil {
				return err
			}

			return printRuns(cmd.OutOrStdout(), runs, format)
		},
	}

	gen.register(c)
	c.Flags().IntVar(&repeat, "repeat", 1, "number of independent collections to run concurrently")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	return c
}

// collectRuns drains repeat independent generators, each on its own executor
// and goroutine.
func collectRuns(ctx context.Context, log *zap.Logger, cfg uniform.Config, repeat int) ([][]float64, error) {
	runs := make([][]float64, repeat)

	eg, egCtx := errgroup.WithContext(ctx)

	for i := range repeat {
		c := cfg
		if c.Seed != 0 {
			c.Seed += uint64(i)
		}
		eg.Go(func() error {
			log.Debug("Collecting", zap.Int("run", i), zap.Int("count", c.Count))
			s, err := asyncgen.CollectAll(egCtx, uniform.New(c))
			runs[i] = s
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			log.Debug("Collected", zap.Int("run", i), zap.Int("values", len(s)))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		log.Warn("Collection failed", zap.Error(err))
		return runs, err
	}

	return runs, nil
}

func printRuns(w io.Writer, runs [][]float64, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"runs": nonNil(runs)})
	}
	for _, s := range runs {
		fmt.Fprintln(w, formatList(s))
	}
	return nil
}

// formatList renders s as a bracketed, comma separated list.
func formatList(s []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// nonNil keeps empty runs as [] rather than null in JSON.
func nonNil(runs [][]float64) [][]float64 {
	out := make([][]float64, len(runs))
	for i, s := range runs {
		if s == nil {
			s = []float64{}
		}
		out[i] = s
	}
	return out
}
