package fib

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/your-org/numlab/cmd/numlab/app"
	"github.com/your-org/numlab/internal/fibonacci"
	"github.com/your-org/numlab/pkg/models"
)

// ErrNotPositiveInteger is returned for arguments that do not parse as an
// unsigned base-10 integer.
var ErrNotPositiveInteger = errors.New("please provide a positive integer number")

func NewFibCommand(env *app.Env) *cobra.Command {
	var format string
	var naive bool
	var stats bool

	cmd := &cobra.Command{
		Use:   "fib <n>",
		Short: "Compute the n-th Fibonacci number",
		Long: `Computes F(n) with F(0)=0 and F(1)=F(2)=1. The memoized strategy keeps a
lookup table for the duration of the call; --naive uses plain recursion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := env.OutputFormat(format)
			if err != nil {
				return err
			}

			n, err := parseN(args[0])
			if err != nil {
				return err
			}

			strategy, err := fibonacci.ParseStrategy(env.Config.Fibonacci.Strategy)
			if err != nil {
				return err
			}
			if naive {
				strategy = fibonacci.StrategyNaive
			}

			limits := fibonacci.Limits{
				MaxN:      env.Config.Fibonacci.MaxN,
				NaiveMaxN: env.Config.Fibonacci.NaiveMaxN,
			}
			if err := limits.Validate(n, strategy); err != nil {
				return fmt.Errorf("invalid n: %w", err)
			}

			run, err := compute(env, n, strategy)
			if err != nil {
				return err
			}

			printer := app.NewPrinter(cmd.OutOrStdout(), outFormat)
			if err := printer.Fibonacci(run); err != nil {
				return err
			}
			if err := printer.Flush(); err != nil {
				return err
			}

			if stats {
				return env.WriteStats(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	app.OnNegativeNumber(cmd, func(arg string) error {
		return fmt.Errorf("%w (got %q)", ErrNotPositiveInteger, arg)
	})

	cmd.Flags().StringVar(&format, "format", "", "Output format (table, json); defaults to output.format")
	cmd.Flags().BoolVar(&naive, "naive", false, "Use plain recursion instead of the memoized strategy")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print a run summary to stderr")

	return cmd
}

func compute(env *app.Env, n uint, strategy fibonacci.Strategy) (*models.Run, error) {
	env.Metrics.RecordRunStart(models.RunKindFibonacci)
	start := time.Now()

	value, err := fibonacci.Compute(n, strategy)

	elapsed := time.Since(start)
	env.Metrics.RecordRunEnd(models.RunKindFibonacci, elapsed, err == nil)
	if err != nil {
		return nil, err
	}

	run := models.NewFibonacciRun(n, string(strategy), value.String())
	run.Finish(elapsed)

	env.Logger.Debug("fibonacci finished",
		"run_id", run.ID,
		"n", n,
		"strategy", strategy,
		"duration", elapsed,
	)

	return run, nil
}

func parseN(arg string) (uint, error) {
	n, err := strconv.ParseUint(arg, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%w (got %q)", ErrNotPositiveInteger, arg)
	}
	return uint(n), nil
}
