package sieve

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/your-org/numlab/cmd/numlab/app"
	"github.com/your-org/numlab/internal/sieve"
	"github.com/your-org/numlab/pkg/models"
)

func NewSieveCommand(env *app.Env) *cobra.Command {
	var format string
	var countOnly bool
	var stats bool

	cmd := &cobra.Command{
		Use:   "sieve [limit...]",
		Short: "List primes up to a limit",
		Long: `Computes every prime up to and including each limit with the sieve of
Eratosthenes. Without arguments the configured default limit is used.`,
		Example: "  numlab sieve 100\n  numlab sieve --count-only 100 1000 10000",
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := env.OutputFormat(format)
			if err != nil {
				return err
			}

			limits, err := parseLimits(args, env.Config.Sieve.DefaultLimit)
			if err != nil {
				return err
			}
			for _, limit := range limits {
				if err := sieve.Validate(limit, env.Config.Sieve.MaxLimit); err != nil {
					return fmt.Errorf("invalid limit: %w", err)
				}
			}

			printer := app.NewPrinter(cmd.OutOrStdout(), outFormat)
			for _, limit := range limits {
				run := generate(env, limit)
				if err := printer.Sieve(run, countOnly); err != nil {
					return err
				}
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
		return fmt.Errorf("invalid limit: %w: %s", sieve.ErrNegativeLimit, arg)
	})

	cmd.Flags().StringVar(&format, "format", "", "Output format (table, json); defaults to output.format")
	cmd.Flags().BoolVar(&countOnly, "count-only", false, "Print only the prime count for each limit")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print a run summary to stderr")

	return cmd
}

func generate(env *app.Env, limit int) *models.Run {
	env.Metrics.RecordRunStart(models.RunKindSieve)
	start := time.Now()

	primes := sieve.Generate(limit)

	elapsed := time.Since(start)
	run := models.NewSieveRun(limit, primes)
	run.Finish(elapsed)

	env.Metrics.RecordRunEnd(models.RunKindSieve, elapsed, true)
	env.Metrics.AddCounter("primes.found", int64(len(primes)))
	env.Logger.Debug("sieve finished",
		"run_id", run.ID,
		"limit", limit,
		"count", len(primes),
		"duration", elapsed,
	)

	return run
}

func parseLimits(args []string, defaultLimit int) ([]int, error) {
	if len(args) == 0 {
		return []int{defaultLimit}, nil
	}

	limits := make([]int, 0, len(args))
	for _, arg := range args {
		limit, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid limit %q: expected a non-negative integer", arg)
		}
		limits = append(limits, limit)
	}
	return limits, nil
}
