package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/your-org/numlab/cmd/numlab/app"
	"github.com/your-org/numlab/cmd/numlab/fib"
	"github.com/your-org/numlab/cmd/numlab/sieve"
)

const version = "0.1.0"

func newRootCommand() *cobra.Command {
	var cfgFile string
	env := app.New()

	rootCmd := &cobra.Command{
		Use:   "numlab",
		Short: "Prime sieve and Fibonacci calculator",
		Long: `numlab lists the primes up to a limit with the sieve of Eratosthenes and
computes Fibonacci numbers, printing results as plain lines or JSON.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Init(cfgFile, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.numlab.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	env.Viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	env.Viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(sieve.NewSieveCommand(env))
	rootCmd.AddCommand(fib.NewFibCommand(env))

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
