package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baldhumanity/snakeai-go/neuroevo"
	"github.com/baldhumanity/snakeai-go/snake"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snakeai",
		Short: "Evolve neural network controllers for snake",
		Long: `snakeai evolves fixed-topology feed-forward networks that play snake.

Every generation each agent plays one game; fitness rewards fruit eaten and
frames survived. The fittest genome is carried over unchanged and the rest
of the population is bred by fitness-proportionate selection, single-point
crossover and per-gene mutation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "INI config file (built-in defaults when empty)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newEvolveCmd(),
		newWatchCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snakeai version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// loadConfigs reads the evolution and game settings from the --config file,
// or returns the defaults when no file is given.
func loadConfigs(cmd *cobra.Command) (neuroevo.Config, snake.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return neuroevo.DefaultConfig(), snake.DefaultConfig(), nil
	}
	file, err := neuroevo.LoadIni(path)
	if err != nil {
		return neuroevo.Config{}, snake.Config{}, err
	}
	evolution, err := neuroevo.ParseConfig(file)
	if err != nil {
		return neuroevo.Config{}, snake.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	game, err := snake.ParseConfig(file)
	if err != nil {
		return neuroevo.Config{}, snake.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return evolution, game, nil
}
