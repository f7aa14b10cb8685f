package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/baldhumanity/snakeai-go/internal/logging"
	"github.com/baldhumanity/snakeai-go/neuroevo"
	"github.com/baldhumanity/snakeai-go/snake"
)

func newEvolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Run the genetic algorithm and checkpoint the population",
		Long: `Evolve a population of snake controllers.

The population is saved to --checkpoint every --checkpoint-every generations
and once more when the run finishes or is interrupted. With --resume an
existing checkpoint is loaded instead of starting from random genomes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			generations, _ := cmd.Flags().GetInt("generations")
			checkpoint, _ := cmd.Flags().GetString("checkpoint")
			every, _ := cmd.Flags().GetInt("checkpoint-every")
			workers, _ := cmd.Flags().GetInt("workers")
			seed, _ := cmd.Flags().GetInt64("seed")
			resume, _ := cmd.Flags().GetBool("resume")
			level, _ := cmd.Flags().GetString("log-level")

			evolution, game, err := loadConfigs(cmd)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(level, cmd.ErrOrStderr())

			if seed == 0 {
				seed = evolution.Evolution.Seed
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			opts := []snake.Option{snake.WithLogger(logger), snake.WithWorkers(workers)}
			if resume {
				if _, err := os.Stat(checkpoint); err == nil {
					pop, elite, err := neuroevo.LoadCheckpoint(checkpoint, evolution)
					if err != nil {
						return err
					}
					logger.Info("resuming from checkpoint", "path", checkpoint, "generation", pop.Generation())
					opts = append(opts, snake.WithPopulation(pop, elite))
				} else {
					logger.Info("no checkpoint to resume, starting fresh", "path", checkpoint)
				}
			}

			sim, err := snake.NewSimulation(evolution, game, seed, opts...)
			if err != nil {
				return err
			}
			logger.Info("starting evolution",
				"seed", seed,
				"pop_size", evolution.Evolution.PopSize,
				"shape", fmt.Sprint(evolution.Network.Shape),
				"generations", generations)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			completed := 0
			err = sim.Run(ctx, generations, func(r snake.Report) error {
				completed++
				if every > 0 && completed%every == 0 {
					if err := neuroevo.SaveCheckpoint(checkpoint, sim.Population(), sim.Elite()); err != nil {
						return err
					}
					logger.Debug("checkpoint saved", "path", checkpoint, "generation", sim.Population().Generation())
				}
				return nil
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if err != nil {
				logger.Warn("interrupted, saving checkpoint")
			}

			if err := neuroevo.SaveCheckpoint(checkpoint, sim.Population(), sim.Elite()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generations: %d\nbest score: %d\ncheckpoint: %s (generation %d)\n",
				completed, sim.BestScore(), checkpoint, sim.Population().Generation())
			return nil
		},
	}

	cmd.Flags().Int("generations", 100, "Generations to run (0 runs until interrupted)")
	cmd.Flags().String("checkpoint", "snakeai_checkpoint.gz", "Checkpoint file")
	cmd.Flags().Int("checkpoint-every", 10, "Save a checkpoint every N generations (0 saves only at the end)")
	cmd.Flags().Int("workers", 0, "Games played concurrently (0 uses GOMAXPROCS)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 uses the config seed, then the clock)")
	cmd.Flags().Bool("resume", false, "Continue from --checkpoint when it exists")
	return cmd
}
