package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/baldhumanity/snakeai-go/internal/render"
	"github.com/baldhumanity/snakeai-go/neuroevo"
	"github.com/baldhumanity/snakeai-go/snake"
)

// newScreen is replaced in tests.
var newScreen = tcell.NewScreen

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Replay the elite genome of a checkpoint in the terminal",
		Long: `Load a checkpoint and let its elite genome play one game in the terminal.

Keys: g toggles the status line; q, Esc or Ctrl-C quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpoint, _ := cmd.Flags().GetString("checkpoint")
			fps, _ := cmd.Flags().GetInt("fps")
			seed, _ := cmd.Flags().GetInt64("seed")

			evolution, game, err := loadConfigs(cmd)
			if err != nil {
				return err
			}
			pop, elite, err := neuroevo.LoadCheckpoint(checkpoint, evolution)
			if err != nil {
				return err
			}
			if elite == nil {
				// Before the first advance there is no elite; any agent will do.
				elite = pop.Agent(0).Genome()
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			g, err := snake.NewGame(game, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}

			screen, err := newScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			term, err := render.NewTerminal(screen, fmt.Sprintf("generation %d", pop.Generation()))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			res, err := term.Replay(ctx, g, elite, fps)
			term.Close()
			if err != nil && !errors.Is(err, render.ErrQuit) {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "score: %d\nlifetime: %d\nend: %s\n", res.Score, res.Lifetime, res.Cause)
			return nil
		},
	}

	cmd.Flags().String("checkpoint", "snakeai_checkpoint.gz", "Checkpoint file to replay")
	cmd.Flags().Int("fps", render.DefaultFPS, "Frames per second")
	cmd.Flags().Int64("seed", 0, "Fruit placement seed (0 uses the clock)")
	return cmd
}
