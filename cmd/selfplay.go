package cmd

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"connect6/experiments"
)

const SPIN = 14

// connect6 selfplay
func SelfPlay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play a batch of self-play games",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`selfplay runs a batch of Connect6 games between the
			configured black and white policies on a pool of workers.

			Every game gets its own policy instance seeded with
			seed+game, so a batch is reproducible. When an output
			directory is configured, the agent configs, games, moves
			and board paths are stored there as CSV files under a
			timestamped folder.

			Flags override the values read from the config file.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			if cmd.Flag("games").Changed {
				cfg.Games, _ = cmd.Flags().GetInt("games")
			}
			if cmd.Flag("workers").Changed {
				cfg.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if cmd.Flag("black").Changed {
				cfg.Black, _ = cmd.Flags().GetString("black")
			}
			if cmd.Flag("white").Changed {
				cfg.White, _ = cmd.Flags().GetString("white")
			}
			if cmd.Flag("output").Changed {
				cfg.Output, _ = cmd.Flags().GetString("output")
			}

			s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)
			s.Suffix = fmt.Sprintf(" playing %d games", cfg.Games)
			s.Start()
			summary, err := experiments.RunSelfPlay(cmd.Context(), cfg)
			s.Stop()

			fmt.Printf("black %d, white %d, draws %d, failed %d\n", summary.BlackWins, summary.WhiteWins, summary.Draws, summary.Failed)
			return err
		},
	}

	cmd.Flags().IntP("games", "n", 0, "Number of games to play")
	cmd.Flags().IntP("workers", "w", 0, "Number of games played concurrently")
	cmd.Flags().String("black", "", "Black policy: alphazero, uct or random")
	cmd.Flags().String("white", "", "White policy: alphazero, uct or random")
	cmd.Flags().StringP("output", "o", "", "Directory for CSV records, empty to skip")

	return cmd
}
