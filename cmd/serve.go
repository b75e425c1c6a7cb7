package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"connect6/communication/server"
	"connect6/meta"
	"connect6/searcher"
)

// connect6 serve
func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a random evaluator over HTTP",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve exposes a seeded random evaluator on POST /evaluate,
			speaking the same JSON protocol a remote evaluator is
			expected to speak. Point a self-play config with
			evaluator.kind set to remote at it for end to end runs.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			addr, _ := cmd.Flags().GetString("addr")
			return server.NewServerEvaluator(searcher.NewRandomEvaluator(cfg.Seed)).Start(addr)
		},
	}

	cmd.Flags().String("addr", meta.SERVER_ADDR, "Address to listen on")

	return cmd
}
