package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"connect6/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "connect6",
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", "", "Path to the YAML config (default $XDG_CONFIG_HOME/connect6/config.yaml)")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.AddCommand(SelfPlay())
	root.AddCommand(Serve())

	return root
}

// load reads the config named by --config and sets up the global logger.
func load(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(cfg.Level())
	if cmd.Flag("trace").Changed {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	return cfg, nil
}
