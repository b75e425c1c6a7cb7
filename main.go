package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"connect6/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Root().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("connect6 failed")
		stop()
		os.Exit(1)
	}
}
