package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vidar/internal/engine"
	"vidar/internal/feed"
	"vidar/internal/session"
)

func main() {
	input := flag.String("input", "", "order feed file, defaults to stdin")
	noBook := flag.Bool("no-book", false, "suppress the book dump after the feed drains")
	level := flag.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to open order feed")
		}
		defer f.Close()
		in = f
	}

	sess := session.New(
		engine.New(),
		feed.NewReader(in),
		feed.NewWriter(os.Stdout),
		!*noBook,
	)
	if err := sess.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("session failed")
	}
}
