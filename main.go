package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"duel/config"
	"duel/engine"
	"duel/experiments"
	"duel/gamemaster"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if cfg.Debug() {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Debug().Msgf("loaded config: %v", cfg.AllSettings())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cfg.Mode() {
	case config.ModeMatch:
		err = runMatch(ctx, cfg)
	case config.ModeTournament:
		err = runTournament(ctx, cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("duel failed")
		os.Exit(1)
	}
}

func runMatch(ctx context.Context, cfg *config.Config) error {
	agents, err := cfg.Agents()
	if err != nil {
		return err
	}
	opts := []gamemaster.Option{}
	if cfg.Seed() != 0 {
		opts = append(opts, gamemaster.WithSeed(cfg.Seed()))
	}
	runner, err := gamemaster.NewMatch(cfg.Game(), agents[0], agents[1], opts...)
	if err != nil {
		return err
	}

	for i := 0; i <= cfg.Restarts(); i++ {
		var res engine.Result
		if i == 0 {
			res, err = runner.Run(ctx)
		} else {
			res, err = runner.Restart(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Game %d: %v %v after %d moves\n%s\n", i+1, res.Game.Status, res.Game.Scores, res.Game.TotalMoves, render(res))
	}
	return nil
}

func runTournament(ctx context.Context, cfg *config.Config) error {
	agents, err := cfg.Agents()
	if err != nil {
		return err
	}
	report, err := experiments.Run(ctx, experiments.Tournament{
		Game:        cfg.Game(),
		Agents:      agents,
		Games:       cfg.Games(),
		Concurrency: cfg.Concurrency(),
		Seed:        cfg.Seed(),
	})
	if err != nil {
		return err
	}

	dir, err := experiments.Save(ctx, report, cfg.OutputDir(), cfg.Database())
	if err != nil {
		return err
	}
	fmt.Printf("Stored %d games in %s\n", len(report.Games), dir)
	return experiments.PrintLengths(os.Stdout, report.Games)
}

func render(res engine.Result) string {
	var sb strings.Builder
	for r, row := range res.Grid {
		for _, m := range row {
			sb.WriteString(m.String())
		}
		if r < len(res.Grid)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
