package gamemaster

import (
	"fmt"

	"duel/agent"
	"duel/engine"
	"duel/game"
	"duel/searcher"

	"github.com/rs/zerolog"
)

type Option func(*options)

type options struct {
	seeded     bool
	seed       uint64
	engineOpts []engine.Option
}

// WithSeed makes both agents reproducible. The second agent draws from
// seed+1.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seeded = true
		o.seed = seed
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, engine.WithLogger(l))
	}
}

func WithMaxMoves(n int) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, engine.WithMaxMoves(n))
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) rand(t game.Turn) searcher.Rand {
	if !o.seeded {
		return searcher.NewRand()
	}
	if t == game.First {
		return searcher.NewSeededRand(o.seed)
	}
	return searcher.NewSeededRand(o.seed + 1)
}

func newMatch[A comparable](m game.Model[A], first, second agent.Config, o options) (engine.Runner, error) {
	a1, err := agent.Build[A](first, game.First, o.rand(game.First))
	if err != nil {
		return nil, fmt.Errorf("failed to set up first agent: %w", err)
	}
	a2, err := agent.Build[A](second, game.Second, o.rand(game.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to set up second agent: %w", err)
	}
	return engine.LocalEngine(m, a1, a2, o.engineOpts...), nil
}
