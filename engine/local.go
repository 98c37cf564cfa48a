package engine

import (
	"context"
	"fmt"

	"duel/agent"
	"duel/experiments/metrics"
	"duel/game"
	"duel/meta"
	"duel/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine drives one game between two agents in the same process.
type Engine[A comparable] struct {
	model    game.Model[A]
	first    agent.Agent[A]
	second   agent.Agent[A]
	maxMoves int
	logger   zerolog.Logger
}

type Option func(*options)

type options struct {
	maxMoves int
	logger   *zerolog.Logger
}

func WithMaxMoves(n int) Option {
	return func(o *options) {
		o.maxMoves = n
	}
}

// WithLogger replaces the global logger, e.g. to tag concurrent matches.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

func LocalEngine[A comparable](m game.Model[A], first, second agent.Agent[A], opts ...Option) *Engine[A] {
	if m == nil {
		panic("engine needs a game")
	}
	if first == nil || second == nil {
		panic("engine needs an agent for each turn")
	}

	o := options{maxMoves: meta.MaxMoves}
	for _, opt := range opts {
		opt(&o)
	}
	logger := log.Logger
	if o.logger != nil {
		logger = *o.logger
	}

	return &Engine[A]{
		model:    m,
		first:    first,
		second:   second,
		maxMoves: o.maxMoves,
		logger:   logger,
	}
}

func (e *Engine[A]) Model() game.Model[A] {
	return e.model
}

func (e *Engine[A]) agent(t game.Turn) agent.Agent[A] {
	if t == game.First {
		return e.first
	}
	return e.second
}

// Run plays from the current position until the game is over. The agent of
// the side to move picks an action and the engine plays it, or passes when the
// agent offers none. Any failure ends the match.
func (e *Engine[A]) Run(ctx context.Context) (Result, error) {
	collector := metrics.NewCollector()
	collector.Start(e.model.Turn())

	e.logger.Info().Msgf("%v is starting", e.model.Turn())
	e.logger.Debug().Msgf("opening position:\n%v", e.model)

	for moves := 0; !e.model.IsOver(); moves++ {
		if moves >= e.maxMoves {
			return Result{}, fmt.Errorf("%w: %d moves without a result", ErrMoveLimit, moves)
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		turn := e.model.Turn()
		a := e.agent(turn)
		action, ok, err := a.SelectAction(e.model)
		if err != nil {
			return Result{}, fmt.Errorf("%v failed to select an action: %w", turn, err)
		}

		played := game.PassAction
		if ok {
			played = fmt.Sprint(action)
			err = e.model.Play(action)
		} else {
			err = e.model.Pass()
		}
		if err != nil {
			return Result{}, fmt.Errorf("%v failed to play: %w", turn, err)
		}

		var search searcher.SearchMetric
		if r, isReporter := a.(agent.Reporter); isReporter {
			search = r.LastMetric()
		}
		collector.AddMove(turn, played, search)

		e.logger.Debug().Msgf("%v played %s, changes: %v", turn, played, e.model.Changes())
		e.logger.Debug().Msgf("position after move %d:\n%v", moves+1, e.model)
	}

	gameMetric := collector.Complete(e.model.Status(), e.model.Scores())
	e.logger.Info().Msgf("game over (%v): %v", e.model.Status(), e.model.Scores())

	return Result{
		Game:  gameMetric,
		Moves: collector.Moves(),
		Grid:  e.model.Grid(),
		Hash:  e.model.Hash(),
	}, nil
}

func (e *Engine[A]) Restart(ctx context.Context) (Result, error) {
	e.model.Restart()
	e.logger.Info().Msg("game restarted")
	return e.Run(ctx)
}
