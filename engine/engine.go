package engine

import (
	"context"
	"errors"

	"duel/experiments/metrics"
	"duel/game"
)

var ErrMoveLimit = errors.New("move limit reached")

// Result is the outcome of one match.
type Result struct {
	Game  metrics.GameMetric
	Moves []metrics.MoveMetric
	Grid  [][]game.Mark
	Hash  uint64
}

// Runner plays a match till the game is over. It hides the action type of the
// game being played.
type Runner interface {
	Run(ctx context.Context) (Result, error)
	// Restart resets the game to its opening position and runs it again.
	Restart(ctx context.Context) (Result, error)
}
