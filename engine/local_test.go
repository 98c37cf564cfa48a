package engine

import (
	"context"
	"errors"
	"testing"

	"duel/agent"
	"duel/game"
	"duel/game/connect4"
	"duel/game/othello"
	"duel/game/tictactoe"
	"duel/searcher"

	"github.com/stretchr/testify/require"
)

// drawnGrid is where two depth six searchers always end in tic-tac-toe.
var drawnGrid = [][]game.Mark{{1, 1, -1}, {-1, -1, 1}, {1, -1, 1}}

func build[A comparable](t *testing.T, config string, turn game.Turn, seed uint64) agent.Agent[A] {
	t.Helper()
	cfg, err := agent.ParseConfig(config)
	require.NoError(t, err)
	a, err := agent.Build[A](cfg, turn, searcher.NewSeededRand(seed))
	require.NoError(t, err, "building %s should succeed", config)
	return a
}

func newEngine[A comparable](t *testing.T, m game.Model[A], first, second string, opts ...Option) *Engine[A] {
	t.Helper()
	return LocalEngine(m, build[A](t, first, game.First, 1), build[A](t, second, game.Second, 2), opts...)
}

// scripted plays a fixed list of actions.
type scripted[A comparable] struct {
	actions []A
	err     error
}

func (s *scripted[A]) SelectAction(game.Model[A]) (A, bool, error) {
	var zero A
	if s.err != nil {
		return zero, false, s.err
	}
	if len(s.actions) == 0 {
		return zero, false, nil
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, true, nil
}

func TestRunTicTacToe(t *testing.T) {
	for _, kind := range []string{"naive:6", "alphabeta:6"} {
		t.Run(kind, func(t *testing.T) {
			e := newEngine[game.Cell](t, tictactoe.New(), kind, kind)

			res, err := e.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, drawnGrid, res.Grid)
			require.Equal(t, game.Draw, res.Game.Status)
			require.Equal(t, game.Scores{First: 0.5, Second: 0.5}, res.Game.Scores)
			require.Equal(t, 9, res.Game.TotalMoves)
			require.Equal(t, game.First, res.Game.Starting)

			require.Len(t, res.Moves, 9)
			require.Equal(t, "(0, 0)", res.Moves[0].Action)
			require.Equal(t, game.First, res.Moves[0].Turn)
			require.Equal(t, game.Second, res.Moves[1].Turn)
			require.Equal(t, 9, res.Moves[8].Step)
			require.Positive(t, res.Moves[0].Leaves, "search metrics should be recorded per move")
		})
	}

	t.Run("perfect stochastic play always draws", func(t *testing.T) {
		games := 12
		if testing.Short() {
			games = 2
		}
		for i := 0; i < games; i++ {
			e := LocalEngine[game.Cell](tictactoe.New(),
				build[game.Cell](t, "stochastic:9", game.First, uint64(10+i)),
				build[game.Cell](t, "stochastic:9", game.Second, uint64(20+i)))

			res, err := e.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, game.Draw, res.Game.Status, "game %d should be drawn", i)
		}
	})
}

func TestRunOtherGames(t *testing.T) {
	t.Run("random othello completes", func(t *testing.T) {
		e := newEngine[game.Cell](t, othello.New(), "random", "random")

		res, err := e.Run(context.Background())
		require.NoError(t, err)
		require.NotEqual(t, game.Running, res.Game.Status)
		require.LessOrEqual(t, res.Game.Scores.First+res.Game.Scores.Second, 64.0)
		require.Equal(t, e.Model().Hash(), res.Hash)
	})

	t.Run("searching othello agents complete", func(t *testing.T) {
		e := newEngine[game.Cell](t, othello.New(), "alphabeta:2", "defensive:2")

		res, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, e.Model().IsOver())
		require.Equal(t, len(res.Moves), res.Game.TotalMoves)
	})

	t.Run("a deep defence completes at othello", func(t *testing.T) {
		e := newEngine[game.Cell](t, othello.New(), "random", "defensive:2:2")

		res, err := e.Run(context.Background())
		require.NoError(t, err)
		require.NotEqual(t, game.Running, res.Game.Status)
		require.Equal(t, 2, res.Moves[1].Depth, "the defensive agent should search two plies")
	})

	t.Run("alpha-beta holds off random at connect4", func(t *testing.T) {
		e := newEngine[int](t, connect4.New(), "alphabeta:4", "random")

		res, err := e.Run(context.Background())
		require.NoError(t, err)
		require.NotEqual(t, game.SecondWon, res.Game.Status, "a depth four search sees every immediate threat")
		require.NotEqual(t, game.Running, res.Game.Status)
	})
}

func TestRunFailures(t *testing.T) {
	t.Run("an illegal action ends the match", func(t *testing.T) {
		center := game.Cell{Row: 1, Col: 1}
		e := LocalEngine[game.Cell](tictactoe.New(),
			&scripted[game.Cell]{actions: []game.Cell{center}},
			&scripted[game.Cell]{actions: []game.Cell{center}})

		_, err := e.Run(context.Background())
		require.ErrorIs(t, err, game.ErrInvalidAction)
		require.ErrorContains(t, err, "Second failed to play")
	})

	t.Run("passing in tic-tac-toe ends the match", func(t *testing.T) {
		e := LocalEngine[game.Cell](tictactoe.New(), &scripted[game.Cell]{}, &scripted[game.Cell]{})

		_, err := e.Run(context.Background())
		require.ErrorIs(t, err, game.ErrInvalidAction)
	})

	t.Run("agent errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		e := LocalEngine[int](connect4.New(), &scripted[int]{err: boom}, &scripted[int]{})

		_, err := e.Run(context.Background())
		require.ErrorIs(t, err, boom)
	})

	t.Run("move limit", func(t *testing.T) {
		e := newEngine[int](t, connect4.New(), "random", "random", WithMaxMoves(3))

		_, err := e.Run(context.Background())
		require.ErrorIs(t, err, ErrMoveLimit)
		require.Len(t, e.Model().Changes(), 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := newEngine[int](t, connect4.New(), "random", "random")

		_, err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, connect4.New().Grid(), e.Model().Grid(), "no move should be played")
	})

	t.Run("missing agents panic", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine[int](connect4.New(), nil, &scripted[int]{}) })
	})
}

func TestRestart(t *testing.T) {
	e := newEngine[game.Cell](t, tictactoe.New(), "alphabeta:6", "naive:6")

	first, err := e.Run(context.Background())
	require.NoError(t, err)
	again, err := e.Restart(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.Grid, again.Grid, "deterministic agents should replay the same game")
	require.Equal(t, first.Hash, again.Hash)
	require.Equal(t, len(first.Moves), len(again.Moves))
}
