package tictactoe

import (
	"testing"

	"duel/game"
	"duel/game/gametest"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func cells(indices ...int) []game.Cell {
	out := make([]game.Cell, len(indices))
	for i, idx := range indices {
		out[i] = game.Cell{Row: idx / Cols, Col: idx % Cols}
	}
	return out
}

func play(t *testing.T, g *Game, actions []game.Cell) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, g.Play(a), "playing %v should succeed", a)
	}
}

func TestNew(t *testing.T) {
	g := New()
	require.Equal(t, game.First, g.Turn())
	require.Equal(t, game.Running, g.Status())
	require.Equal(t, cells(0, 1, 2, 3, 4, 5, 6, 7, 8), g.LegalActions(), "every cell should be legal in row-major order")
	require.Empty(t, g.Changes())
}

func TestPlay(t *testing.T) {
	t.Run("placing a mark", func(t *testing.T) {
		g := New()
		play(t, g, cells(4))
		require.Equal(t, game.First.Mark(), g.At(game.Cell{Row: 1, Col: 1}))
		require.Equal(t, cells(4), g.Changes(), "change-set should hold the placed cell")
		require.Equal(t, game.Second, g.Turn())
		require.NotContains(t, g.LegalActions(), game.Cell{Row: 1, Col: 1})
	})

	t.Run("completing a row wins", func(t *testing.T) {
		g := New()
		play(t, g, cells(0, 3, 1, 4, 2))
		require.Equal(t, game.FirstWon, g.Status())
		require.Equal(t, game.Scores{First: 1}, g.Scores())
		require.Empty(t, g.LegalActions(), "a finished game has no legal actions")
	})

	t.Run("second player wins on a diagonal", func(t *testing.T) {
		g := New()
		play(t, g, cells(1, 2, 3, 4, 5, 6))
		require.Equal(t, game.SecondWon, g.Status())
		require.Equal(t, 1.0, g.Reward(game.Second))
	})

	t.Run("a full board is a draw", func(t *testing.T) {
		g := New()
		play(t, g, cells(0, 4, 1, 2, 6, 3, 5, 7, 8))
		require.Equal(t, game.Draw, g.Status())
		require.Equal(t, game.Scores{First: 0.5, Second: 0.5}, g.Scores())
	})

	t.Run("occupied cell is rejected", func(t *testing.T) {
		g := New()
		play(t, g, cells(0))
		before := gametest.Take[game.Cell](g)

		err := g.Play(game.Cell{Row: 0, Col: 0})
		require.ErrorIs(t, err, game.ErrInvalidAction)
		require.Equal(t, before, gametest.Take[game.Cell](g), "a rejected action should not change the game")
	})

	t.Run("play after game over is rejected", func(t *testing.T) {
		g := New()
		play(t, g, cells(0, 3, 1, 4, 2))
		require.ErrorIs(t, g.Play(game.Cell{Row: 2, Col: 2}), game.ErrPlayAfterGameOver)
		require.ErrorIs(t, g.Pass(), game.ErrPlayAfterGameOver)
	})

	t.Run("passing is never legal", func(t *testing.T) {
		require.ErrorIs(t, New().Pass(), game.ErrInvalidAction)
	})
}

func TestRestart(t *testing.T) {
	g := New()
	play(t, g, cells(0, 3, 1, 4, 2))
	g.Restart()
	require.Equal(t, gametest.Take[game.Cell](New()), gametest.Take[game.Cell](g), "restart should give the opening position")
}

func TestPeekThenEval(t *testing.T) {
	t.Run("restores every field from the opening", func(t *testing.T) {
		gametest.RequireRestored[game.Cell](t, New(), 3, game.First)
	})

	t.Run("restores every field during random games", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			gametest.Playout[game.Cell](t, New(), rng, func(m game.Model[game.Cell]) {
				gametest.RequireZeroSum(t, m)
				gametest.RequireRestored(t, m, 2, m.Turn())
			})
		}
	})

	t.Run("keeps the legal slice of the caller", func(t *testing.T) {
		g := New()
		legal := g.LegalActions()
		_, err := g.PeekThenEval(legal[0], gametest.Probe[game.Cell]{T: t})
		require.NoError(t, err)
		require.Equal(t, cells(0, 1, 2, 3, 4, 5, 6, 7, 8), legal, "the slice handed out should not be modified")
	})

	t.Run("illegal action fails without mutation", func(t *testing.T) {
		g := New()
		play(t, g, cells(4))
		before := gametest.Take[game.Cell](g)
		_, err := g.PeekThenEval(game.Cell{Row: 1, Col: 1}, gametest.Probe[game.Cell]{T: t})
		require.ErrorIs(t, err, game.ErrInvalidAction)
		require.Equal(t, before, gametest.Take[game.Cell](g))
	})
}
