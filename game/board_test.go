package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTurn(t *testing.T) {
	t.Run("opponent is its own inverse", func(t *testing.T) {
		require.Equal(t, Second, First.Opponent(), "First's opponent should be Second")
		require.Equal(t, First, Second.Opponent(), "Second's opponent should be First")
		require.Equal(t, First, First.Opponent().Opponent(), "negating twice should give the same turn")
	})

	t.Run("turns map to signed marks", func(t *testing.T) {
		require.Equal(t, Mark(1), First.Mark())
		require.Equal(t, Mark(-1), Second.Mark())
	})
}

func TestScores(t *testing.T) {
	s := Scores{First: 3, Second: 1.5}
	require.Equal(t, 1.5, s.Reward(First), "reward should be the score differential")
	require.Equal(t, -s.Reward(First), s.Reward(Second), "reward should be zero-sum")

	s.Add(Second, 2)
	require.Equal(t, 3.5, s.Of(Second))
	s.Set(First, 0.5)
	require.Equal(t, Scores{First: 0.5, Second: 3.5}, s)
}

func TestBoardCheckpoint(t *testing.T) {
	t.Run("rewind restores cells and fields", func(t *testing.T) {
		b := NewBoard(3, 3)
		b.Put(Cell{0, 0}, First.Mark())
		require.Empty(t, b.journal, "writes outside a checkpoint should not be journaled")

		grid, changes := b.Grid(), b.Changes()
		cp := b.Checkpoint()
		b.ClearChanges()
		b.Put(Cell{1, 1}, Second.Mark())
		b.Set(Cell{0, 0}, Second.Mark())
		b.AddScore(Second, 1)
		b.SetStatus(SecondWon)
		b.SwitchTurn()
		b.Rewind(cp)

		require.Equal(t, grid, b.Grid(), "grid should be restored")
		require.Equal(t, changes, b.Changes(), "change-set should be restored")
		require.Equal(t, First, b.Turn())
		require.Equal(t, Running, b.Status())
		require.Equal(t, Scores{}, b.Scores())
		require.Empty(t, b.journal, "journal should be emptied by the outermost rewind")
	})

	t.Run("nested checkpoints rewind in reverse order", func(t *testing.T) {
		b := NewBoard(2, 2)
		outer := b.Checkpoint()
		b.Set(Cell{0, 0}, First.Mark())
		inner := b.Checkpoint()
		b.Set(Cell{0, 0}, Second.Mark())
		b.Set(Cell{1, 1}, Second.Mark())

		b.Rewind(inner)
		require.Equal(t, First.Mark(), b.At(Cell{0, 0}), "inner rewind should restore the outer write")
		require.Equal(t, Empty, b.At(Cell{1, 1}))

		b.Rewind(outer)
		require.Equal(t, Empty, b.At(Cell{0, 0}), "outer rewind should restore the empty board")
	})
}

func TestBoardSettle(t *testing.T) {
	t.Run("a completed line wins for the side to move", func(t *testing.T) {
		b := NewBoard(3, 3)
		for _, c := range []Cell{{0, 2}, {1, 1}, {2, 0}} {
			b.Put(c, First.Mark())
		}
		b.Settle(Cell{1, 1}, 3)
		require.Equal(t, FirstWon, b.Status())
		require.Equal(t, Scores{First: 1}, b.Scores())
	})

	t.Run("a full board without a line is a draw", func(t *testing.T) {
		b := NewBoard(1, 2)
		b.Put(Cell{0, 0}, First.Mark())
		b.Put(Cell{0, 1}, Second.Mark())
		b.Settle(Cell{0, 0}, 2)
		require.Equal(t, Draw, b.Status())
		require.Equal(t, Scores{First: 0.5, Second: 0.5}, b.Scores())
	})

	t.Run("an open board keeps running", func(t *testing.T) {
		b := NewBoard(3, 3)
		b.Put(Cell{0, 0}, First.Mark())
		b.Settle(Cell{0, 0}, 3)
		require.Equal(t, Running, b.Status())
	})
}

func TestBoardHash(t *testing.T) {
	a, b := NewBoard(3, 3), NewBoard(3, 3)
	require.Equal(t, a.Hash(), b.Hash(), "equal positions should hash equally")

	a.Set(Cell{1, 1}, First.Mark())
	require.NotEqual(t, a.Hash(), b.Hash(), "different grids should hash differently")

	b.Set(Cell{1, 1}, First.Mark())
	b.SwitchTurn()
	require.NotEqual(t, a.Hash(), b.Hash(), "the side to move is part of the position")
}

func TestErrors(t *testing.T) {
	var err error = &InvalidActionError{Action: Cell{1, 2}, Turn: Second}
	require.True(t, errors.Is(err, ErrInvalidAction))
	require.Equal(t, "invalid action: (1, 2) for turn: Second", err.Error())

	err = &PlayAfterGameOverError{Action: 3}
	require.True(t, errors.Is(err, ErrPlayAfterGameOver))
	require.False(t, errors.Is(err, ErrInvalidAction))
	require.Equal(t, "attempted action after the game is over: 3", err.Error())
}
