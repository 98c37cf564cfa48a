// Package connect4 implements connect four on a 6x7 grid. Actions are column
// indices; a piece drops to the lowest empty row.
package connect4

import (
	"duel/game"

	"github.com/samber/lo"
)

const (
	Rows   = 6
	Cols   = 7
	Streak = 4
)

type Game struct {
	*game.Board
	legal []int
}

func New() *Game {
	g := &Game{Board: game.NewBoard(Rows, Cols)}
	g.updateLegalActions()
	return g
}

func (g *Game) Restart() {
	g.Reset()
	g.updateLegalActions()
}

func (g *Game) LegalActions() []int {
	return g.legal
}

func (g *Game) Play(col int) error {
	if g.IsOver() {
		return &game.PlayAfterGameOverError{Action: col}
	}
	if !lo.Contains(g.legal, col) {
		return &game.InvalidActionError{Action: col, Turn: g.Turn()}
	}

	cell := game.Cell{Row: Rows - 1 - g.height(col), Col: col}
	g.ClearChanges()
	g.Put(cell, g.Turn().Mark())
	g.Settle(cell, Streak)
	g.SwitchTurn()
	g.updateLegalActions()
	return nil
}

// Pass is never legal: a full board ends the game as a draw.
func (g *Game) Pass() error {
	if g.IsOver() {
		return &game.PlayAfterGameOverError{Action: game.PassAction}
	}
	return &game.InvalidActionError{Action: game.PassAction, Turn: g.Turn()}
}

func (g *Game) PeekThenEval(col int, c game.Continuation[int]) (game.Eval[int], error) {
	cp, legal := g.Checkpoint(), g.legal
	defer func() {
		g.Rewind(cp)
		g.legal = legal
	}()

	if err := g.Play(col); err != nil {
		return game.Eval[int]{}, err
	}
	return c.Continue(g)
}

// height is the number of pieces in a column.
func (g *Game) height(col int) int {
	n := 0
	for r := 0; r < Rows; r++ {
		if g.At(game.Cell{Row: r, Col: col}) != game.Empty {
			n++
		}
	}
	return n
}

func (g *Game) updateLegalActions() {
	legal := []int{}
	if !g.IsOver() {
		for c := 0; c < Cols; c++ {
			if g.At(game.Cell{Row: 0, Col: c}) == game.Empty {
				legal = append(legal, c)
			}
		}
	}
	g.legal = legal
}
