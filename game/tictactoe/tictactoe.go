// Package tictactoe implements 3x3 noughts and crosses. First plays x.
package tictactoe

import (
	"duel/game"

	"github.com/samber/lo"
)

const (
	Rows   = 3
	Cols   = 3
	Streak = 3
)

type Game struct {
	*game.Board
	legal []game.Cell
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

func (g *Game) LegalActions() []game.Cell {
	return g.legal
}

func (g *Game) Play(a game.Cell) error {
	if g.IsOver() {
		return &game.PlayAfterGameOverError{Action: a}
	}
	if !lo.Contains(g.legal, a) {
		return &game.InvalidActionError{Action: a, Turn: g.Turn()}
	}

	g.ClearChanges()
	g.Put(a, g.Turn().Mark())
	g.Settle(a, Streak)
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

func (g *Game) PeekThenEval(a game.Cell, c game.Continuation[game.Cell]) (game.Eval[game.Cell], error) {
	cp, legal := g.Checkpoint(), g.legal
	defer func() {
		g.Rewind(cp)
		g.legal = legal
	}()

	if err := g.Play(a); err != nil {
		return game.Eval[game.Cell]{}, err
	}
	return c.Continue(g)
}

func (g *Game) updateLegalActions() {
	legal := []game.Cell{}
	if !g.IsOver() {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				if cell := (game.Cell{Row: r, Col: c}); g.At(cell) == game.Empty {
					legal = append(legal, cell)
				}
			}
		}
	}
	g.legal = legal
}
