// Package othello implements othello on an 8x8 board. First plays black.
//
// A side without a legal move must pass; two consecutive passes end the game
// and the side with more discs wins.
package othello

import (
	"duel/game"

	"github.com/samber/lo"
)

const (
	Rows = 8
	Cols = 8
)

var (
	initBlack = []game.Cell{{Row: Rows/2 - 1, Col: Cols / 2}, {Row: Rows / 2, Col: Cols/2 - 1}}
	initWhite = []game.Cell{{Row: Rows/2 - 1, Col: Cols/2 - 1}, {Row: Rows / 2, Col: Cols / 2}}
)

// flips counts, per direction of game.Directions, the opponent discs a move
// on a cell would turn over.
type flips [len(game.Directions)]uint8

func (f flips) total() int {
	n := 0
	for _, c := range f {
		n += int(c)
	}
	return n
}

type Game struct {
	*game.Board
	legal []game.Cell
	// flips for the side to move, indexed by row*Cols+col.
	flips []flips
	// passed is set when the previous move was a pass.
	passed bool
}

func New() *Game {
	g := &Game{Board: game.NewBoard(Rows, Cols)}
	g.setup()
	return g
}

func (g *Game) Restart() {
	g.setup()
}

func (g *Game) setup() {
	g.Reset()
	for _, c := range initBlack {
		g.Put(c, game.First.Mark())
	}
	for _, c := range initWhite {
		g.Put(c, game.Second.Mark())
	}
	g.SetScores(game.Scores{First: float64(len(initBlack)), Second: float64(len(initWhite))})
	g.passed = false
	g.update()
}

func (g *Game) LegalActions() []game.Cell {
	return g.legal
}

// Flips returns the number of discs a move on c would turn over.
func (g *Game) Flips(c game.Cell) int {
	return g.flips[c.Row*Cols+c.Col].total()
}

func (g *Game) Play(a game.Cell) error {
	if g.IsOver() {
		return &game.PlayAfterGameOverError{Action: a}
	}
	if !lo.Contains(g.legal, a) {
		return &game.InvalidActionError{Action: a, Turn: g.Turn()}
	}

	turn := g.Turn()
	mark := turn.Mark()
	counts := g.flips[a.Row*Cols+a.Col]
	g.ClearChanges()
	g.Put(a, mark)
	for d, n := range counts {
		c := a
		for i := 0; i < int(n); i++ {
			c = c.Add(game.Directions[d])
			g.Put(c, mark)
		}
	}

	flipped := float64(counts.total())
	g.AddScore(turn, 1+flipped)
	g.AddScore(turn.Opponent(), -flipped)
	g.passed = false
	g.SwitchTurn()
	g.update()
	return nil
}

// Pass is legal only when the side to move has no legal action.
func (g *Game) Pass() error {
	if g.IsOver() {
		return &game.PlayAfterGameOverError{Action: game.PassAction}
	}
	if len(g.legal) > 0 {
		return &game.InvalidActionError{Action: game.PassAction, Turn: g.Turn()}
	}

	g.ClearChanges()
	if g.passed {
		g.SetStatus(g.decide())
	} else {
		g.passed = true
	}
	g.SwitchTurn()
	g.update()
	return nil
}

func (g *Game) PeekThenEval(a game.Cell, c game.Continuation[game.Cell]) (game.Eval[game.Cell], error) {
	cp := g.Checkpoint()
	legal, fl, passed := g.legal, g.flips, g.passed
	defer func() {
		g.Rewind(cp)
		g.legal, g.flips, g.passed = legal, fl, passed
	}()

	if err := g.Play(a); err != nil {
		return game.Eval[game.Cell]{}, err
	}
	return c.Continue(g)
}

func (g *Game) decide() game.Status {
	s := g.Scores()
	switch {
	case s.First > s.Second:
		return game.FirstWon
	case s.First < s.Second:
		return game.SecondWon
	}
	return game.Draw
}

// update recomputes the flip counts and legal actions for the side to move.
// Both are fresh allocations so that a checkpoint can keep the old ones.
func (g *Game) update() {
	g.flips = make([]flips, Rows*Cols)
	legal := []game.Cell{}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			cell := game.Cell{Row: r, Col: c}
			if g.At(cell) != game.Empty {
				continue
			}
			f := &g.flips[r*Cols+c]
			for d, dir := range game.Directions {
				f[d] = g.count(cell, dir)
			}
			if f.total() > 0 && !g.IsOver() {
				legal = append(legal, cell)
			}
		}
	}
	g.legal = legal
}

// count walks from the cell following c in direction dir and returns how many
// opponent discs are bracketed by a disc of the side to move.
func (g *Game) count(c, dir game.Cell) uint8 {
	own := g.Turn().Mark()
	var n uint8
	for next := c.Add(dir); g.Contains(next); next = next.Add(dir) {
		switch g.At(next) {
		case own:
			return n
		case game.Empty:
			return 0
		default:
			n++
		}
	}
	return 0
}
