package searcher

import (
	"duel/game"

	"github.com/samber/lo"
)

// defensive is minimax, except that a maximizing side facing a negative value
// looks for the opponent's most damaging reply over every action and returns
// that reply as the cell to block. Replies are searched by plain minimax, so
// an override never starts another one.
type defensive[A comparable] struct {
	*tree[A]
	defenceDepth int
	replies      *naive[A]
}

func (s *defensive[A]) search(m game.Model[A], f frame[A]) (game.Eval[A], error) {
	if ev, ok := s.leaf(m, f.depth); ok {
		return ev, nil
	}
	evals, err := s.evaluate(m, f)
	if err != nil {
		return game.Eval[A]{}, err
	}
	if f.turn != s.maximizing {
		return first(evals, false), nil
	}

	best := first(evals, true)
	if best.Value >= 0 {
		return best, nil
	}

	reply := frame[A]{v: s.replies, depth: s.defenceDepth, turn: f.turn.Opponent()}
	threat := worst[A](false)
	for _, a := range m.LegalActions() {
		ev, err := m.PeekThenEval(a, reply)
		if err != nil {
			return game.Eval[A]{}, err
		}
		if ev.Value < threat.Value {
			threat = ev
		}
	}

	// In othello a reply need not be legal for the side to move, and a reply
	// to a game ending move does not exist. The best action stands in then.
	if !threat.Ok || !lo.Contains(m.LegalActions(), threat.Action) {
		return game.Pick(threat.Value, best.Action), nil
	}
	return threat, nil
}
