package searcher

import (
	"math"

	"duel/game"
)

// alphaBeta is minimax with a running (alpha, beta) window. Remaining siblings
// are skipped once the best value falls outside the window, which never
// changes the value returned.
type alphaBeta[A comparable] struct {
	*tree[A]
}

func (s *alphaBeta[A]) search(m game.Model[A], f frame[A]) (game.Eval[A], error) {
	if ev, ok := s.leaf(m, f.depth); ok {
		return ev, nil
	}

	maximize := f.turn == s.maximizing
	alpha, beta := f.alpha, f.beta
	best := worst[A](maximize)
	for _, a := range m.LegalActions() {
		next := f.child()
		next.alpha, next.beta = alpha, beta
		ev, err := m.PeekThenEval(a, next)
		if err != nil {
			return game.Eval[A]{}, err
		}

		if maximize {
			if ev.Value > best.Value {
				best = game.Pick(ev.Value, a)
			}
			if best.Value > beta {
				s.metrics.AddCutoff()
				break
			}
			alpha = math.Max(alpha, best.Value)
		} else {
			if ev.Value < best.Value {
				best = game.Pick(ev.Value, a)
			}
			if best.Value < alpha {
				s.metrics.AddCutoff()
				break
			}
			beta = math.Min(beta, best.Value)
		}
	}
	return best, nil
}
