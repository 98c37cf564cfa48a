package searcher

import (
	"duel/game"

	"github.com/samber/lo"
)

// stochastic is minimax that picks uniformly among all actions tied for the
// best value.
type stochastic[A comparable] struct {
	*tree[A]
	rng Rand
}

func (s *stochastic[A]) search(m game.Model[A], f frame[A]) (game.Eval[A], error) {
	if ev, ok := s.leaf(m, f.depth); ok {
		return ev, nil
	}
	evals, err := s.evaluate(m, f)
	if err != nil {
		return game.Eval[A]{}, err
	}

	best := first(evals, f.turn == s.maximizing)
	ties := lo.Filter(evals, func(ev game.Eval[A], _ int) bool {
		return ev.Value == best.Value
	})
	return Choose(s.rng, ties), nil
}
