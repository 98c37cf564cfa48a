package searcher

import "duel/game"

// naive is plain minimax: the first action achieving the best value wins.
type naive[A comparable] struct {
	*tree[A]
}

func (s *naive[A]) search(m game.Model[A], f frame[A]) (game.Eval[A], error) {
	if ev, ok := s.leaf(m, f.depth); ok {
		return ev, nil
	}
	evals, err := s.evaluate(m, f)
	if err != nil {
		return game.Eval[A]{}, err
	}
	return first(evals, f.turn == s.maximizing), nil
}
