package agent

import (
	"duel/game"
	"duel/searcher"
)

// Agent picks the next action for the side to move. The model is borrowed
// until SelectAction returns. ok is false when the agent has no action to
// offer, in which case the caller passes.
type Agent[A comparable] interface {
	SelectAction(m game.Model[A]) (a A, ok bool, err error)
}

// Reporter is implemented by agents that collect search metrics.
type Reporter interface {
	LastMetric() searcher.SearchMetric
}

// SearchAgent delegates to a searcher and falls back to a uniformly random
// legal action when the search yields none.
type SearchAgent[A comparable] struct {
	searcher searcher.Searcher[A]
	rng      searcher.Rand
	last     searcher.SearchMetric
}

func NewSearchAgent[A comparable](s searcher.Searcher[A], rng searcher.Rand) *SearchAgent[A] {
	if s == nil {
		panic("search agent needs a searcher")
	}
	if rng == nil {
		rng = searcher.NewRand()
	}
	return &SearchAgent[A]{searcher: s, rng: rng}
}

func (a *SearchAgent[A]) SelectAction(m game.Model[A]) (A, bool, error) {
	ev, metric, err := a.searcher.Search(m)
	a.last = metric
	if err != nil {
		var zero A
		return zero, false, err
	}
	if ev.Ok {
		return ev.Action, true, nil
	}

	legal := m.LegalActions()
	if len(legal) == 0 {
		var zero A
		return zero, false, nil
	}
	return searcher.Choose(a.rng, legal), true, nil
}

func (a *SearchAgent[A]) LastMetric() searcher.SearchMetric {
	return a.last
}

func (a *SearchAgent[A]) Searcher() searcher.Searcher[A] {
	return a.searcher
}

// Random plays a uniformly random legal action.
type Random[A comparable] struct {
	rng searcher.Rand
}

func NewRandom[A comparable](rng searcher.Rand) *Random[A] {
	if rng == nil {
		rng = searcher.NewRand()
	}
	return &Random[A]{rng: rng}
}

func (r *Random[A]) SelectAction(m game.Model[A]) (A, bool, error) {
	legal := m.LegalActions()
	if m.IsOver() || len(legal) == 0 {
		var zero A
		return zero, false, nil
	}
	return searcher.Choose(r.rng, legal), true, nil
}
