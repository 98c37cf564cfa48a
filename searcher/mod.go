package searcher

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"duel/game"
	"duel/meta"

	"github.com/samber/lo"
)

// Kind names a search variant.
type Kind string

const (
	Naive      Kind = "naive"
	AlphaBeta  Kind = "alphabeta"
	Defensive  Kind = "defensive"
	Stochastic Kind = "stochastic"
)

var Kinds = []Kind{Naive, AlphaBeta, Defensive, Stochastic}

var (
	ErrInvalidDepth = errors.New("search depth must be greater than 0")
	ErrUnknownKind  = errors.New("unknown search kind")
)

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Kinds, k) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Searcher finds the value of a position for a fixed maximizing turn and the
// action achieving it. The model is borrowed for the duration of Search and
// left exactly as it was found.
type Searcher[A comparable] interface {
	Search(m game.Model[A]) (game.Eval[A], SearchMetric, error)
	Kind() Kind
	Depth() int
	Maximizing() game.Turn
}

type Option func(*options)

type options struct {
	rng          Rand
	defenceDepth int
	metrics      bool
}

// WithRand sets the source used to break ties in the stochastic variant.
func WithRand(rng Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithDefenceDepth sets how far the defensive variant looks at the opponent's
// replies when it is losing.
func WithDefenceDepth(depth int) Option {
	return func(o *options) {
		o.defenceDepth = depth
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}

// New builds a searcher of the given kind. Depths must be positive.
func New[A comparable](kind Kind, depth int, maximizing game.Turn, opts ...Option) (Searcher[A], error) {
	o := options{defenceDepth: meta.DefaultDefenceDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if depth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}

	t := &tree[A]{
		kind:       kind,
		depth:      depth,
		maximizing: maximizing,
		metrics:    NewNoMetricsCollector(),
	}
	if o.metrics {
		t.metrics = NewMetricsCollector()
	}

	switch kind {
	case Naive:
		t.variant = &naive[A]{tree: t}
	case AlphaBeta:
		t.variant = &alphaBeta[A]{tree: t}
	case Defensive:
		if o.defenceDepth <= 0 {
			return nil, fmt.Errorf("%w: defence depth got %d", ErrInvalidDepth, o.defenceDepth)
		}
		t.variant = &defensive[A]{tree: t, defenceDepth: o.defenceDepth, replies: &naive[A]{tree: t}}
	case Stochastic:
		if o.rng == nil {
			o.rng = NewRand()
		}
		t.variant = &stochastic[A]{tree: t, rng: o.rng}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t, nil
}

type variant[A comparable] interface {
	search(m game.Model[A], f frame[A]) (game.Eval[A], error)
}

// frame is the continuation handed to PeekThenEval: the remaining depth, the
// side to move and the alpha-beta window, evaluated by v one ply deeper.
type frame[A comparable] struct {
	v     variant[A]
	depth int
	turn  game.Turn
	alpha float64
	beta  float64
}

func (f frame[A]) Continue(m game.Model[A]) (game.Eval[A], error) {
	return f.v.search(m, f)
}

func (f frame[A]) child() frame[A] {
	f.depth--
	f.turn = f.turn.Opponent()
	return f
}

type tree[A comparable] struct {
	kind       Kind
	depth      int
	maximizing game.Turn
	metrics    MetricsCollector
	variant    variant[A]
}

func (t *tree[A]) Kind() Kind            { return t.kind }
func (t *tree[A]) Depth() int            { return t.depth }
func (t *tree[A]) Maximizing() game.Turn { return t.maximizing }

func (t *tree[A]) Search(m game.Model[A]) (game.Eval[A], SearchMetric, error) {
	t.metrics.Start(t.kind, t.depth)
	ev, err := t.variant.search(m, t.root())
	return ev, t.metrics.Complete(), err
}

func (t *tree[A]) root() frame[A] {
	return frame[A]{
		v:     t.variant,
		depth: t.depth,
		turn:  t.maximizing,
		alpha: math.Inf(-1),
		beta:  math.Inf(1),
	}
}

// leaf reports whether the search stops at m and, if so, its value.
func (t *tree[A]) leaf(m game.Model[A], depth int) (game.Eval[A], bool) {
	if m.IsOver() || len(m.LegalActions()) == 0 || depth <= 0 {
		t.metrics.AddLeaf()
		return game.Leaf[A](m.Reward(t.maximizing)), true
	}
	t.metrics.AddNode()
	return game.Eval[A]{}, false
}

// evaluate peeks every legal action with the child frame of f and returns the
// values in legal order.
func (t *tree[A]) evaluate(m game.Model[A], f frame[A]) ([]game.Eval[A], error) {
	legal := m.LegalActions()
	evals := make([]game.Eval[A], 0, len(legal))
	next := f.child()
	for _, a := range legal {
		ev, err := m.PeekThenEval(a, next)
		if err != nil {
			return nil, err
		}
		evals = append(evals, game.Pick(ev.Value, a))
	}
	return evals, nil
}

// first returns the first evaluation that is strictly better than all before
// it, for the maximizing side when maximize is set.
func first[A comparable](evals []game.Eval[A], maximize bool) game.Eval[A] {
	best := worst[A](maximize)
	for _, ev := range evals {
		if (maximize && ev.Value > best.Value) || (!maximize && ev.Value < best.Value) {
			best = ev
		}
	}
	return best
}

// worst is the starting point of a max or min scan.
func worst[A comparable](maximize bool) game.Eval[A] {
	if maximize {
		return game.Leaf[A](math.Inf(-1))
	}
	return game.Leaf[A](math.Inf(1))
}
