package searcher

import (
	"fmt"

	"duel/game"

	"golang.org/x/exp/rand"
)

// mockNode is a position in a hand-built game tree. Values are rewards for
// First; children are reached by their index.
type mockNode struct {
	value    float64
	over     bool
	children []*mockNode
	legal    []int
}

func leafNode(value float64) *mockNode {
	return &mockNode{value: value}
}

func branch(children ...*mockNode) *mockNode {
	n := &mockNode{children: children, legal: make([]int, len(children))}
	for i := range n.legal {
		n.legal[i] = i
	}
	return n
}

// leaves builds a node whose children are all leaves.
func leaves(values ...float64) *mockNode {
	children := make([]*mockNode, len(values))
	for i, v := range values {
		children[i] = leafNode(v)
	}
	return branch(children...)
}

// randomTree builds a tree of the given depth with up to width children per
// node and a few distinct leaf values, so that ties are common.
func randomTree(rng *rand.Rand, depth, width int) *mockNode {
	if depth == 0 {
		return leafNode(float64(rng.Intn(5) - 2))
	}
	children := make([]*mockNode, 1+rng.Intn(width))
	for i := range children {
		children[i] = randomTree(rng, depth-1, width)
	}
	return branch(children...)
}

// mockModel walks a mockNode tree. It records every action it is asked to
// peek and can be told to fail on one of them.
type mockModel struct {
	path   []*mockNode
	turn   game.Turn
	peeks  []int
	failOn int
}

func newMockModel(root *mockNode) *mockModel {
	return &mockModel{path: []*mockNode{root}, turn: game.First, failOn: -1}
}

func (m *mockModel) node() *mockNode { return m.path[len(m.path)-1] }

func (m *mockModel) Turn() game.Turn { return m.turn }

func (m *mockModel) Status() game.Status {
	if m.IsOver() {
		return game.Draw
	}
	return game.Running
}

func (m *mockModel) Scores() game.Scores {
	return game.Scores{First: m.node().value}
}

func (m *mockModel) IsOver() bool { return m.node().over }

func (m *mockModel) Reward(t game.Turn) float64 {
	if t == game.First {
		return m.node().value
	}
	return -m.node().value
}

func (m *mockModel) LegalActions() []int {
	if m.IsOver() {
		return nil
	}
	return m.node().legal
}

func (m *mockModel) Play(a int) error {
	if a < 0 || a >= len(m.node().children) || a == m.failOn {
		return &game.InvalidActionError{Action: a, Turn: m.turn}
	}
	m.path = append(m.path, m.node().children[a])
	m.turn = m.turn.Opponent()
	return nil
}

func (m *mockModel) Pass() error {
	return &game.InvalidActionError{Action: game.PassAction, Turn: m.turn}
}

func (m *mockModel) PeekThenEval(a int, c game.Continuation[int]) (game.Eval[int], error) {
	m.peeks = append(m.peeks, a)
	if err := m.Play(a); err != nil {
		return game.Eval[int]{}, err
	}
	defer func() {
		m.path = m.path[:len(m.path)-1]
		m.turn = m.turn.Opponent()
	}()
	return c.Continue(m)
}

func (m *mockModel) Changes() []game.Cell { return nil }
func (m *mockModel) Grid() [][]game.Mark  { return nil }
func (m *mockModel) Hash() uint64         { return uint64(len(m.path)) }
func (m *mockModel) String() string       { return fmt.Sprintf("mock at depth %d", len(m.path)-1) }

func (m *mockModel) Restart() {
	m.path = m.path[:1]
	m.turn = game.First
}

// sequence is a deterministic Rand that replays the given indices.
type sequence struct {
	picks []int
	calls int
}

func (s *sequence) Intn(n int) int {
	p := s.picks[s.calls%len(s.picks)] % n
	s.calls++
	return p
}

// nesting wraps a model and fails a peek nested deeper than limit.
type nesting[A comparable] struct {
	game.Model[A]
	limit   int
	depth   int
	deepest int
}

func (n *nesting[A]) PeekThenEval(a A, c game.Continuation[A]) (game.Eval[A], error) {
	n.depth++
	defer func() { n.depth-- }()
	n.deepest = max(n.deepest, n.depth)
	if n.depth > n.limit {
		return game.Eval[A]{}, fmt.Errorf("peek nested %d deep, limit %d", n.depth, n.limit)
	}
	return n.Model.PeekThenEval(a, relay[A]{next: c, via: n})
}

// relay hands the wrapping model on to the rest of the search.
type relay[A comparable] struct {
	next game.Continuation[A]
	via  game.Model[A]
}

func (r relay[A]) Continue(game.Model[A]) (game.Eval[A], error) {
	return r.next.Continue(r.via)
}
