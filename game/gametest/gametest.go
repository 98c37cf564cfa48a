// Package gametest holds conformance checks shared by the game tests.
package gametest

import (
	"slices"
	"testing"

	"duel/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// Snapshot is a deep copy of everything a model exposes.
type Snapshot[A comparable] struct {
	Grid    [][]game.Mark
	Changes []game.Cell
	Turn    game.Turn
	Status  game.Status
	Scores  game.Scores
	Legal   []A
	Hash    uint64
}

func Take[A comparable](m game.Model[A]) Snapshot[A] {
	return Snapshot[A]{
		Grid:    m.Grid(),
		Changes: slices.Clone(m.Changes()),
		Turn:    m.Turn(),
		Status:  m.Status(),
		Scores:  m.Scores(),
		Legal:   slices.Clone(m.LegalActions()),
		Hash:    m.Hash(),
	}
}

// Probe is a continuation that peeks every legal action down to Depth plies
// and fails the test if any peek leaves the model changed.
type Probe[A comparable] struct {
	T     testing.TB
	Depth int
	Turn  game.Turn
}

func (p Probe[A]) Continue(m game.Model[A]) (game.Eval[A], error) {
	if p.Depth > 0 {
		RequireRestored(p.T, m, p.Depth-1, p.Turn)
	}
	return game.Leaf[A](m.Reward(p.Turn)), nil
}

// RequireRestored peeks every legal action of m with a Probe of the given
// depth and checks that m is unchanged after each one.
func RequireRestored[A comparable](t testing.TB, m game.Model[A], depth int, turn game.Turn) {
	t.Helper()
	before := Take(m)
	for _, a := range before.Legal {
		ev, err := m.PeekThenEval(a, Probe[A]{T: t, Depth: depth, Turn: turn})
		require.NoError(t, err, "peeking a legal action should succeed")
		require.False(t, ev.Ok, "probe should not return an action")
		require.Equal(t, before, Take(m), "peeking %v should restore the model", a)
	}
}

// RequireZeroSum checks the reward of both sides cancels out.
func RequireZeroSum[A comparable](t testing.TB, m game.Model[A]) {
	t.Helper()
	require.Equal(t, m.Reward(game.First), -m.Reward(game.Second),
		"rewards should be zero-sum at scores %v", m.Scores())
}

// Playout plays uniformly random legal actions until the game is over,
// passing when no action is available. visit is called on every position
// before the move is made, including the final one.
func Playout[A comparable](t testing.TB, m game.Model[A], rng *rand.Rand, visit func(game.Model[A])) {
	t.Helper()
	for !m.IsOver() {
		visit(m)
		legal := m.LegalActions()
		if len(legal) == 0 {
			require.NoError(t, m.Pass(), "passing without legal actions should succeed")
			continue
		}
		require.NoError(t, m.Play(legal[rng.Intn(len(legal))]), "playing a legal action should succeed")
	}
	visit(m)
}
