package game

// Model is the capability set a game must expose to be searchable. A model is
// mutated in place for the duration of a match; hypothetical moves go through
// PeekThenEval, which leaves the model exactly as it found it.
type Model[A comparable] interface {
	Turn() Turn
	Status() Status
	Scores() Scores
	// IsOver reports whether the status is anything but Running.
	IsOver() bool
	// Reward is the score differential for the given turn.
	Reward(t Turn) float64

	// LegalActions returns the current player's moves as of the last mutation.
	// The slice is owned by the model and must not be modified.
	LegalActions() []A
	// Play applies a legal action and recomputes the legal actions last.
	Play(a A) error
	// Pass plays the "no action" move for games that allow it.
	Pass() error
	// PeekThenEval applies a, evaluates c on the resulting position and
	// restores every piece of state the action touched.
	PeekThenEval(a A, c Continuation[A]) (Eval[A], error)

	Changes() []Cell
	Grid() [][]Mark
	Hash() uint64
	Restart()
	String() string
}

// Continuation is the rest of a search, evaluated one ply deeper.
type Continuation[A comparable] interface {
	Continue(m Model[A]) (Eval[A], error)
}

// Eval pairs a value with the action achieving it. Ok is false when there is
// no action, e.g. at a leaf.
type Eval[A comparable] struct {
	Value  float64
	Action A
	Ok     bool
}

func Leaf[A comparable](value float64) Eval[A] {
	return Eval[A]{Value: value}
}

func Pick[A comparable](value float64, action A) Eval[A] {
	return Eval[A]{Value: value, Action: action, Ok: true}
}
