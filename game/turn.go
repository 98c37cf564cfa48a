package game

import "fmt"

// Turn is the side to move. The values double as cell marks, so negating a
// turn gives the opponent.
type Turn int8

const (
	First  Turn = 1
	Second Turn = -1
)

func (t Turn) Opponent() Turn {
	return -t
}

func (t Turn) Mark() Mark {
	return Mark(t)
}

func (t Turn) String() string {
	switch t {
	case First:
		return "First"
	case Second:
		return "Second"
	}
	return fmt.Sprintf("Turn(%d)", int8(t))
}

type Status uint8

const (
	Running Status = iota
	FirstWon
	SecondWon
	Draw
)

// WonBy returns the status of a game won by t.
func WonBy(t Turn) Status {
	if t == First {
		return FirstWon
	}
	return SecondWon
}

func (s Status) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case FirstWon:
		return "FIRST_WON"
	case SecondWon:
		return "SECOND_WON"
	case Draw:
		return "DRAW"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Scores holds the running tally of each side.
type Scores struct {
	First  float64
	Second float64
}

func (s Scores) Of(t Turn) float64 {
	if t == First {
		return s.First
	}
	return s.Second
}

func (s *Scores) Set(t Turn, v float64) {
	if t == First {
		s.First = v
	} else {
		s.Second = v
	}
}

func (s *Scores) Add(t Turn, delta float64) {
	s.Set(t, s.Of(t)+delta)
}

// Reward is the differential of t over its opponent.
func (s Scores) Reward(t Turn) float64 {
	return s.Of(t) - s.Of(t.Opponent())
}

func (s Scores) String() string {
	return fmt.Sprintf("{First: %v, Second: %v}", s.First, s.Second)
}
