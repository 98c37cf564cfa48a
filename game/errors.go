package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrPlayAfterGameOver = errors.New("play after game over")
)

// PassAction stands in for the "no action" move in error values.
const PassAction = "pass"

type InvalidActionError struct {
	Action any
	Turn   Turn
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action: %v for turn: %v", e.Action, e.Turn)
}

func (e *InvalidActionError) Is(target error) bool {
	return target == ErrInvalidAction
}

type PlayAfterGameOverError struct {
	Action any
}

func (e *PlayAfterGameOverError) Error() string {
	return fmt.Sprintf("attempted action after the game is over: %v", e.Action)
}

func (e *PlayAfterGameOverError) Is(target error) bool {
	return target == ErrPlayAfterGameOver
}
