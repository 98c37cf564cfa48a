package gamemaster

import (
	"errors"
	"fmt"
	"strings"

	"duel/agent"
	"duel/engine"
	"duel/game"
	"duel/game/connect4"
	"duel/game/othello"
	"duel/game/tictactoe"
)

const (
	TicTacToe = "tictactoe"
	Connect4  = "connect4"
	Othello   = "othello"
)

// Games lists every game a match can be set up for.
var Games = []string{TicTacToe, Connect4, Othello}

var ErrUnknownGame = errors.New("unknown game")

func ParseGame(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case TicTacToe, Connect4, Othello:
		return n, nil
	}
	return "", fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownGame, name, strings.Join(Games, ", "))
}

// NewMatch sets up the named game between two agents, first moving first.
func NewMatch(name string, first, second agent.Config, opts ...Option) (engine.Runner, error) {
	n, err := ParseGame(name)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	switch n {
	case TicTacToe:
		return newMatch[game.Cell](tictactoe.New(), first, second, o)
	case Connect4:
		return newMatch[int](connect4.New(), first, second, o)
	default:
		return newMatch[game.Cell](othello.New(), first, second, o)
	}
}
