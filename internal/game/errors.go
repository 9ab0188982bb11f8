package game

import "errors"

var (
	// ErrIllegalMove is returned when a move is not in the current legal move set.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned for moves sent after a resignation.
	ErrGameOver = errors.New("game is over")
	// ErrUnknownGame is returned when no game has the requested id.
	ErrUnknownGame = errors.New("unknown game")
	// ErrGameExists is returned when creating a game under an id already in use.
	ErrGameExists = errors.New("game already exists")
)
