package game

import "errors"

var (
	// ErrOutOfBounds is returned for a move outside the board.
	ErrOutOfBounds = errors.New("hex out of bounds")
	// ErrCellOccupied is returned for a move onto a stone.
	ErrCellOccupied = errors.New("hex already occupied")
	// ErrGameOver is returned for any move after the game has ended.
	ErrGameOver = errors.New("game is over")
	// ErrBadRadius is returned by NewBoard for radius < 1.
	ErrBadRadius = errors.New("board radius must be at least 1")
	// ErrBadNotation is returned for text that is not a rank letter followed by a file number.
	ErrBadNotation = errors.New("bad cell notation")
)
