package game

import "fmt"

// Player is the owner of a stone. NoPlayer marks an empty cell.
type Player uint8

const (
	NoPlayer Player = iota
	Black
	White
)

// Flip returns the other player.
func (p Player) Flip() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

// WinCondition is the structure that decided a won game.
type WinCondition uint8

const (
	Ring WinCondition = iota + 1
	Bridge
	Fork
)

func (w WinCondition) String() string {
	switch w {
	case Ring:
		return "ring"
	case Bridge:
		return "bridge"
	case Fork:
		return "fork"
	}
	return "none"
}

// StateKind is the phase of a game.
type StateKind uint8

const (
	Ongoing StateKind = iota
	Won
	Drawn
)

// GameState 描述对局阶段：进行中、某方获胜（附胜因）、或平局。
// Once a game leaves Ongoing it never changes again.
type GameState struct {
	Kind   StateKind
	Winner Player       // only for Won
	Reason WinCondition // only for Won
}

// Win builds the state of a game won by p through reason.
func Win(p Player, reason WinCondition) GameState {
	return GameState{Kind: Won, Winner: p, Reason: reason}
}

// Draw is the state of a full board with no winner.
var Draw = GameState{Kind: Drawn}

// IsTerminal reports whether the game is over.
func (s GameState) IsTerminal() bool { return s.Kind != Ongoing }

func (s GameState) String() string {
	switch s.Kind {
	case Won:
		return fmt.Sprintf("%v wins by %v", s.Winner, s.Reason)
	case Drawn:
		return "draw"
	}
	return "ongoing"
}
