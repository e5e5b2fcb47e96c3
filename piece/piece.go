package piece

import (
	"fmt"

	"github.com/zucenko/parchis/board"
)

// Kind is the placement category of a piece.
type Kind int

const (
	AtBase Kind = iota
	OnTrack
	InCorridor
	AtGoal
)

func (k Kind) Name() string {
	switch k {
	case AtBase:
		return "AT_BASE"
	case OnTrack:
		return "ON_TRACK"
	case InCorridor:
		return "IN_CORRIDOR"
	case AtGoal:
		return "AT_GOAL"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// State is a placement. Index is the ring index for OnTrack, the corridor
// index for InCorridor and is ignored otherwise.
type State struct {
	Kind  Kind
	Index int
}

func Base() State {
	return State{Kind: AtBase}
}

func Track(i int) State {
	return State{Kind: OnTrack, Index: i}
}

func Corridor(i int) State {
	return State{Kind: InCorridor, Index: i}
}

func Goal() State {
	return State{Kind: AtGoal}
}

// Valid reports whether s names a real place on the board.
func (s State) Valid() bool {
	switch s.Kind {
	case AtBase, AtGoal:
		return true
	case OnTrack:
		return s.Index >= 0 && s.Index < board.TrackLength
	case InCorridor:
		return s.Index >= 0 && s.Index < board.CorridorLength
	default:
		return false
	}
}

func (s State) String() string {
	switch s.Kind {
	case OnTrack, InCorridor:
		return fmt.Sprintf("%s(%d)", s.Kind.Name(), s.Index)
	default:
		return s.Kind.Name()
	}
}

// Key identifies a piece.
type Key struct {
	Color board.Color
	ID    int
}

func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.Color.Name(), k.ID)
}

// Piece is a snapshot of one token.
type Piece struct {
	Key
	State State
}
