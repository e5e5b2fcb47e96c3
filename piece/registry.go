package piece

import (
	"errors"
	"fmt"

	"github.com/zucenko/parchis/board"
)

var (
	ErrInvalidPieceReference = errors.New("piece: unknown piece")
	ErrInvalidState          = errors.New("piece: invalid placement")
)

// Summary counts the pieces of one color per placement category.
type Summary struct {
	AtBase     int
	OnTrack    int
	InCorridor int
	AtGoal     int
}

// Registry owns the placement of every piece. It never infers a
// transition: states change only through Apply and ResetAll, and Apply
// does not check game legality.
//
// A Registry is not safe for concurrent use; it lives on the render loop.
type Registry struct {
	pieces map[board.Color]*[board.PiecesPerColor]State
}

// NewRegistry creates the pieces of all four colors at their bases.
func NewRegistry() *Registry {
	r := &Registry{pieces: make(map[board.Color]*[board.PiecesPerColor]State, board.ColorCount)}
	for _, c := range board.Colors {
		r.Create(c)
	}
	return r
}

// Create registers the four pieces of c at their base and returns them.
// Identities are created once; calling it again returns the existing pieces.
func (r *Registry) Create(c board.Color) []Piece {
	if !c.Valid() {
		return nil
	}
	if r.pieces == nil {
		r.pieces = make(map[board.Color]*[board.PiecesPerColor]State, board.ColorCount)
	}
	if _, ok := r.pieces[c]; !ok {
		r.pieces[c] = &[board.PiecesPerColor]State{}
	}
	return r.Pieces(c)
}

// Pieces returns a snapshot of the pieces of c in id order.
func (r *Registry) Pieces(c board.Color) []Piece {
	states, ok := r.pieces[c]
	if !ok {
		return nil
	}
	pieces := make([]Piece, 0, board.PiecesPerColor)
	for id, s := range states {
		pieces = append(pieces, Piece{Key: Key{c, id}, State: s})
	}
	return pieces
}

func (r *Registry) slot(c board.Color, id int) (*State, error) {
	states, ok := r.pieces[c]
	if !ok || id < 0 || id >= board.PiecesPerColor {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPieceReference, Key{c, id})
	}
	return &states[id], nil
}

// Apply overwrites the placement of (c,id) and returns the previous one.
// On error the registry is unchanged.
func (r *Registry) Apply(c board.Color, id int, s State) (State, error) {
	slot, err := r.slot(c, id)
	if err != nil {
		return State{}, err
	}
	if !s.Valid() {
		return State{}, fmt.Errorf("%w: %s for %s", ErrInvalidState, s, Key{c, id})
	}
	prev := *slot
	*slot = s
	return prev, nil
}

func (r *Registry) Query(c board.Color, id int) (State, error) {
	slot, err := r.slot(c, id)
	if err != nil {
		return State{}, err
	}
	return *slot, nil
}

func (r *Registry) Summary(c board.Color) (Summary, error) {
	states, ok := r.pieces[c]
	if !ok {
		return Summary{}, fmt.Errorf("%w: color %s", ErrInvalidPieceReference, c.Name())
	}
	var sum Summary
	for _, s := range states {
		switch s.Kind {
		case AtBase:
			sum.AtBase++
		case OnTrack:
			sum.OnTrack++
		case InCorridor:
			sum.InCorridor++
		case AtGoal:
			sum.AtGoal++
		}
	}
	return sum, nil
}

// ResetAll returns every piece to its base without recreating identities.
func (r *Registry) ResetAll() {
	for _, states := range r.pieces {
		for id := range states {
			states[id] = Base()
		}
	}
}
