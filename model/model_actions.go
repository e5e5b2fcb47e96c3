package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/piece"
)

var (
	ErrUnknownColor = errors.New("model: unknown color")
	ErrNoPlacement  = errors.New("model: event carries no placement")
)

var wireColors = [board.ColorCount]string{
	board.Red:    "ROJO",
	board.Blue:   "AZUL",
	board.Yellow: "AMARILLO",
	board.Green:  "VERDE",
}

// WireColor is the authority's name for c.
func WireColor(c board.Color) string {
	if !c.Valid() {
		return ""
	}
	return wireColors[c]
}

func ParseColor(s string) (board.Color, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, name := range wireColors {
		if name == s {
			return board.Color(c), nil
		}
	}
	// local names are accepted too, for configuration files
	for _, c := range board.Colors {
		if c.Name() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// Placement is a placement update dictated by the authority.
type Placement struct {
	Color   board.Color
	PieceID int
	State   piece.State
}

// Placement decodes the token carried by e. Goal wins over corridor,
// corridor over ring; a negative ring position means the base. When the
// authority sends posicionNueva it replaces the token's own position.
func (e Event) Placement() (Placement, error) {
	if e.Player == nil || e.Token == nil {
		return Placement{}, ErrNoPlacement
	}
	c, err := ParseColor(e.Player.Color)
	if err != nil {
		return Placement{}, err
	}
	p := Placement{Color: c, PieceID: e.Token.ID}
	position := e.Token.Position
	if e.NewPosition != nil {
		position = *e.NewPosition
	}
	switch {
	case e.Token.AtGoal:
		p.State = piece.Goal()
	case e.Token.InCorridor:
		p.State = piece.Corridor(e.Token.CorridorIndex)
	case position < 0:
		p.State = piece.Base()
	default:
		p.State = piece.Track(position)
	}
	return p, nil
}

func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("model: decode event: %w", err)
	}
	if e.Kind == "" {
		return Event{}, errors.New("model: event without tipoEvento")
	}
	return e, nil
}

func Encode(e Event) ([]byte, error) {
	return json.Marshal(e)
}

// RegisterRequest asks the authority to seat name with color c.
func RegisterRequest(id int, name string, c board.Color) Event {
	return Event{
		Kind:      KindRegisterRequest,
		Player:    &Player{ID: id, Name: name, Color: WireColor(c)},
		Message:   fmt.Sprintf("Register: %s (%s)", name, WireColor(c)),
		Timestamp: time.Now().UnixMilli(),
	}
}

func StartRequest() Event {
	return Event{
		Kind:      KindStartRequest,
		Message:   "Start match",
		Timestamp: time.Now().UnixMilli(),
	}
}

// TurnRequest is the selection event: player wants to move pieceID.
func TurnRequest(p Player, pieceID int) Event {
	return Event{
		Kind:      KindTurnRequest,
		Player:    &p,
		Token:     &Token{ID: pieceID},
		Message:   fmt.Sprintf("Player %d requests turn for piece %d", p.ID, pieceID),
		Timestamp: time.Now().UnixMilli(),
	}
}
