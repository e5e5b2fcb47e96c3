package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/piece"
)

func TestParseColor(t *testing.T) {
	cases := map[string]board.Color{
		"ROJO":     board.Red,
		"azul":     board.Blue,
		" VERDE ":  board.Green,
		"AMARILLO": board.Yellow,
		"yellow":   board.Yellow,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseColor("MORADO")
	assert.True(t, errors.Is(err, ErrUnknownColor))

	for _, c := range board.Colors {
		back, err := ParseColor(WireColor(c))
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
}

func TestDecode_PieceMoved(t *testing.T) {
	raw := `{"tipoEvento":"FICHA_MOVIDA","jugadorAfectado":{"id":2,"nombre":"Candy","color":"AZUL"},` +
		`"fichaAfectada":{"id":3,"posicion":20},"posicionNueva":24,"valorDado":4,"mensaje":"moved"}`
	e, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, KindPieceMoved, e.Kind)
	assert.True(t, e.MovesPiece())
	assert.Equal(t, 4, e.Dice)

	p, err := e.Placement()
	require.NoError(t, err)
	assert.Equal(t, Placement{Color: board.Blue, PieceID: 3, State: piece.Track(24)}, p)
}

func TestPlacement_Categories(t *testing.T) {
	newPos := func(v int) *int { return &v }
	cases := []struct {
		name  string
		event Event
		want  piece.State
	}{
		{"captured back to base", Event{Kind: KindCapture, Token: &Token{ID: 1, Position: -1}}, piece.Base()},
		{"left base", Event{Kind: KindLeftBase, Token: &Token{ID: 1, Position: -1}, NewPosition: newPos(5)}, piece.Track(5)},
		{"corridor zero is kept", Event{Kind: KindEnteredCorridor, Token: &Token{ID: 1, Position: 3, InCorridor: true}}, piece.Corridor(0)},
		{"corridor index", Event{Kind: KindPieceMoved, Token: &Token{ID: 1, InCorridor: true, CorridorIndex: 4}}, piece.Corridor(4)},
		{"goal wins", Event{Kind: KindReachedGoal, Token: &Token{ID: 1, InCorridor: true, AtGoal: true}}, piece.Goal()},
		{"ring zero", Event{Kind: KindPieceMoved, Token: &Token{ID: 1, Position: 0}}, piece.Track(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.event.Player = &Player{ID: 1, Color: "ROJO"}
			p, err := tc.event.Placement()
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.State)
			assert.Equal(t, board.Red, p.Color)
		})
	}
}

func TestPlacement_Errors(t *testing.T) {
	_, err := Event{Kind: KindPieceMoved}.Placement()
	assert.True(t, errors.Is(err, ErrNoPlacement))

	_, err = Event{Kind: KindPieceMoved, Player: &Player{Color: "NEGRO"}, Token: &Token{}}.Placement()
	assert.True(t, errors.Is(err, ErrUnknownColor))
}

func TestDecode_Rejects(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
	_, err = Decode([]byte(`{"mensaje":"no kind"}`))
	assert.Error(t, err)
}

func TestTurnRequest_WireShape(t *testing.T) {
	e := TurnRequest(Player{ID: 7, Name: "Candy", Color: "VERDE"}, 2)
	data, err := Encode(e)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "SOLICITAR_TURNO", raw["tipoEvento"])
	token := raw["fichaAfectada"].(map[string]interface{})
	assert.Equal(t, float64(2), token["id"])
	assert.Equal(t, float64(0), token["posicion"])
	player := raw["jugadorAfectado"].(map[string]interface{})
	assert.Equal(t, "VERDE", player["color"])
	assert.NotZero(t, raw["timestamp"])
}

func TestRegisterAndStartRequests(t *testing.T) {
	reg := RegisterRequest(3, "Ana", board.Yellow)
	assert.Equal(t, KindRegisterRequest, reg.Kind)
	assert.Equal(t, "AMARILLO", reg.Player.Color)
	assert.Nil(t, reg.Token)

	start := StartRequest()
	assert.Equal(t, KindStartRequest, start.Kind)
	assert.False(t, start.MovesPiece())
	assert.True(t, Event{Kind: KindVictory}.Ends())
}
