package client

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/model"
	"github.com/zucenko/parchis/piece"
	"github.com/zucenko/parchis/transport"
)

type outbox struct {
	sent []model.Event
	err  error
}

func (o *outbox) Send(e model.Event) error {
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, e)
	return nil
}

type texts struct {
	lines []string
}

func (t *texts) FillRect(x, y, w, h float64, clr color.Color) {}
func (t *texts) FillCircle(cx, cy, r float64, clr color.Color) {}
func (t *texts) FillPolygon(points []board.Point, clr color.Color) {}
func (t *texts) StrokePath(points []board.Point, closed bool, w float64, clr color.Color) {}
func (t *texts) Text(s string, x, y, size float64, clr color.Color) {
	t.lines = append(t.lines, s)
}

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newController(t *testing.T) (*Controller, *outbox) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PlayerName = "Candy"
	cfg.PlayerColor = board.Red
	cfg.HasColor = true
	out := &outbox{}
	c, err := NewController(cfg, out)
	require.NoError(t, err)
	return c, out
}

// seated plays the handshake up to the player's own turn.
func seated(t *testing.T) (*Controller, *outbox) {
	c, out := newController(t)
	c.Handle(transport.Notification{Type: transport.EventConnect}, epoch)
	c.Apply(model.Event{Kind: model.KindPlayerConnected, Message: "Tu ID es: 1"}, epoch)
	c.Apply(model.Event{Kind: model.KindRegistered, Player: &model.Player{ID: 1, Name: "Candy", Color: "ROJO"}}, epoch)
	c.Apply(model.Event{Kind: model.KindGameStarted}, epoch)
	c.Apply(model.Event{Kind: model.KindTurnChanged, Message: "Turno del jugador 1"}, epoch)
	return c, out
}

func TestNewController_RejectsBadGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geometry.CellWidth = 0
	_, err := NewController(cfg, &outbox{})
	var ce *board.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestController_RegistersOnceIDIsKnown(t *testing.T) {
	c, out := newController(t)
	c.Handle(transport.Notification{Type: transport.EventConnect}, epoch)
	assert.Empty(t, out.sent)

	c.Apply(model.Event{Kind: model.KindPlayerConnected, Message: "Tu ID es: 5"}, epoch)
	require.Len(t, out.sent, 1)
	reg := out.sent[0]
	assert.Equal(t, model.KindRegisterRequest, reg.Kind)
	assert.Equal(t, 5, reg.Player.ID)
	assert.Equal(t, "ROJO", reg.Player.Color)
	assert.Equal(t, "Candy", reg.Player.Name)
}

func TestController_NoRegistrationWithoutIdentity(t *testing.T) {
	out := &outbox{}
	c, err := NewController(DefaultConfig(), out)
	require.NoError(t, err)
	c.Apply(model.Event{Kind: model.KindPlayerConnected, Message: "Tu ID es: 5"}, epoch)
	assert.Empty(t, out.sent)
	assert.Contains(t, c.Lines()[0], "player_name")
}

func TestController_PlacementAnimatesFromPreviousSpot(t *testing.T) {
	c, _ := seated(t)
	pos := 22
	c.Apply(model.Event{
		Kind:        model.KindLeftBase,
		Player:      &model.Player{ID: 2, Color: "AZUL"},
		Token:       &model.Token{ID: 3, Position: -1},
		NewPosition: &pos,
		Dice:        5,
	}, epoch)

	s, err := c.Registry.Query(board.Blue, 3)
	require.NoError(t, err)
	assert.Equal(t, piece.Track(22), s)
	assert.Equal(t, 5, c.Dice)

	key := piece.Key{Color: board.Blue, ID: 3}
	target, ok := c.Animator.Target(key)
	require.True(t, ok)
	track, _ := c.Layout.Track(22)
	assert.Equal(t, track, target)

	frame, ok := c.Animator.Position(key)
	require.True(t, ok)
	slot, _ := c.Layout.Slot(board.Blue, 3)
	assert.Equal(t, slot, frame.Point)

	c.Frame(&texts{}, epoch.Add(time.Second))
	assert.Equal(t, 0, c.Animator.Active())
}

func TestController_BadPlacementLeavesRegistry(t *testing.T) {
	c, _ := seated(t)
	c.Apply(model.Event{Kind: model.KindPieceMoved, Player: &model.Player{Color: "ROJO"}, Token: &model.Token{ID: 7, Position: 3}}, epoch)
	c.Apply(model.Event{Kind: model.KindPieceMoved, Player: &model.Player{Color: "ROJO"}, Token: &model.Token{ID: 0, Position: 99}}, epoch)
	for _, p := range c.Registry.Pieces(board.Red) {
		assert.Equal(t, piece.Base(), p.State)
	}
	assert.Equal(t, 0, c.Animator.Active())
}

func TestController_GameStartResetsBoard(t *testing.T) {
	c, _ := seated(t)
	c.Apply(model.Event{Kind: model.KindPieceMoved, Player: &model.Player{Color: "VERDE"}, Token: &model.Token{ID: 0, Position: 40}, Dice: 3}, epoch)
	require.Equal(t, 1, c.Animator.Active())

	c.Apply(model.Event{Kind: model.KindGameStarted}, epoch)
	s, _ := c.Registry.Query(board.Green, 0)
	assert.Equal(t, piece.Base(), s)
	assert.Equal(t, 0, c.Animator.Active())
	assert.Equal(t, 0, c.Dice)
}

func TestController_TapSendsTurnRequest(t *testing.T) {
	c, out := seated(t)
	sent := len(out.sent)
	slot, _ := c.Layout.Slot(board.Red, 2)

	id, ok := c.Tap(slot, epoch)
	require.True(t, ok)
	assert.Equal(t, 2, id)
	require.Len(t, out.sent, sent+1)
	req := out.sent[sent]
	assert.Equal(t, model.KindTurnRequest, req.Kind)
	assert.Equal(t, 2, req.Token.ID)
	assert.Equal(t, "ROJO", req.Player.Color)

	sel, ok := c.Pieces.Selected()
	require.True(t, ok)
	assert.Equal(t, piece.Key{Color: board.Red, ID: 2}, sel)
}

func TestController_TapIgnoredOutOfTurnOrOffPiece(t *testing.T) {
	c, out := seated(t)
	sent := len(out.sent)

	_, ok := c.Tap(c.Layout.Goal(), epoch)
	assert.False(t, ok)

	blue, _ := c.Layout.Slot(board.Blue, 0)
	_, ok = c.Tap(blue, epoch)
	assert.False(t, ok, "other colors are not selectable")

	c.Apply(model.Event{Kind: model.KindTurnChanged, Message: "Turno del jugador 2"}, epoch)
	red, _ := c.Layout.Slot(board.Red, 0)
	_, ok = c.Tap(red, epoch)
	assert.False(t, ok)
	assert.Len(t, out.sent, sent)
	lines := c.Lines()
	assert.Contains(t, lines[len(lines)-1], "Not your turn")
}

func TestController_SendFailureIsLogged(t *testing.T) {
	c, out := seated(t)
	out.err = transport.ErrNotConnected
	red, _ := c.Layout.Slot(board.Red, 1)
	_, ok := c.Tap(red, epoch)
	assert.True(t, ok)
	lines := c.Lines()
	assert.Contains(t, lines[len(lines)-1], "Could not send SOLICITAR_TURNO")
}

func TestController_RequestStartOnlyInLobby(t *testing.T) {
	c, out := newController(t)
	c.RequestStart(epoch)
	require.Len(t, out.sent, 1)
	assert.Equal(t, model.KindStartRequest, out.sent[0].Kind)

	c.Apply(model.Event{Kind: model.KindGameStarted}, epoch)
	c.RequestStart(epoch)
	assert.Len(t, out.sent, 1)
}

func TestController_LogKeepsLastLines(t *testing.T) {
	c, _ := newController(t)
	for i := 0; i < 20; i++ {
		c.Apply(model.Event{Kind: model.KindMoveImpossible, Message: "blocked"}, epoch)
	}
	lines := c.Lines()
	assert.Len(t, lines, 12)
	assert.Equal(t, "[12:00:00] Move impossible: blocked", lines[0])
}

func TestController_FrameDrawsStatus(t *testing.T) {
	c, _ := seated(t)
	c.Apply(model.Event{Kind: model.KindReachedGoal, Player: &model.Player{Color: "ROJO"}, Token: &model.Token{ID: 0, AtGoal: true}, Dice: 6}, epoch)

	s := &texts{}
	c.Frame(s, epoch.Add(50*time.Millisecond))
	assert.Contains(t, s.lines, c.Status())
	assert.Contains(t, c.Status(), "Your turn")
	assert.Contains(t, c.Status(), "Dice 6")
	assert.Contains(t, c.Status(), "RED 1/4")
	assert.Contains(t, c.Status(), "BLUE 0/4")
}

func TestController_DisconnectDropsTurn(t *testing.T) {
	c, _ := seated(t)
	c.Handle(transport.Notification{Type: transport.EventDisconnect}, epoch)
	assert.False(t, c.Connected)
	assert.False(t, c.Session.MyTurn)
	assert.Contains(t, c.Status(), "Offline")
}
