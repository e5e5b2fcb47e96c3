// Package client is the player-facing side: it folds authority events into
// the board state, turns taps into turn requests and paints each frame.
package client

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/model"
	"github.com/zucenko/parchis/motion"
	"github.com/zucenko/parchis/piece"
	"github.com/zucenko/parchis/render"
	"github.com/zucenko/parchis/session"
	"github.com/zucenko/parchis/transport"
)

const logLines = 12

// Sender delivers outbound events to the authority.
type Sender interface {
	Send(model.Event) error
}

// Controller owns every piece of client state. All methods must be called
// from the render loop.
type Controller struct {
	cfg     Config
	sender  Sender
	palette render.Palette

	Session  *session.Session
	Layout   *board.Layout
	Registry *piece.Registry
	Animator *motion.Animator
	Board    *render.BoardRenderer
	Pieces   *render.PieceRenderer

	Connected bool
	Dice      int
	lines     []string
}

func NewController(cfg Config, sender Sender) (*Controller, error) {
	layout, err := board.NewLayout(cfg.Geometry)
	if err != nil {
		return nil, err
	}
	registry := piece.NewRegistry()
	animator := motion.NewAnimator(cfg.MoveDuration, cfg.HopHeight)
	palette := render.DefaultPalette
	return &Controller{
		cfg:      cfg,
		sender:   sender,
		palette:  palette,
		Session:  session.New(),
		Layout:   layout,
		Registry: registry,
		Animator: animator,
		Board:    render.NewBoardRenderer(layout, palette),
		Pieces:   render.NewPieceRenderer(layout, registry, animator, palette),
	}, nil
}

// Handle folds one transport notification into the controller.
func (c *Controller) Handle(n transport.Notification, now time.Time) {
	switch n.Type {
	case transport.EventConnect:
		c.Connected = true
		c.Session = session.New()
		c.logf(now, "Connected to server")
	case transport.EventDisconnect:
		c.Connected = false
		c.Session.MyTurn = false
		c.logf(now, "Disconnected")
	case transport.EventError:
		c.logf(now, "Connection error: %v", n.Err)
	case transport.EventMessage:
		c.Apply(n.Event, now)
	}
}

// Apply folds one authority event into session, registry and animations.
func (c *Controller) Apply(e model.Event, now time.Time) {
	c.Session.Observe(e)
	switch e.Kind {
	case model.KindPlayerConnected:
		if c.Session.ConnectionID >= 0 && !c.Session.Registered {
			c.register(now)
		}
	case model.KindRegistered:
		c.logf(now, "Registered: %s (%s)", c.Session.Name, c.Session.Color.Name())
	case model.KindRegisterRejected:
		c.logf(now, "Registration rejected: %s", e.Message)
	case model.KindGameStarted:
		c.Registry.ResetAll()
		c.Animator.Clear()
		c.Pieces.ClearSelection()
		c.Dice = 0
		c.logf(now, "The match has started")
	case model.KindTurnChanged:
		c.Pieces.ClearSelection()
		if c.Session.MyTurn {
			c.logf(now, "Your turn")
		} else {
			c.logf(now, "Waiting for turn")
		}
	case model.KindPieceMoved, model.KindCapture, model.KindLeftBase, model.KindEnteredCorridor, model.KindReachedGoal:
		if e.Dice > 0 {
			c.Dice = e.Dice
		}
		c.logf(now, "%s", e.Message)
		c.place(e, now)
	case model.KindMoveImpossible:
		c.logf(now, "Move impossible: %s", e.Message)
	case model.KindVictory, model.KindGameOver:
		c.logf(now, "Game over: %s", e.Message)
	case model.KindPlayerUpdated, model.KindColorsAvailable:
	default:
		c.logf(now, "%s: %s", e.Kind, e.Message)
	}
}

func (c *Controller) register(now time.Time) {
	if c.cfg.PlayerName == "" || !c.cfg.HasColor {
		c.logf(now, "Set player_name and player_color to join")
		return
	}
	c.send(now, model.RegisterRequest(c.Session.ConnectionID, c.cfg.PlayerName, c.cfg.PlayerColor))
}

// place applies the placement of e and animates the piece from where it
// was to where it is now.
func (c *Controller) place(e model.Event, now time.Time) {
	p, err := e.Placement()
	if err != nil {
		log.Warnf("Controller.place %s: %v", e.Kind, err)
		return
	}
	prev, err := c.Registry.Apply(p.Color, p.PieceID, p.State)
	if err != nil {
		log.Warnf("Controller.place %s: %v", e.Kind, err)
		return
	}
	key := piece.Key{Color: p.Color, ID: p.PieceID}
	if sel, ok := c.Pieces.Selected(); ok && sel == key {
		c.Pieces.ClearSelection()
	}
	from, okFrom := c.Pieces.Locate(p.Color, p.PieceID, prev)
	to, okTo := c.Pieces.ResolvePosition(p.Color, p.PieceID)
	if !okFrom || !okTo {
		log.Debugf("Controller.place no coordinate for %s %s -> %s", key, prev, p.State)
		return
	}
	if from != to {
		c.Animator.Start(key, from, to, now, nil)
	}
}

// Tap selects the own piece under p and asks the authority to move it.
func (c *Controller) Tap(p board.Point, now time.Time) (int, bool) {
	if !c.Session.Started || !c.Session.Registered {
		return 0, false
	}
	if !c.Session.MyTurn {
		c.logf(now, "Not your turn")
		return 0, false
	}
	id, ok := c.Pieces.HitTest(p, c.Session.Color)
	if !ok {
		return 0, false
	}
	c.Pieces.Select(piece.Key{Color: c.Session.Color, ID: id})
	c.send(now, model.TurnRequest(c.Session.Player(), id))
	return id, true
}

func (c *Controller) RequestStart(now time.Time) {
	if c.Session.Started {
		return
	}
	c.send(now, model.StartRequest())
}

func (c *Controller) send(now time.Time, e model.Event) {
	if err := c.sender.Send(e); err != nil {
		log.Errorf("Controller.send %v", err)
		c.logf(now, "Could not send %s", e.Kind)
	}
}

func (c *Controller) logf(now time.Time, format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] %s", now.Format("15:04:05"), fmt.Sprintf(format, args...))
	log.Info(line)
	c.lines = append(c.lines, line)
	if len(c.lines) > logLines {
		c.lines = c.lines[len(c.lines)-logLines:]
	}
}

// Lines returns the event log, oldest first.
func (c *Controller) Lines() []string {
	return append([]string(nil), c.lines...)
}

// Status is the one-line summary drawn above the board.
func (c *Controller) Status() string {
	var parts []string
	switch {
	case !c.Connected:
		parts = append(parts, "Offline")
	case !c.Session.Started:
		parts = append(parts, fmt.Sprintf("Lobby: %d players, press S to start", len(c.Session.Roster)))
	case c.Session.MyTurn:
		parts = append(parts, "Your turn")
	default:
		parts = append(parts, "Waiting")
	}
	if c.Dice > 0 {
		parts = append(parts, fmt.Sprintf("Dice %d", c.Dice))
	}
	for _, color := range board.Colors {
		if sum, err := c.Registry.Summary(color); err == nil {
			parts = append(parts, fmt.Sprintf("%s %d/%d", color.Name(), sum.AtGoal, board.PiecesPerColor))
		}
	}
	return strings.Join(parts, " | ")
}

// Frame advances animations to now and paints board, pieces and HUD.
func (c *Controller) Frame(s render.Surface, now time.Time) {
	c.Animator.Advance(now)
	c.Board.Draw(s)
	c.Pieces.Draw(s)

	g := c.Layout.Geometry()
	s.Text(c.Status(), g.CanvasWidth/2, 20, 14, c.palette.Text)
	recent := c.lines
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	for i, line := range recent {
		s.Text(line, g.CanvasWidth/2, g.CanvasHeight-54+float64(i)*18, 12, c.palette.Text)
	}
}
