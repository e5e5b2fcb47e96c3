package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/client"
	"github.com/zucenko/parchis/model"
	"github.com/zucenko/parchis/motion"
	"github.com/zucenko/parchis/transport"
)

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID ebiten.TouchID
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press until release. A stroke that wanders further
// than tapSlop is a drag and never becomes a tap.
type Stroke struct {
	source StrokeSource

	// initX and initY represents the position when pressing starts.
	initX int
	initY int

	// currentX and currentY represents the current position
	currentX int
	currentY int

	released  bool
	cancelled bool
}

const tapSlop = 12

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	x, y := s.source.Position()
	s.currentX = x
	s.currentY = y
	dx, dy := s.PositionDiff()
	if math.Abs(float64(dx)) > tapSlop || math.Abs(float64(dy)) > tapSlop {
		s.cancelled = true
	}
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

// IsTap reports a released stroke that stayed put.
func (s *Stroke) IsTap() bool {
	return s.released && !s.cancelled
}

func (s *Stroke) Position() (int, int) {
	return s.currentX, s.currentY
}

func (s *Stroke) PositionDiff() (int, int) {
	dx := s.currentX - s.initX
	dy := s.currentY - s.initY
	return dx, dy
}

type GameState int

const (
	CONNECTING GameState = iota + 1
	LOBBY
	PLAYING
	GAME_OVER
)

func (s GameState) Name() string {
	switch s {
	case CONNECTING:
		return "CONNECTING"
	case LOBBY:
		return "LOBBY"
	case PLAYING:
		return "PLAYING"
	case GAME_OVER:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State         GameState
	Controller    *client.Controller
	Notifications chan transport.Notification
	Tweens        map[*gween.Tween]Action
	strokes       map[*Stroke]struct{}

	clock       motion.Clock
	over        bool
	fonts       *Fonts
	banner      *Nine
	bannerText  string
	bannerAlpha float64
	width       int
	height      int
}

func NewGame(ctrl *client.Controller, notifications chan transport.Notification, fonts *Fonts) *Game {
	g := ctrl.Layout.Geometry()
	return &Game{
		State:         CONNECTING,
		Controller:    ctrl,
		Notifications: notifications,
		Tweens:        make(map[*gween.Tween]Action),
		strokes:       map[*Stroke]struct{}{},
		clock:         motion.SystemClock{},
		fonts:         fonts,
		banner:        NewRoundedNine(14, color.RGBA{0x3a, 0x2a, 0x1a, 0xff}),
		width:         int(g.CanvasWidth),
		height:        int(g.CanvasHeight),
	}
}

// flash shows text in a panel that fades in, holds and fades out.
func (g *Game) flash(text string) {
	g.Tweens = make(map[*gween.Tween]Action)
	g.bannerText = text
	show := func(v float32) { g.bannerAlpha = float64(v) }

	fadeIn := gween.New(0, 1, 0.25, ease.OutQuad)
	in := Action{onChange: show}
	hold := in.next(gween.New(1, 1, 0.9, ease.Linear))
	hold.onChange = show
	out := hold.next(gween.New(1, 0, 0.4, ease.InQuad))
	out.onChange = show
	out.addOnFinish(func() { g.bannerText = "" })
	g.Tweens[fadeIn] = in
}

func (g *Game) drainNotifications(now time.Time) {
	for {
		select {
		case n, ok := <-g.Notifications:
			if !ok {
				return
			}
			wasMine := g.Controller.Session.MyTurn
			g.Controller.Handle(n, now)
			switch {
			case n.Type != transport.EventMessage:
			case n.Event.Ends():
				g.over = true
				g.flash(n.Event.Message)
				continue
			case n.Event.Kind == model.KindGameStarted:
				g.over = false
			}
			if !wasMine && g.Controller.Session.MyTurn {
				g.flash("Your turn")
			}
		default:
			return
		}
	}
}

func (g *Game) syncState() {
	c := g.Controller
	prev := g.State
	switch {
	case !c.Connected:
		g.State = CONNECTING
	case g.over:
		g.State = GAME_OVER
	case !c.Session.Started:
		g.State = LOBBY
	default:
		g.State = PLAYING
	}
	if prev != g.State {
		log.Infof("Game state %s -> %s", prev.Name(), g.State.Name())
	}
}

func (g *Game) updateStroke(stroke *Stroke, now time.Time) {
	stroke.Update()
	if !stroke.IsTap() {
		return
	}
	x, y := stroke.Position()
	if id, ok := g.Controller.Tap(board.Point{X: float64(x), Y: float64(y)}, now); ok {
		log.Debugf("Game tap picked piece %d", id)
	}
}

func (g *Game) Update() error {
	now := g.clock.Now()
	g.drainNotifications(now)
	g.syncState()

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Controller.RequestStart(now)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		g.updateStroke(s, now)
		if s.IsReleased() {
			delete(g.strokes, s)
		}
	}

	g.updateTweens(float32(1 / float64(ebiten.TPS())))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	surface := &Screen{dst: screen, fonts: g.fonts}
	g.Controller.Frame(surface, g.clock.Now())

	if g.bannerText == "" || g.bannerAlpha <= 0 {
		return
	}
	const w, h = 420, 70
	x, y := (g.width-w)/2, (g.height-h)/2
	g.banner.SetPosition(x, y)
	g.banner.SetSize(w, h)
	g.banner.SetAlpha(0.85 * g.bannerAlpha)
	g.banner.Draw(screen)
	a := uint8(0xff * g.bannerAlpha)
	surface.Text(g.bannerText, float64(g.width)/2, float64(g.height)/2, 28, color.NRGBA{0xff, 0xff, 0xff, a})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	fonts, err := NewFonts()
	if err != nil {
		log.Fatal(err)
	}

	link := transport.NewLink(cfg.ServerURL, transport.DefaultOptions)
	ctrl, err := client.NewController(cfg, link)
	if err != nil {
		log.Fatalf("board: %v", err)
	}
	game := NewGame(ctrl, link.Subscribe(), fonts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	link.Start(ctx)
	defer link.Close()

	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("Parchís")
	if err := ebiten.RunGame(game); err != nil {
		log.Errorf("RunGame %v", err)
	}
}
