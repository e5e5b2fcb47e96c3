package render

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/motion"
	"github.com/zucenko/parchis/piece"
)

// PieceRenderer resolves, draws and picks pieces. It only reads the
// registry; placements are changed by whoever owns the registry.
type PieceRenderer struct {
	layout   *board.Layout
	registry *piece.Registry
	animator *motion.Animator
	palette  Palette

	selected    piece.Key
	hasSelected bool
}

func NewPieceRenderer(layout *board.Layout, registry *piece.Registry, animator *motion.Animator, palette Palette) *PieceRenderer {
	return &PieceRenderer{
		layout:   layout,
		registry: registry,
		animator: animator,
		palette:  palette,
	}
}

// Locate maps a placement of piece (c,id) to its board coordinate.
func (r *PieceRenderer) Locate(c board.Color, id int, s piece.State) (board.Point, bool) {
	switch s.Kind {
	case piece.AtGoal:
		return r.layout.Goal(), true
	case piece.InCorridor:
		return r.layout.Corridor(c, s.Index)
	case piece.AtBase:
		return r.layout.Slot(c, id)
	case piece.OnTrack:
		return r.layout.Track(s.Index)
	default:
		return board.Point{}, false
	}
}

// ResolvePosition returns where piece (c,id) rests in its current state.
func (r *PieceRenderer) ResolvePosition(c board.Color, id int) (board.Point, bool) {
	s, err := r.registry.Query(c, id)
	if err != nil {
		return board.Point{}, false
	}
	return r.Locate(c, id, s)
}

// hitSlack absorbs rounding when a point sits exactly on the radius.
const hitSlack = 1e-9

// HitTest returns the lowest id of color c whose resting position lies
// within the selection radius of p.
func (r *PieceRenderer) HitTest(p board.Point, c board.Color) (int, bool) {
	radius := r.layout.Geometry().SelectionRadius()
	for id := 0; id < board.PiecesPerColor; id++ {
		pos, ok := r.ResolvePosition(c, id)
		if !ok {
			continue
		}
		if pos.Dist(p) <= radius+hitSlack {
			return id, true
		}
	}
	return 0, false
}

func (r *PieceRenderer) Select(key piece.Key) {
	r.selected = key
	r.hasSelected = true
}

func (r *PieceRenderer) Selected() (piece.Key, bool) {
	return r.selected, r.hasSelected
}

func (r *PieceRenderer) ClearSelection() {
	r.hasSelected = false
}

// Draw paints every piece; resting pieces first, moving pieces on top.
func (r *PieceRenderer) Draw(s Surface) {
	var moving []piece.Key
	for _, c := range board.Colors {
		for id := 0; id < board.PiecesPerColor; id++ {
			key := piece.Key{Color: c, ID: id}
			if _, ok := r.animator.Position(key); ok {
				moving = append(moving, key)
				continue
			}
			pos, ok := r.ResolvePosition(c, id)
			if !ok {
				log.Debugf("PieceRenderer.Draw no coordinate for %s", key)
				continue
			}
			r.drawPiece(s, key, pos, false)
		}
	}
	for _, key := range moving {
		frame, _ := r.animator.Position(key)
		r.drawPiece(s, key, frame.Drawn(), true)
	}
}

func (r *PieceRenderer) drawPiece(s Surface, key piece.Key, pos board.Point, lifted bool) {
	radius := r.layout.Geometry().SelectionRadius()
	shadow := 3.0
	if lifted {
		shadow = 6
	}
	s.FillCircle(pos.X+shadow, pos.Y+shadow, radius, r.palette.Shadow)
	s.FillCircle(pos.X, pos.Y, radius, r.palette.Of(key.Color))

	outline := circlePath(pos, radius)
	if sel, ok := r.Selected(); ok && sel == key {
		s.StrokePath(outline, true, 7, Translucent(r.palette.Selected, 0.6))
		s.StrokePath(outline, true, 5, r.palette.Selected)
	} else {
		s.StrokePath(outline, true, 3, r.palette.PieceOutline)
	}
	s.Text(strconv.Itoa(key.ID), pos.X, pos.Y, 18, r.palette.Label)
}
