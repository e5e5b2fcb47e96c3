package render

import (
	"strconv"

	"github.com/zucenko/parchis/board"
)

// BoardRenderer paints the static board. It keeps no state besides the
// layout and palette, so the same value can redraw every frame.
type BoardRenderer struct {
	layout  *board.Layout
	palette Palette
}

func NewBoardRenderer(layout *board.Layout, palette Palette) *BoardRenderer {
	return &BoardRenderer{layout: layout, palette: palette}
}

// Draw paints background, ring, corridors, bases and goal, back to front.
func (r *BoardRenderer) Draw(s Surface) {
	g := r.layout.Geometry()
	s.FillRect(0, 0, g.CanvasWidth, g.CanvasHeight, r.palette.Background)
	r.drawTrack(s)
	r.drawCorridors(s)
	r.drawBases(s)
	r.drawGoal(s)
}

func (r *BoardRenderer) drawTrack(s Surface) {
	g := r.layout.Geometry()
	for _, cell := range r.layout.Cells() {
		fill := r.palette.Cell
		switch {
		case cell.Entry:
			fill = r.palette.Of(cell.Arm)
		case cell.Safe:
			fill = r.palette.SafeCell
		}
		p := cell.Point
		s.FillRect(p.X-g.CellWidth/2, p.Y-g.CellHeight/2, g.CellWidth, g.CellHeight, fill)
		s.StrokePath(rectPath(p, g.CellWidth, g.CellHeight), true, 2, r.palette.Border)
		if cell.Safe && !cell.Entry {
			s.StrokePath(circlePath(p, g.SelectionRadius()/2), true, 1, r.palette.Border)
		}
		s.Text(strconv.Itoa(cell.Index), p.X, p.Y, 11, r.palette.Text)
	}
}

func (r *BoardRenderer) drawCorridors(s Surface) {
	g := r.layout.Geometry()
	for _, c := range board.Colors {
		fill := Translucent(r.palette.Of(c), 0.7)
		for i := 0; i < board.CorridorLength; i++ {
			p, ok := r.layout.Corridor(c, i)
			if !ok {
				continue
			}
			s.FillRect(p.X-g.CellWidth/2, p.Y-g.CellHeight/2, g.CellWidth, g.CellHeight, fill)
			s.StrokePath(rectPath(p, g.CellWidth, g.CellHeight), true, 2, r.palette.Border)
			s.Text(strconv.Itoa(i), p.X, p.Y, 12, r.palette.Label)
		}
	}
}

func (r *BoardRenderer) drawBases(s Surface) {
	mean := r.layout.Geometry().MeanCell()
	for _, c := range board.Colors {
		base, ok := r.layout.Base(c)
		if !ok {
			continue
		}
		clr := r.palette.Of(c)
		s.FillCircle(base.Center.X, base.Center.Y, mean*3.5, Translucent(clr, 0.5))
		s.StrokePath(circlePath(base.Center, mean*3.5), true, 5, clr)
		for _, slot := range base.Slots {
			s.FillCircle(slot.X, slot.Y, mean/2.2, Translucent(clr, 0.5))
			s.StrokePath(circlePath(slot, mean/2.2), true, 3, clr)
		}
	}
}

// drawGoal splits a one-cell square at the center into four triangles,
// each facing the corridor of its color.
func (r *BoardRenderer) drawGoal(s Surface) {
	g := r.layout.Geometry()
	center := r.layout.Goal()
	corners := rectPath(center, g.CellWidth, g.CellHeight)
	topLeft, topRight, bottomRight, bottomLeft := corners[0], corners[1], corners[2], corners[3]

	triangles := [board.ColorCount][2]board.Point{
		board.Red:    {topLeft, topRight},
		board.Blue:   {topRight, bottomRight},
		board.Yellow: {bottomRight, bottomLeft},
		board.Green:  {bottomLeft, topLeft},
	}
	for _, c := range board.Colors {
		t := triangles[c]
		s.FillPolygon([]board.Point{center, t[0], t[1]}, r.palette.Of(c))
	}
	s.StrokePath(corners, true, 3, r.palette.Border)
}
