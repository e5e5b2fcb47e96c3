package render

import (
	"image/color"
	"math"

	"github.com/zucenko/parchis/board"
)

// Surface is the minimal 2-D drawing capability the renderers need.
// Text is centered on (x, y).
type Surface interface {
	FillRect(x, y, w, h float64, clr color.Color)
	FillCircle(cx, cy, r float64, clr color.Color)
	FillPolygon(points []board.Point, clr color.Color)
	StrokePath(points []board.Point, closed bool, width float64, clr color.Color)
	Text(s string, x, y, size float64, clr color.Color)
}

const circleSegments = 48

// circlePath approximates a circle outline for StrokePath.
func circlePath(center board.Point, r float64) []board.Point {
	points := make([]board.Point, circleSegments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / circleSegments
		points[i] = board.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return points
}

func rectPath(center board.Point, w, h float64) []board.Point {
	return []board.Point{
		{X: center.X - w/2, Y: center.Y - h/2},
		{X: center.X + w/2, Y: center.Y - h/2},
		{X: center.X + w/2, Y: center.Y + h/2},
		{X: center.X - w/2, Y: center.Y + h/2},
	}
}
