package motion

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/zucenko/parchis/board"
)

// Frame is one sample of a transition. Hop is a cosmetic lift applied to
// the drawn y value only; Point is the logical position.
type Frame struct {
	Point board.Point
	Hop   float64
}

// Drawn returns the point where the piece is painted.
func (f Frame) Drawn() board.Point {
	return board.Point{X: f.Point.X, Y: f.Point.Y - f.Hop}
}

// Ease is the cubic in-out curve: 4t³ below one half, 1-(-2t+2)³/2 above.
func Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return float64(ease.InOutCubic(float32(t), 0, 1, 1))
}

// Interpolate samples the transition from -> to at progress t in [0,1].
// Both ends are exact: t=0 yields from and t=1 yields to with no hop.
func Interpolate(from, to board.Point, t, hop float64) Frame {
	if t <= 0 {
		return Frame{Point: from}
	}
	if t >= 1 {
		return Frame{Point: to}
	}
	e := Ease(t)
	return Frame{
		Point: board.Point{
			X: from.X + (to.X-from.X)*e,
			Y: from.Y + (to.Y-from.Y)*e,
		},
		Hop: math.Sin(t*math.Pi) * hop,
	}
}
