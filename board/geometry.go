package board

import (
	"fmt"
	"math"
)

// Point is a canvas coordinate in pixels.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Geometry is the immutable sizing of the board. The whole layout scales
// linearly with the cell size; the aspect ratio is not enforced.
type Geometry struct {
	CellWidth    float64
	CellHeight   float64
	CanvasWidth  float64
	CanvasHeight float64
}

// ConfigError reports a geometry dimension that is not strictly positive.
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("board: %s must be > 0, got %v", e.Field, e.Value)
}

// Validate returns a *ConfigError for the first non-positive dimension.
func (g Geometry) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"cell width", g.CellWidth},
		{"cell height", g.CellHeight},
		{"canvas width", g.CanvasWidth},
		{"canvas height", g.CanvasHeight},
	}
	for _, f := range fields {
		// NaN fails the comparison too
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return &ConfigError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

func (g Geometry) Center() Point {
	return Point{g.CanvasWidth / 2, g.CanvasHeight / 2}
}

// SelectionRadius is the distance under which a pointer picks a piece.
func (g Geometry) SelectionRadius() float64 {
	return math.Min(g.CellWidth, g.CellHeight) / 2.5
}

// MeanCell is the average of the two cell dimensions, used to size round
// decorations that should not stretch with the aspect ratio.
func (g Geometry) MeanCell() float64 {
	return (g.CellWidth + g.CellHeight) / 2
}
