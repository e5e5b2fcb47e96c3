package board

import "fmt"

// Color identifies one of the four parties. The numeric value is also the
// arm index on the ring and the number of quarter turns from the red arm.
type Color int

const (
	Red Color = iota
	Blue
	Yellow
	Green
)

const ColorCount = 4

// Colors lists every color in ring order.
var Colors = [ColorCount]Color{Red, Blue, Yellow, Green}

func (c Color) Valid() bool {
	return c >= Red && c <= Green
}

func (c Color) Name() string {
	switch c {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	case Yellow:
		return "YELLOW"
	case Green:
		return "GREEN"
	default:
		return fmt.Sprintf("N/A(%d)", c)
	}
}

func (c Color) String() string {
	return c.Name()
}

// Next returns the color whose arm follows c on the ring.
func (c Color) Next() Color {
	return (c + 1) % ColorCount
}
