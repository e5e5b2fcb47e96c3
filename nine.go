package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Nine draws a nine-slice panel: corners keep their size, edges stretch
// along one axis and the middle along both.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [4][2]float64
}

// NewRoundedNine builds a panel from a generated disc, so the corners
// come out rounded with the given radius.
func NewRoundedNine(radius int, clr color.RGBA) *Nine {
	size := 2*radius + 2
	disc := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(disc, float32(size)/2, float32(size)/2, float32(radius), color.White, true)
	return &Nine{
		images: disc,
		alpha:  1,
		R:      float64(clr.R) / 0xff,
		G:      float64(clr.G) / 0xff,
		B:      float64(clr.B) / 0xff,
		Scale:  1,
		positions: [4][2]int{
			{0, 0},
			{radius, radius},
			{radius + 2, radius + 2},
			{size, size},
		},
	}
}

func (n *Nine) SetAlpha(alpha float64) {
	n.alpha = alpha
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + n.Scale*float64(n.positions[1][0])
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := n.targetPositions[2][0] - n.targetPositions[1][0]
	innerHigh := n.targetPositions[2][1] - n.targetPositions[1][1]

	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

func (n *Nine) Draw(screen *ebiten.Image) {
	if n.alpha <= 0 {
		return
	}
	// slice i spans positions[i]..positions[i+1] on each axis
	scales := [3][2]float64{
		{n.Scale, n.Scale},
		{n.scaleCenterWidth, n.scaleCenterHeight},
		{n.Scale, n.Scale},
	}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			src := image.Rect(
				n.positions[col][0], n.positions[row][1],
				n.positions[col+1][0], n.positions[row+1][1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scales[col][0], scales[row][1])
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorScale.Scale(float32(n.R), float32(n.G), float32(n.B), 1)
			op.ColorScale.ScaleAlpha(float32(n.alpha))
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
