package render

import (
	"image/color"

	"github.com/zucenko/parchis/board"
)

func HexToRGBA(u uint32) color.RGBA {
	return color.RGBA{R: uint8(u >> 16), G: uint8(u >> 8), B: uint8(u), A: 0xff}
}

// Translucent returns clr with its alpha scaled by alpha in [0,1].
func Translucent(clr color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: uint8(float64(clr.A) * alpha)}
}

type Palette struct {
	Colors       [board.ColorCount]color.RGBA
	Background   color.RGBA
	Border       color.RGBA
	Cell         color.RGBA
	SafeCell     color.RGBA
	Text         color.RGBA
	Label        color.RGBA
	PieceOutline color.RGBA
	Selected     color.RGBA
	Shadow       color.NRGBA
}

var DefaultPalette = Palette{
	Colors: [board.ColorCount]color.RGBA{
		board.Red:    HexToRGBA(0xc0504d),
		board.Blue:   HexToRGBA(0x4f81bd),
		board.Yellow: HexToRGBA(0xf0ad4e),
		board.Green:  HexToRGBA(0x77a968),
	},
	Background:   HexToRGBA(0xd4a574),
	Border:       HexToRGBA(0x8b6f47),
	Cell:         HexToRGBA(0xf5deb3),
	SafeCell:     HexToRGBA(0xe8cfa0),
	Text:         HexToRGBA(0x3a2a1a),
	Label:        HexToRGBA(0xffffff),
	PieceOutline: HexToRGBA(0x333333),
	Selected:     HexToRGBA(0xffffff),
	Shadow:       color.NRGBA{A: 0x80},
}

func (p Palette) Of(c board.Color) color.RGBA {
	if !c.Valid() {
		return p.Text
	}
	return p.Colors[c]
}
