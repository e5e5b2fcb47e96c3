package main

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/zucenko/parchis/board"
)

var whiteSubImage *ebiten.Image

func init() {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Fonts hands out faces of one typeface, one per point size.
type Fonts struct {
	tt    *truetype.Font
	faces map[int]font.Face
}

func NewFonts() (*Fonts, error) {
	tt, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &Fonts{tt: tt, faces: make(map[int]font.Face)}, nil
}

func (f *Fonts) Face(size float64) font.Face {
	key := int(math.Round(size))
	face, ok := f.faces[key]
	if !ok {
		const dpi = 72
		face = truetype.NewFace(f.tt, &truetype.Options{
			Size:    float64(key),
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		f.faces[key] = face
		log.Debugf("Fonts.Face new face %d", key)
	}
	return face
}

// Screen draws the renderers' primitives onto an ebiten image.
type Screen struct {
	dst   *ebiten.Image
	fonts *Fonts
}

func (s *Screen) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func (s *Screen) FillCircle(cx, cy, r float64, clr color.Color) {
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), clr, true)
}

func (s *Screen) FillPolygon(points []board.Point, clr color.Color) {
	if len(points) < 3 {
		return
	}
	path := tracePath(points, true)
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	s.drawTriangles(vs, is, clr, ebiten.FillRuleNonZero)
}

func (s *Screen) StrokePath(points []board.Point, closed bool, width float64, clr color.Color) {
	if len(points) < 2 {
		return
	}
	path := tracePath(points, closed)
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	s.drawTriangles(vs, is, clr, ebiten.FillRuleFillAll)
}

// Text centers s on (x, y).
func (s *Screen) Text(str string, x, y, size float64, clr color.Color) {
	face := s.fonts.Face(size)
	bounds := text.BoundString(face, str)
	left := int(math.Round(x)) - bounds.Dx()/2 - bounds.Min.X
	baseline := int(math.Round(y)) - bounds.Dy()/2 - bounds.Min.Y
	text.Draw(s.dst, str, face, left, baseline, clr)
}

func (s *Screen) drawTriangles(vs []ebiten.Vertex, is []uint16, clr color.Color, rule ebiten.FillRule) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	op.FillRule = rule
	s.dst.DrawTriangles(vs, is, whiteSubImage, op)
}

func tracePath(points []board.Point, closed bool) *vector.Path {
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	if closed {
		path.Close()
	}
	return &path
}
