package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Face is the fixed-width font shared by every screen
var Face = text.NewGoXFace(basicfont.Face7x13)

// LineHeight is the vertical advance of one line of Face
const LineHeight = 16

// DrawText draws s with its top-left corner at (x, y)
func DrawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = LineHeight
	text.Draw(dst, s, Face, op)
}

// DrawCentered draws s horizontally centered on cx
func DrawCentered(dst *ebiten.Image, s string, cx, y float64, clr color.Color) {
	w, _ := text.Measure(s, Face, LineHeight)
	DrawText(dst, s, cx-w/2, y, clr)
}

// Shade covers the whole screen with a translucent color
func Shade(dst *ebiten.Image, clr color.Color) {
	b := dst.Bounds()
	vector.FillRect(dst, 0, 0, float32(b.Dx()), float32(b.Dy()), clr, false)
}

// RGB converts a config color triple, falling back when it is malformed
func RGB(c []uint8, fallback color.RGBA) color.RGBA {
	if len(c) < 3 {
		return fallback
	}
	return color.RGBA{c[0], c[1], c[2], 255}
}
