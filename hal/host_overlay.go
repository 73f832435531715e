//go:build cgo || js

package hal

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var overlayFace = text.NewGoXFace(basicfont.Face7x13)

// drawOverlay is the ebiten rendition of drawOverlay in
// host_framebuffer.go: label lines and names, the dial and the readout.
func (g *hostGame) drawOverlay(dst *ebiten.Image, s Scene) {
	w, h := float32(g.disp.w), float32(g.disp.h)
	for _, l := range s.Labels {
		if !l.Visible || !onSurface(l.X, l.Y, w, h) {
			continue
		}
		vector.StrokeLine(dst, l.X, l.Y, l.X, l.Y-labelLine, 1, straight(colorLabelLine), true)
		c := colorLabel
		if l.Highlighted {
			c = colorLabelHot
			vector.StrokeCircle(dst, l.X, l.Y, knobRadius, 1, straight(colorLabelHot), true)
		}
		drawText(dst, l.Name, float64(l.X+labelGap), float64(l.Y-labelLine), text.AlignStart, c)
	}

	if s.Dial.Empty() {
		return
	}
	r := float32(s.Dial.Dx()) / 2
	cx, cy := float32(s.Dial.Min.X)+r, float32(s.Dial.Min.Y)+r
	vector.StrokeCircle(dst, cx, cy, r-1, 1, straight(colorDial), true)
	kx := float32(s.Dial.Min.X) + s.Readout.KnobX
	ky := float32(s.Dial.Min.Y) + s.Readout.KnobY
	vector.DrawFilledCircle(dst, kx, ky, knobRadius, straight(colorKnob), true)

	base := float64(s.Dial.Max.Y + readoutGap)
	right := float64(s.Dial.Max.X)
	drawText(dst, s.Readout.Clock, right, base, text.AlignEnd, colorReadout)
	drawText(dst, s.Readout.Date, right, base+readoutLine+2, text.AlignEnd, colorReadout)
}

func drawText(dst *ebiten.Image, str string, x, y float64, align text.Align, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(straight(c))
	text.Draw(dst, str, overlayFace, op)
}

// straight reinterprets the overlay palette, which is not premultiplied,
// for ebiten.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
