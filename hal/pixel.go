package hal

import (
	"image"
	"image/color"

	"skyline/sky/clock"
)

// DialMargin is the distance of the dial from the top and right edges.
const DialMargin = 20

// DialRect places the clock dial in the top-right corner of a surface w
// pixels wide.
func DialRect(w int) image.Rectangle {
	x := w - DialMargin - clock.DialSize
	return image.Rect(x, DialMargin, x+clock.DialSize, DialMargin+clock.DialSize)
}

// blendOver composites straight-alpha c over an opaque RGBA pixel.
func blendOver(dst []uint8, c color.RGBA) {
	switch c.A {
	case 0:
		return
	case 0xff:
		dst[0], dst[1], dst[2], dst[3] = c.R, c.G, c.B, 0xff
		return
	}
	a := uint32(c.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	dst[0] = mix(dst[0], c.R)
	dst[1] = mix(dst[1], c.G)
	dst[2] = mix(dst[2], c.B)
	dst[3] = 0xff
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// onSurface reports whether a label anchor is close enough to a w×h
// surface to be drawn.
func onSurface(x, y, w, h float32) bool {
	const slack = 200
	return x > -slack && x < w+slack && y > -slack && y < h+slack
}
