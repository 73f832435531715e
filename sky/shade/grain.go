package shade

import "image"

// GrainOpacity is the default strength of the film-grain overlay.
const GrainOpacity = 0.15

// Grain overlays gray film grain on dst with the overlay blend mode at the
// given opacity.
func Grain(dst *image.RGBA, t, opacity float32) {
	if opacity <= 0 {
		return
	}
	opacity = min(opacity, 1)
	b := dst.Bounds()
	h := b.Dy()
	for y := 0; y < h; y++ {
		fy := float32(h-y) - 0.5
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < b.Dx(); x++ {
			n := grainNoise(float32(x)+0.5, fy, t)
			for c := 0; c < 3; c++ {
				base := float32(dst.Pix[off+c]) / 255
				out := mix(base, overlay(base, n), opacity)
				dst.Pix[off+c] = unorm8(out)
			}
			off += 4
		}
	}
}

func overlay(base, blend float32) float32 {
	if base < 0.5 {
		return 2 * base * blend
	}
	return 1 - 2*(1-base)*(1-blend)
}
