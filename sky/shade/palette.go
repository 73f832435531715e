package shade

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colour tables. Each pair is cross-faded by the day factor.
var (
	nightSky      = colorful.Color{R: 0, G: 0.015, B: 0.04}
	daySky        = colorful.Color{R: 0.3, G: 0.6, B: 0.9}
	sunset        = colorful.Color{R: 1, G: 0.2, B: 0.05}
	horizonNight  = colorful.Color{R: 0.08, G: 0.12, B: 0.25}
	horizonDay    = colorful.Color{R: 0.6, G: 0.8, B: 0.95}
	starTint      = colorful.Color{R: 0.8, G: 0.9, B: 1}
	namedStarRing = colorful.Color{R: 0.9, G: 0.5, B: 1}

	sunDay      = colorful.Color{R: 1, G: 0.95, B: 0.8}
	sunRed      = colorful.Color{R: 1, G: 0.05, B: 0}
	sunGlowDay  = colorful.Color{R: 1, G: 0.8, B: 0.6}
	sunGlowRed  = colorful.Color{R: 1, G: 0.2, B: 0.05}
	moonGlow    = colorful.Color{R: 0.6, G: 0.7, B: 0.9}
	specSunHigh = colorful.Color{R: 1, G: 0.9, B: 0.6}
	specSunLow  = colorful.Color{R: 1, G: 0.3, B: 0.1}

	bgCloudNight = colorful.Color{R: 0.15, G: 0.18, B: 0.35}
	bgCloudDay   = colorful.Color{R: 0.9, G: 0.95, B: 1}
	cloudNightLo = colorful.Color{R: 0.04, G: 0.05, B: 0.22}
	cloudNightHi = colorful.Color{R: 0.28, G: 0.32, B: 0.45}
	cloudDayLo   = colorful.Color{R: 0.8, G: 0.8, B: 0.9}
	cloudDayHi   = colorful.Color{R: 1, G: 1, B: 1}
	duskTint     = colorful.Color{R: 1, G: 0.6, B: 0.6}

	waterDeepNight = colorful.Color{R: 0, G: 0.002, B: 0.005}
	waterSurfNight = colorful.Color{R: 0, G: 0.01, B: 0.03}
	waterDeepDay   = colorful.Color{R: 0, G: 0.08, B: 0.25}
	waterSurfDay   = colorful.Color{R: 0, G: 0.25, B: 0.45}
	foam           = colorful.Color{R: 0.98, G: 0.99, B: 1}
)

func vec(c colorful.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

// blend mixes two colours linearly in RGB.
func blend(a, b colorful.Color, t float32) colorful.Color {
	return a.BlendRgb(b, float64(t))
}

// Linear RGB ramps evaluated per pixel.
var (
	cloudNightLoV = vec(cloudNightLo)
	cloudNightHiV = vec(cloudNightHi)
	cloudDayLoV   = vec(cloudDayLo)
	cloudDayHiV   = vec(cloudDayHi)
	duskTintV     = vec(duskTint)
	starTintV     = vec(starTint)
	namedStarV    = vec(namedStarRing)
	moonGlowV     = vec(moonGlow)
	white         = mgl32.Vec3{1, 1, 1}
)
