package shade

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Smoothstep is the Hermite ramp between e0 and e1. Reversed edges ramp
// downward; equal edges degrade to a step at e0.
func Smoothstep(e0, e1, x float32) float32 {
	if e0 == e1 {
		return step(e0, x)
	}
	t := clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func mix(a, b, t float32) float32 { return a + (b-a)*t }

func mix3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t, a[2] + (b[2]-a[2])*t}
}

func floor(x float32) float32 { return float32(math.Floor(float64(x))) }

// fract keeps its result in [0, 1) even when rounding would reach 1.
func fract(x float32) float32 {
	f := x - floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }

func cos(x float32) float32 { return float32(math.Cos(float64(x))) }

func sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func abs(x float32) float32 { return float32(math.Abs(float64(x))) }

func exp(x float32) float32 { return float32(math.Exp(float64(x))) }

func atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

// pow follows the usual shader convention of a non-negative base.
func pow(x, y float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Pow(float64(x), float64(y)))
}

// glmod is the shader mod: x - y*floor(x/y).
func glmod(x, y float32) float32 { return x - y*floor(x/y) }
