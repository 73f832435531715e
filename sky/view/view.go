// Package view holds the camera model shared by the shading pass and the
// label projector, and the drawable-surface sizing rule.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	EyeHeight = 800

	YawScale   = 3.5
	PitchScale = -1.5

	DefaultQuality  = 0.7
	DefaultMaxWidth = 2000
)

// Eye is the fixed observer position above the sea.
var Eye = mgl32.Vec3{0, EyeHeight, 0}

var worldUp = mgl32.Vec3{0, 1, 0}

// Basis is an orthonormal camera frame.
type Basis struct {
	Forward mgl32.Vec3
	Right   mgl32.Vec3
	Up      mgl32.Vec3
}

// NewBasis derives the camera frame from the smoothed cursor.
func NewBasis(cursorX, cursorY float32) Basis {
	yaw := float64(cursorX * YawScale)
	pitch := float64(cursorY * PitchScale)
	return FromAngles(yaw, pitch)
}

// FromAngles builds the frame for yaw and pitch in radians.
func FromAngles(yaw, pitch float64) Basis {
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	f := mgl32.Vec3{
		float32(cp * math.Sin(yaw)),
		float32(sp),
		float32(cp * math.Cos(yaw)),
	}
	r := worldUp.Cross(f)
	if r.Len() < 1e-6 {
		r = mgl32.Vec3{1, 0, 0}
	} else {
		r = r.Normalize()
	}
	return Basis{Forward: f, Right: r, Up: f.Cross(r)}
}

// UV maps a fragment coordinate (origin bottom-left) to the view plane,
// scaled by the surface height.
func UV(fragX, fragY, resX, resY float32) (u, v float32) {
	if resY == 0 {
		return 0, 0
	}
	return (fragX - 0.5*resX) / resY, (fragY - 0.5*resY) / resY
}

// Ray returns the unit view direction for a view-plane coordinate.
func (b Basis) Ray(u, v float32) mgl32.Vec3 {
	return b.Forward.Add(b.Right.Mul(u)).Add(b.Up.Mul(v)).Normalize()
}

// Drawable applies the render-surface sizing rule: the container size is
// scaled by the device pixel ratio and the quality factor, then capped at
// maxWidth with the aspect ratio kept. The result is at least 1×1.
func Drawable(containerW, containerH int, dpr, quality float64, maxWidth int) (w, h int) {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	if quality <= 0 || math.IsNaN(quality) || math.IsInf(quality, 0) {
		quality = DefaultQuality
	}
	fw := float64(max(containerW, 0)) * dpr * quality
	fh := float64(max(containerH, 0)) * dpr * quality
	if maxWidth > 0 && fw > float64(maxWidth) {
		fh = float64(maxWidth) * fh / fw
		fw = float64(maxWidth)
	}
	w = int(math.Floor(fw + 1e-9))
	h = int(math.Floor(fh + 1e-9))
	return max(w, 1), max(h, 1)
}
