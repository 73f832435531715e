// Package labels projects named stars and satellites into screen space and
// decides which labels are shown and highlighted.
//
// The projector produces plain numbers; presenting them (ebiten overlay,
// framebuffer text, DOM elements) is the host's job.
package labels

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyline/sky/orbit"
	"skyline/sky/view"
)

const (
	// HighlightRadius is the pointer distance, in pixels, that highlights
	// a label.
	HighlightRadius = 50
	// MinSatelliteElevation hides satellite labels that would float over
	// the sea.
	MinSatelliteElevation = 0.05
)

// Placement is the screen state of one label. X and Y are in pixels with
// the origin at the top-left corner.
type Placement struct {
	Name        string
	Kind        orbit.Kind
	Visible     bool
	Highlighted bool
	X, Y        float32
}

// Result is the outcome of one projection pass.
type Result struct {
	Labels []Placement
	// CursorHelp is true when any visible label is highlighted.
	CursorHelp bool
}

// Frame carries the per-frame inputs of the projector.
type Frame struct {
	Basis   view.Basis
	Width   float32
	Height  float32
	Hour    float32
	CursorX float32 // raw pointer, pixels
	CursorY float32
}

// IsDaytime reports whether labels are suppressed at hour.
func IsDaytime(hour float32) bool {
	return hour > 6 && hour < 18
}

// Point projects a unit direction with the camera basis. ok is false when
// the direction is behind the camera.
func Point(b view.Basis, p mgl32.Vec3, w, h float32) (x, y float32, ok bool) {
	dotF := p.Dot(b.Forward)
	if dotF <= 0 {
		return 0, 0, false
	}
	x = p.Dot(b.Right)/dotF*h + w/2
	sy := p.Dot(b.Up)/dotF*h + h/2
	return x, h - sy, true
}

// Project places every body. dst is reused when it has enough capacity.
func Project(f Frame, bodies []orbit.Body, dst []Placement) Result {
	dst = dst[:0]
	day := IsDaytime(f.Hour)
	res := Result{}
	for _, b := range bodies {
		pl := Placement{Name: b.Name, Kind: b.Kind}
		switch {
		case day:
		case b.Kind == orbit.Satellite && b.Pos.Y() < MinSatelliteElevation:
		default:
			x, y, ok := Point(f.Basis, b.Pos, f.Width, f.Height)
			if !ok {
				break
			}
			pl.Visible = true
			pl.X, pl.Y = x, y
			dx, dy := f.CursorX-x, f.CursorY-y
			if dx*dx+dy*dy < HighlightRadius*HighlightRadius {
				pl.Highlighted = true
				res.CursorHelp = true
			}
		}
		dst = append(dst, pl)
	}
	res.Labels = dst
	return res
}
