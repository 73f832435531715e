// Package cursor tracks the pointer in raw pixels and as a smoothed,
// normalized value that steers the camera.
package cursor

import "math"

const (
	// LimitUp and LimitDown bound the normalized y target so the camera
	// neither stares at the zenith nor dives under the sea.
	LimitUp   = 0.48
	LimitDown = 0.05

	SmoothX = 0.013
	SmoothY = 0.02
)

// State is the cursor as seen by one frame loop.
type State struct {
	rawX, rawY       float32
	targetX, targetY float32
	curX, curY       float32
}

// Move records a pointer position in pixels on a surface of w×h pixels.
// Non-finite coordinates and empty surfaces are ignored.
func (s *State) Move(px, py, w, h float32) {
	if w <= 0 || h <= 0 || !finite(px) || !finite(py) {
		return
	}
	s.rawX, s.rawY = px, py
	s.targetX = px/w*2 - 1
	y := py/h*2 - 1
	s.targetY = min(max(y, -LimitUp), LimitDown)
}

// Step moves the smoothed value toward the target. It is called once per
// frame.
func (s *State) Step() {
	s.curX += (s.targetX - s.curX) * SmoothX
	s.curY += (s.targetY - s.curY) * SmoothY
}

// Snap jumps the smoothed value to the target.
func (s *State) Snap() {
	s.curX, s.curY = s.targetX, s.targetY
}

func (s *State) Raw() (x, y float32)      { return s.rawX, s.rawY }
func (s *State) Target() (x, y float32)   { return s.targetX, s.targetY }
func (s *State) Smoothed() (x, y float32) { return s.curX, s.curY }

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
