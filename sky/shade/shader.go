// Package shade is the CPU rendition of the sky and ocean fragment
// program. It evaluates the same per-pixel pipeline as the GPU program
// and is used for headless snapshots, the -cpu window mode and tests.
package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyline/sky/orbit"
	"skyline/sky/view"
)

// Sampler is a filtered texture lookup; v = 0 is the first image row.
type Sampler interface {
	Sample(u, v float32) mgl32.Vec4
}

// Uniforms are the per-frame inputs of the pipeline.
type Uniforms struct {
	Time       float32 // simulation clock, seconds
	Width      int
	Height     int
	CursorX    float32 // smoothed, normalized
	CursorY    float32
	Stars      [orbit.StarCount]mgl32.Vec3
	Satellites []mgl32.Vec3
	Hour       float32
	Moon       Sampler
}

// Shader is a pipeline prepared for one frame. It is read-only after
// construction and safe for concurrent Fragment calls.
type Shader struct {
	u     Uniforms
	basis view.Basis
	light Lighting
	resX  float32
	resY  float32
}

func NewShader(u Uniforms) *Shader {
	if len(u.Satellites) > orbit.MaxSatellites {
		u.Satellites = u.Satellites[:orbit.MaxSatellites]
	}
	return &Shader{
		u:     u,
		basis: view.NewBasis(u.CursorX, u.CursorY),
		light: NewLighting(u.Hour),
		resX:  float32(max(u.Width, 1)),
		resY:  float32(max(u.Height, 1)),
	}
}

func (s *Shader) Lighting() Lighting { return s.light }

// Fragment shades the fragment at (fx, fy), measured in pixels from the
// bottom-left corner with pixel centers at half-integers. The result is
// not clamped.
func (s *Shader) Fragment(fx, fy float32) mgl32.Vec3 {
	u, v := view.UV(fx, fy, s.resX, s.resY)
	rd := s.basis.Ray(u, v)

	var col mgl32.Vec3
	if rd.Y() >= -0.05 {
		col = s.sky(rd)
	}
	if rd.Y() < 0 {
		col = s.ocean(rd, col)
	}
	return s.post(col, fx, fy, u, v)
}

func (s *Shader) post(col mgl32.Vec3, fx, fy, u, v float32) mgl32.Vec3 {
	l := &s.light
	g := FilmGrain(fx, fy, s.u.Time) * l.grain
	col = col.Add(mgl32.Vec3{g, g, g})

	c := l.contrast
	col = mgl32.Vec3{(col[0]-0.5)*c + 0.5, (col[1]-0.5)*c + 0.5, (col[2]-0.5)*c + 0.5}

	vig := Smoothstep(1.6, 0.5, sqrt(u*u+v*v))
	col = col.Mul(mix(1, vig, 1-l.vigStrength))

	d := dither(fx, fy)
	return col.Add(mgl32.Vec3{d, d, d})
}
