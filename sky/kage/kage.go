// Package kage holds the GPU programs for the sky and the film-grain
// overlay, plus the uniform maps they expect.
package kage

import (
	_ "embed"

	"skyline/sky/orbit"
	"skyline/sky/shade"
)

//go:embed sky_shader.go
var SkySource []byte

//go:embed grain_shader.go
var GrainSource []byte

// SkyUniforms maps frame inputs to the sky program uniforms. The moon
// texture is bound as source image 0 by the caller.
func SkyUniforms(u shade.Uniforms) map[string]any {
	stars := make([]float32, 0, orbit.StarCount*3)
	for _, s := range u.Stars {
		stars = append(stars, s[0], s[1], s[2])
	}
	n := min(len(u.Satellites), orbit.MaxSatellites)
	sats := make([]float32, orbit.MaxSatellites*3)
	for i := 0; i < n; i++ {
		copy(sats[i*3:], u.Satellites[i][:])
	}
	return map[string]any{
		"Time":       u.Time,
		"Resolution": []float32{float32(u.Width), float32(u.Height)},
		"Cursor":     []float32{u.CursorX, u.CursorY},
		"Stars":      stars,
		"Sats":       sats,
		"SatCount":   float32(n),
		"Hour":       u.Hour,
	}
}

// GrainUniforms maps the overlay inputs to the grain program uniforms.
func GrainUniforms(t, opacity float32) map[string]any {
	return map[string]any{
		"Time":    t,
		"Opacity": opacity,
	}
}
