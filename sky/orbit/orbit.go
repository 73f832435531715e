// Package orbit computes directions of the labelled bodies on the sky sphere.
//
// Every position is a unit vector seen from the observer. Stars are fixed at
// construction; satellites follow a closed orbit that is a pure function of
// simulation time, so the renderer and the label projector always agree.
package orbit

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind distinguishes fixed stars from orbiting satellites.
type Kind uint8

const (
	Star Kind = iota
	Satellite
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Satellite:
		return "satellite"
	default:
		return "unknown"
	}
}

// MaxSatellites bounds the satellite count so the shading program can use
// fixed-size uniform arrays.
const MaxSatellites = 10

const (
	minSpeed     = 0.04
	speedRange   = 0.01
	phaseSpacing = 200
)

// Body is a labelled object on the sky sphere.
type Body struct {
	Name  string
	Kind  Kind
	Pos   mgl32.Vec3
	Phase float32
	Speed float32
}

// Orbit returns the direction of a satellite at simulation time t.
func Orbit(t, phase, speed float32) mgl32.Vec3 {
	angle := float64((t + phase) * speed)
	v := mgl32.Vec3{
		float32(math.Sin(angle)),
		float32(0.5 + 0.3*math.Cos(0.7*angle)),
		float32(math.Cos(angle)),
	}
	return v.Normalize()
}

var starDefs = []struct {
	name string
	dir  mgl32.Vec3
}{
	{"Epsilon Aurigae", mgl32.Vec3{0.2, 0.6, 0.7}},
	{"Capella", mgl32.Vec3{-0.3, 0.7, 0.5}},
	{"Hassaleh", mgl32.Vec3{0.5, 0.4, -0.6}},
}

// StarCount is the number of named stars in every catalog.
const StarCount = 3

var satelliteNames = []string{
	"ISS", "Tiangong", "Hubble Space Telescope", "Envisat",
	"Lacrosse 5", "Terra", "Aqua", "Landsat 8",
	"NOAA-15", "NOAA-19", "Cosmos 2227",
}

// Catalog holds the named stars and the satellites.
type Catalog struct {
	stars      []Body
	satellites []Body
}

// NewCatalog builds the fixed stars and n satellites. Names, speeds and
// phases are drawn from rng once; n is clamped to [0, MaxSatellites].
func NewCatalog(rng *rand.Rand, n int) *Catalog {
	if n < 0 {
		n = 0
	}
	if n > MaxSatellites {
		n = MaxSatellites
	}

	c := &Catalog{
		stars:      make([]Body, 0, len(starDefs)),
		satellites: make([]Body, 0, n),
	}
	for _, d := range starDefs {
		c.stars = append(c.stars, Body{
			Name: d.name,
			Kind: Star,
			Pos:  d.dir.Normalize(),
		})
	}

	order := rng.Perm(len(satelliteNames))
	for i := 0; i < n; i++ {
		c.satellites = append(c.satellites, Body{
			Name:  satelliteNames[order[i%len(order)]],
			Kind:  Satellite,
			Phase: float32(i) * phaseSpacing,
			Speed: minSpeed + rng.Float32()*speedRange,
		})
	}
	c.Update(0)
	return c
}

// Update recomputes satellite positions for simulation time t.
func (c *Catalog) Update(t float32) {
	for i := range c.satellites {
		s := &c.satellites[i]
		s.Pos = Orbit(t, s.Phase, s.Speed)
	}
}

// Bodies returns stars followed by satellites. The slice is freshly
// allocated; callers may keep it.
func (c *Catalog) Bodies() []Body {
	out := make([]Body, 0, len(c.stars)+len(c.satellites))
	out = append(out, c.stars...)
	out = append(out, c.satellites...)
	return out
}

// StarPositions returns the named star directions.
func (c *Catalog) StarPositions() [StarCount]mgl32.Vec3 {
	var out [StarCount]mgl32.Vec3
	for i := range c.stars {
		out[i] = c.stars[i].Pos
	}
	return out
}

// SatellitePositions appends the current satellite directions to dst.
func (c *Catalog) SatellitePositions(dst []mgl32.Vec3) []mgl32.Vec3 {
	for _, s := range c.satellites {
		dst = append(dst, s.Pos)
	}
	return dst
}

// Satellites returns the number of satellites.
func (c *Catalog) Satellites() int { return len(c.satellites) }
