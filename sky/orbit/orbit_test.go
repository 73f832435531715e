package orbit

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestOrbitUnitLength(t *testing.T) {
	for _, speed := range []float32{0.04, 0.045, 0.05, 1, 7.5} {
		for _, phase := range []float32{0, 200, 400} {
			for ti := 0; ti < 2000; ti++ {
				tt := float32(ti) * 0.37
				v := Orbit(tt, phase, speed)
				if l := v.Len(); math.Abs(float64(l)-1) > 1e-5 {
					t.Fatalf("Orbit(%v,%v,%v) len=%v", tt, phase, speed, l)
				}
			}
		}
	}
}

func TestOrbitMostlyAboveHorizon(t *testing.T) {
	// y = 0.5 + 0.3cos(..) >= 0.2 before normalization.
	for ti := 0; ti < 500; ti++ {
		v := Orbit(float32(ti), 0, 0.05)
		if v.Y() <= 0 {
			t.Fatalf("t=%d y=%v, want > 0", ti, v.Y())
		}
	}
}

func TestCatalogStarsFixedAndNormalized(t *testing.T) {
	c := NewCatalog(newRand(1), 2)
	before := c.StarPositions()
	c.Update(1234.5)
	after := c.StarPositions()
	if before != after {
		t.Fatalf("stars moved: %v -> %v", before, after)
	}
	for i, p := range after {
		if l := p.Len(); math.Abs(float64(l)-1) > 1e-6 {
			t.Fatalf("star %d len=%v", i, l)
		}
	}
	want := mgl32.Vec3{0.2, 0.6, 0.7}.Normalize()
	if !after[0].ApproxEqual(want) {
		t.Fatalf("star 0 = %v, want %v", after[0], want)
	}
}

func TestCatalogSatellites(t *testing.T) {
	c := NewCatalog(newRand(7), 2)
	if c.Satellites() != 2 {
		t.Fatalf("satellites=%d", c.Satellites())
	}
	bodies := c.Bodies()
	if len(bodies) != StarCount+2 {
		t.Fatalf("bodies=%d", len(bodies))
	}
	seen := map[string]bool{}
	for i, b := range bodies[StarCount:] {
		if b.Kind != Satellite {
			t.Fatalf("body %d kind=%s", i, b.Kind)
		}
		if b.Speed < minSpeed || b.Speed >= minSpeed+speedRange {
			t.Fatalf("speed %v out of range", b.Speed)
		}
		if b.Phase != float32(i)*phaseSpacing {
			t.Fatalf("phase %v", b.Phase)
		}
		if seen[b.Name] {
			t.Fatalf("duplicate name %q", b.Name)
		}
		seen[b.Name] = true
	}

	c.Update(50)
	pos := c.SatellitePositions(nil)
	for i, p := range pos {
		b := bodies[StarCount+i]
		if !p.ApproxEqual(Orbit(50, b.Phase, b.Speed)) {
			t.Fatalf("satellite %d not at orbit position", i)
		}
	}
}

func TestCatalogDeterministicWithSeed(t *testing.T) {
	a := NewCatalog(newRand(42), 3).Bodies()
	b := NewCatalog(newRand(42), 3).Bodies()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCatalogClampsCount(t *testing.T) {
	if n := NewCatalog(newRand(1), 99).Satellites(); n != MaxSatellites {
		t.Fatalf("n=%d, want %d", n, MaxSatellites)
	}
	if n := NewCatalog(newRand(1), -3).Satellites(); n != 0 {
		t.Fatalf("n=%d, want 0", n)
	}
}
