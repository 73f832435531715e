package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyline/sky/view"
)

// ocean shades rays below the horizon. sky is the colour already computed
// for rays in the blend band just under the horizon.
func (s *Shader) ocean(rd, sky mgl32.Vec3) mgl32.Vec3 {
	l := &s.light
	eye := view.Eye
	t := s.u.Time

	dist := -eye.Y() / rd.Y()
	if dist <= 0 {
		return sky
	}
	ou := (eye.X()+dist*rd.X())*0.006 + t*0.2
	ov := (eye.Z()+dist*rd.Z())*0.006 + t*0.2

	wave := fbm(ou, ov, t*2.8)
	foamMask := Smoothstep(0.65, 0.92, wave)
	var foamAmt float32
	if foamMask > 0 {
		foamAmt = foamMask * Smoothstep(0.4, 0.8, fbm(ou*4, ov*4, t*5.5))
	}

	n := mgl32.Vec3{wave * 0.04, 1, wave * 0.04}.Normalize()
	half := l.lightDir.Sub(rd).Normalize()
	spec := pow(max(0, n.Dot(half)), 45)
	spec *= Smoothstep(0.3, 1, wave)
	spec *= 0.6 * l.lightLevel

	water := mix3(l.waterDeep, l.waterSurf, wave)
	water = mix3(water, l.waterTint, l.reflection)
	water = water.Add(l.specColor.Mul(spec))
	water = mix3(water, l.foamColor, foamAmt*0.8)

	fog := 1 - exp(-dist*0.00005)
	out := mix3(water, l.Horizon, fog*0.95)

	if rd.Y() > -0.05 {
		return mix3(out, sky, Smoothstep(-0.05, 0, rd.Y()))
	}
	return out
}
