package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyline/sky/view"
)

const (
	bgCloudCeiling = 4000
	fgCloudCeiling = 1500
)

func (s *Shader) sky(rd mgl32.Vec3) mgl32.Vec3 {
	l := &s.light
	t := s.u.Time

	su, sv := atan2(rd.X(), rd.Z()), rd.Y()
	bg := fbm(su*1.5, sv*1.5, t*0.2)
	col := mix3(l.Horizon, l.SkyBase, sqrt(max(0, rd.Y()))+bg*0.05)

	if l.Night > 0.01 {
		stars := starfield(su*2.5, sv*2.5, t) * Smoothstep(0, 0.3, rd.Y())
		col = col.Add(starTintV.Mul(stars * l.Night))
		col = col.Add(s.namedStars(rd).Mul(l.Night))
		col = col.Add(white.Mul(s.satellites(rd) * l.Night))
	}

	col = col.Add(s.sun(rd))
	col = s.moon(rd, col)

	if rd.Y() > 0.01 {
		col = s.clouds(rd, col)
	}
	return col
}

// starfield is a hashed three-scale grid of twinkling points.
func starfield(u, v, t float32) float32 {
	var total float32
	for i := 0; i < 3; i++ {
		scale := 10 + float32(i)*10
		px, py := u*scale, v*scale
		idx, idy := floor(px), floor(py)
		gx, gy := px-idx-0.5, py-idy-0.5

		rnd := hash12(idx, idy)
		if rnd <= 0.99 {
			continue
		}
		ox := (hash12(idx*24, idy*24) - 0.5) * 0.6
		oy := (hash12(idx*34, idy*34) - 0.5) * 0.6
		dx, dy := gx-ox, gy-oy
		dist := sqrt(dx*dx + dy*dy)

		star := 1 / (dist*25 + 0.1)
		star *= star
		star *= rnd * rnd
		twinkle := sin(t*(0.5+rnd*5)+rnd*100)*0.5 + 0.5
		star *= mix(0.6, 1.2, twinkle)
		total += star / float32(i+1)
	}
	return total
}

func (s *Shader) namedStars(rd mgl32.Vec3) mgl32.Vec3 {
	var acc mgl32.Vec3
	for _, p := range s.u.Stars {
		d := rd.Dot(p)
		if d <= 0.99994 {
			continue
		}
		core := step(0.99998, d)
		ring := Smoothstep(0.9996, 0.99975, d) * (1 - Smoothstep(0.99975, 0.9999, d))
		acc = acc.Add(namedStarV.Mul(ring * 0.5)).Add(white.Mul(core * 1.5))
	}
	return acc
}

// satellites draws each satellite as a pulsing point that fades out near
// the horizon.
func (s *Shader) satellites(rd mgl32.Vec3) float32 {
	var acc float32
	for i, p := range s.u.Satellites {
		spot := Smoothstep(0.99999, 0.999999, rd.Dot(p))
		if spot == 0 {
			continue
		}
		lt := s.u.Time + float32(i)*0.4
		pulse := pow(0.5+0.5*sin(lt*8), 6)
		acc += spot * pulse * Smoothstep(0, 0.1, p.Y())
	}
	return acc
}

func (s *Shader) sun(rd mgl32.Vec3) mgl32.Vec3 {
	l := &s.light
	var col mgl32.Vec3
	d := rd.Dot(l.Sun)
	if d > 0.999 && rd.Y() > 0 {
		core := Smoothstep(0.999, 0.999+l.sunEdge, d)
		col = col.Add(l.sunColor.Mul(core * 5))
	}
	if rd.Y() > -0.01 {
		glow := pow(max(0, d), 500) * 0.6
		col = col.Add(l.glowColor.Mul(glow * l.glowReduction))
	}
	return col
}

func (s *Shader) moon(rd, col mgl32.Vec3) mgl32.Vec3 {
	l := &s.light
	d := rd.Dot(l.Moon)
	glow := pow(max(0, d), 150) * 0.4
	col = col.Add(moonGlowV.Mul(glow * l.Night * l.moonAlpha))

	if d <= 0 || l.Night <= 0.01 || d <= l.moonSize || s.u.Moon == nil {
		return col
	}
	mu := rd.Dot(l.moonRight)/l.moonScale + 0.5
	mv := rd.Dot(l.moonUp)/l.moonScale + 0.5
	if mu < 0 || mu > 1 || mv < 0 || mv > 1 {
		return col
	}
	tex := s.u.Moon.Sample(mu, mv)
	return mix3(col, tex.Vec3(), tex.W()*l.Night*l.moonAlpha)
}

func (s *Shader) clouds(rd, col mgl32.Vec3) mgl32.Vec3 {
	l := &s.light
	t := s.u.Time
	eye := view.Eye

	tBG := (bgCloudCeiling - eye.Y()) / rd.Y()
	bx := (eye.X()+tBG*rd.X())*0.0001 - t*0.005
	bz := (eye.Z()+tBG*rd.Z())*0.0001 - t*0.0025
	nBG := fbm(bx, bz, t*0.8)
	densBG := Smoothstep(0.3, 1, nBG) * 0.5
	densBG *= 1 - Smoothstep(5000, 80000/l.fogDivisor, tBG)
	col = mix3(col, l.bgCloud, densBG)

	tFG := (fgCloudCeiling - eye.Y()) / rd.Y()
	fx := (eye.X()+tFG*rd.X())*0.0001 - t*0.01
	fz := (eye.Z()+tFG*rd.Z())*0.0001 - t*0.01
	nFG := fbm(fx, fz, t)
	densFG := Smoothstep(0.45, 0.85, nFG)
	densFG *= 1 - Smoothstep(1000, 25000/l.fogDivisor, tFG)

	night := mix3(cloudNightLoV, cloudNightHiV, nFG)
	day := mix3(cloudDayLoV, cloudDayHiV, nFG)
	if l.duskClouds {
		day = mgl32.Vec3{day[0] * duskTintV[0], day[1] * duskTintV[1], day[2] * duskTintV[2]}
	}
	return mix3(col, mix3(night, day, l.Day), densFG)
}
