//go:build ignore

//kage:unit pixels

package main

// Uniform variables.
var Time float
var Resolution vec2
var Cursor vec2
var Stars [3]vec3
var Sats [10]vec3
var SatCount float
var Hour float

func hash12(p vec2) float {
	p3 := fract(vec3(p.x, p.y, p.x) * 0.1031)
	p3 += dot(p3, p3.yzx+33.33)
	return fract((p3.x + p3.y) * p3.z)
}

func filmGrain(p vec2, t float) float {
	off := fract(t * 123.456)
	n := fract(sin(dot(p+off, vec2(12.9898, 78.233))) * 43758.5453)
	return n - 0.5
}

func permute(x vec4) vec4 {
	return mod((x*34.0+1.0)*x, vec4(289.0))
}

func snoise3(v vec3) float {
	C := vec2(1.0/6.0, 1.0/3.0)
	D := vec4(0.0, 0.5, 1.0, 2.0)

	i := floor(v + dot(v, C.yyy))
	x0 := v - i + dot(i, C.xxx)

	g := step(x0.yzx, x0.xyz)
	l := 1.0 - g
	i1 := min(g.xyz, l.zxy)
	i2 := max(g.xyz, l.zxy)

	x1 := x0 - i1 + C.xxx
	x2 := x0 - i2 + C.yyy
	x3 := x0 - D.yyy

	i = mod(i, vec3(289.0))
	p := permute(permute(permute(
		i.z+vec4(0.0, i1.z, i2.z, 1.0))+
		i.y+vec4(0.0, i1.y, i2.y, 1.0))+
		i.x+vec4(0.0, i1.x, i2.x, 1.0))

	n_ := 1.0 / 7.0
	ns := n_*D.wyz - D.xzx

	j := p - 49.0*floor(p*ns.z*ns.z)
	x_ := floor(j * ns.z)
	y_ := floor(j - 7.0*x_)

	x := x_*ns.x + ns.yyyy
	y := y_*ns.x + ns.yyyy
	h := 1.0 - abs(x) - abs(y)

	b0 := vec4(x.xy, y.xy)
	b1 := vec4(x.zw, y.zw)
	s0 := floor(b0)*2.0 + 1.0
	s1 := floor(b1)*2.0 + 1.0
	sh := -step(h, vec4(0.0))

	a0 := b0.xzyw + s0.xzyw*sh.xxyy
	a1 := b1.xzyw + s1.xzyw*sh.zzww

	p0 := vec3(a0.xy, h.x)
	p1 := vec3(a0.zw, h.y)
	p2 := vec3(a1.xy, h.z)
	p3 := vec3(a1.zw, h.w)

	norm := inversesqrt(vec4(dot(p0, p0), dot(p1, p1), dot(p2, p2), dot(p3, p3)))
	p0 *= norm.x
	p1 *= norm.y
	p2 *= norm.z
	p3 *= norm.w

	m := max(0.6-vec4(dot(x0, x0), dot(x1, x1), dot(x2, x2), dot(x3, x3)), vec4(0.0))
	m = m * m
	return 42.0 * dot(m*m, vec4(dot(p0, x0), dot(p1, x1), dot(p2, x2), dot(p3, x3)))
}

func fbm3(uv vec2, t float) float {
	total := 0.0
	amplitude := 0.3
	frequency := 1.0
	for i := 0; i < 5; i++ {
		total += snoise3(vec3(uv*frequency, t*0.1)) * amplitude
		frequency *= 1.9
		amplitude *= 0.5
	}
	return total*0.7 + 0.5
}

func starfield(uv vec2, t float) float {
	total := 0.0
	for i := 0; i < 3; i++ {
		fi := float(i)
		p := uv * (10.0 + fi*10.0)
		id := floor(p)
		gv := fract(p) - 0.5
		rnd := hash12(id)
		if rnd > 0.99 {
			offset := (vec2(hash12(id*24.0), hash12(id*34.0)) - 0.5) * 0.6
			dist := length(gv - offset)
			star := 1.0 / (dist*25.0 + 0.1)
			star *= star
			star *= rnd * rnd
			twinkle := sin(t*(0.5+rnd*5.0)+rnd*100.0)*0.5 + 0.5
			star *= mix(0.6, 1.2, twinkle)
			total += star / (fi + 1.0)
		}
	}
	return total
}

func satellites(rd vec3, t float) float {
	acc := 0.0
	for i := 0; i < 10; i++ {
		if float(i) < SatCount {
			pos := Sats[i]
			spot := smoothstep(0.99999, 0.999999, dot(rd, pos))
			pulse := pow(0.5+0.5*sin((t+float(i)*0.4)*8.0), 6.0)
			acc += spot * pulse * smoothstep(0.0, 0.1, pos.y)
		}
	}
	return acc
}

func moonTexel(uv vec2) vec4 {
	c := imageSrc0At(imageSrc0Origin() + uv*imageSrc0Size())
	if c.a > 0.0 {
		return vec4(c.rgb/c.a, c.a)
	}
	return c
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	pos := dstPos.xy - imageDstOrigin()
	frag := vec2(pos.x, Resolution.y-pos.y)
	uv := (frag - 0.5*Resolution) / Resolution.y
	ro := vec3(0.0, 800.0, 0.0)

	yaw := Cursor.x * 3.5
	pitch := -Cursor.y * 1.5
	f := normalize(vec3(cos(pitch)*sin(yaw), sin(pitch), cos(pitch)*cos(yaw)))
	r := normalize(cross(vec3(0.0, 1.0, 0.0), f))
	u := cross(f, r)
	rd := normalize(f + uv.x*r + uv.y*u)

	sunAngle := (Hour - 6.0) / 24.0 * 2.0 * 3.14159265
	sunPos := normalize(vec3(0.0, sin(sunAngle), cos(sunAngle)))
	moonAngle := (Hour - 18.0) / 24.0 * 2.0 * 3.14159265
	moonPos := normalize(vec3(0.2, sin(moonAngle), cos(moonAngle)))

	day := smoothstep(-0.2, 0.2, sunPos.y)
	night := 1.0 - day
	cinematic := smoothstep(-0.35, 0.15, sunPos.y)

	nightSky := vec3(0.0, 0.015, 0.04)
	daySky := vec3(0.3, 0.6, 0.9)
	sunset := vec3(1.0, 0.2, 0.05)
	horizonNight := vec3(0.08, 0.12, 0.25)
	horizonDay := vec3(0.6, 0.8, 0.95)

	sunH := smoothstep(0.4, -0.15, abs(sunPos.y))
	horizon := mix(mix(horizonNight, horizonDay, day), sunset, sunH*0.85)

	col := vec3(0.0)

	if rd.y >= -0.05 {
		skyBase := mix(nightSky, daySky, day)
		skyUV := vec2(atan2(rd.x, rd.z), rd.y)
		bg := fbm3(skyUV*1.5, Time*0.2)
		sky := mix(horizon, skyBase, sqrt(max(0.0, rd.y))+bg*0.05)

		if night > 0.01 {
			stars := starfield(skyUV*2.5, Time) * smoothstep(0.0, 0.3, rd.y)
			sky += vec3(stars) * vec3(0.8, 0.9, 1.0) * night

			for i := 0; i < 3; i++ {
				d := dot(rd, Stars[i])
				if d > 0.99994 {
					core := step(0.99998, d)
					ring := smoothstep(0.9996, 0.99975, d) * (1.0 - smoothstep(0.99975, 0.9999, d))
					sky += (vec3(0.9, 0.5, 1.0)*ring*0.5 + vec3(1.0)*core*1.5) * night
				}
			}
			sky += vec3(1.0) * satellites(rd, Time) * night
		}

		sunDot := dot(rd, sunPos)
		if sunDot > 0.999 && rd.y > 0.0 {
			redness := smoothstep(0.3, 0.0, sunPos.y)
			width := mix(0.0008, 0.005, redness)
			core := smoothstep(0.999, 0.999+width, sunDot)
			sky += mix(vec3(1.0, 0.95, 0.8), vec3(1.0, 0.05, 0.0), redness) * core * 5.0
		}
		if rd.y > -0.01 {
			glow := pow(max(0.0, sunDot), 500.0) * 0.6
			glowRed := smoothstep(0.4, 0.0, sunPos.y)
			glowColor := mix(vec3(1.0, 0.8, 0.6), vec3(1.0, 0.2, 0.05), glowRed)
			sky += glowColor * glow * (1.0 - smoothstep(0.8, 1.0, glowRed))
		}

		moonH := smoothstep(-0.05, 0.4, moonPos.y)
		moonSize := mix(0.998, 0.990, moonH)
		moonScale := mix(0.06, 0.14, moonH)
		moonAlpha := smoothstep(0.0, 0.25, moonPos.y)
		moonDot := dot(rd, moonPos)
		sky += vec3(0.6, 0.7, 0.9) * pow(max(0.0, moonDot), 150.0) * 0.4 * night * moonAlpha

		if moonDot > moonSize && night > 0.01 {
			right := normalize(cross(moonPos, vec3(0.0, 1.0, 0.0)))
			realUp := cross(right, moonPos)
			moonUV := vec2(dot(rd, right), dot(rd, realUp))/moonScale + 0.5
			if moonUV.x >= 0.0 && moonUV.x <= 1.0 && moonUV.y >= 0.0 && moonUV.y <= 1.0 {
				tex := moonTexel(moonUV)
				sky = mix(sky, tex.rgb, tex.a*night*moonAlpha)
			}
		}

		if rd.y > 0.01 {
			fogMod := mix(1.0, 0.3, day)

			tBG := (4000.0 - ro.y) / rd.y
			posBG := ro + tBG*rd
			uvBG := posBG.xz*0.0001 + vec2(-Time*0.005, -Time*0.0025)
			nBG := fbm3(uvBG, Time*0.8)
			densBG := smoothstep(0.3, 1.0, nBG) * 0.5
			densBG *= 1.0 - smoothstep(5000.0, 80000.0/fogMod, tBG)
			sky = mix(sky, mix(vec3(0.15, 0.18, 0.35), vec3(0.9, 0.95, 1.0), day*0.8), densBG)

			tFG := (1500.0 - ro.y) / rd.y
			posFG := ro + tFG*rd
			uvFG := posFG.xz*0.0001 + vec2(-Time*0.01, -Time*0.01)
			nFG := fbm3(uvFG, Time)
			densFG := smoothstep(0.45, 0.85, nFG)
			densFG *= 1.0 - smoothstep(1000.0, 25000.0/fogMod, tFG)

			cloudNight := mix(vec3(0.04, 0.05, 0.22), vec3(0.28, 0.32, 0.45), nFG)
			cloudDay := mix(vec3(0.8, 0.8, 0.9), vec3(1.0), nFG)
			if day < 0.5 && day > 0.0 {
				cloudDay *= vec3(1.0, 0.6, 0.6)
			}
			sky = mix(sky, mix(cloudNight, cloudDay, day), densFG)
		}
		col = sky
	}

	if rd.y < 0.0 {
		dist := -ro.y / rd.y
		if dist > 0.0 {
			p := ro + dist*rd
			oceanUV := p.xz*0.006 + Time*0.2
			wave := fbm3(oceanUV, Time*2.8)
			foamMask := smoothstep(0.65, 0.92, wave)
			foamFinal := foamMask * smoothstep(0.4, 0.8, fbm3(oceanUV*4.0, Time*5.5))

			n := normalize(vec3(wave*0.04, 1.0, wave*0.04))
			lightDir := sunPos
			lightLevel := day
			objectH := abs(sunPos.y)
			if night > 0.5 {
				lightDir = moonPos
				lightLevel = 0.8
				objectH = abs(moonPos.y)
			}
			halfDir := normalize(lightDir - rd)
			spec := pow(max(0.0, dot(n, halfDir)), 45.0)
			spec *= smoothstep(0.3, 1.0, wave) * 0.6 * lightLevel

			waterDay := smoothstep(0.05, 0.5, sunPos.y)
			deep := mix(vec3(0.0, 0.002, 0.005), vec3(0.0, 0.08, 0.25), waterDay)
			surf := mix(vec3(0.0, 0.01, 0.03), vec3(0.0, 0.25, 0.45), waterDay)

			water := mix(deep, surf, wave)
			water = mix(water, horizon*0.6, smoothstep(0.6, 0.0, objectH)*0.8)

			specSun := mix(vec3(1.0, 0.9, 0.6), vec3(1.0, 0.3, 0.1), smoothstep(0.3, 0.0, sunPos.y))
			water += mix(specSun, vec3(0.6, 0.7, 0.9), night) * spec

			foam := mix(vec3(0.98, 0.99, 1.0), sunset, sunH*smoothstep(-0.15, 0.1, sunPos.y))
			water = mix(water, foam, foamFinal*0.8)

			fog := 1.0 - exp(-dist*0.00005)
			ocean := mix(water, horizon, fog*0.95)
			if rd.y > -0.05 {
				col = mix(ocean, col, smoothstep(-0.05, 0.0, rd.y))
			} else {
				col = ocean
			}
		}
	}

	col += filmGrain(frag, Time) * mix(0.05, 0.075, cinematic)
	col = (col-0.5)*mix(1.0, 1.35, cinematic) + 0.5
	vig := smoothstep(1.6, 0.5, length(uv))
	col *= mix(1.0, vig, 1.0-mix(0.6, 0.65, cinematic))
	col += (fract(sin(dot(frag, vec2(12.9898, 78.233)))*43758.5453) - 0.5) / 255.0

	return vec4(clamp(col, vec3(0.0), vec3(1.0)), 1.0)
}
