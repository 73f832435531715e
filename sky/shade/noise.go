package shade

import "github.com/go-gl/mathgl/mgl32"

const fbmOctaves = 5

// hash12 maps a 2D lattice point to [0,1).
func hash12(x, y float32) float32 {
	p0 := fract(x * .1031)
	p1 := fract(y * .1031)
	p2 := fract(x * .1031)
	d := p0*(p1+33.33) + p1*(p2+33.33) + p2*(p0+33.33)
	p0 += d
	p1 += d
	p2 += d
	return fract((p0 + p1) * p2)
}

// FilmGrain returns centered white noise in [-0.5, 0.5) for a fragment
// coordinate, reseeded by t.
func FilmGrain(x, y, t float32) float32 {
	return grainNoise(x, y, t) - 0.5
}

func grainNoise(x, y, t float32) float32 {
	off := fract(t * 123.456)
	return fract(sin((x+off)*12.9898+(y+off)*78.233) * 43758.5453)
}

func dither(x, y float32) float32 {
	return (fract(sin(x*12.9898+y*78.233)*43758.5453) - 0.5) / 255
}

func permute(x float32) float32 { return glmod((x*34+1)*x, 289) }

// snoise3 is 3D simplex noise in roughly [-1, 1].
func snoise3(v mgl32.Vec3) float32 {
	const (
		c0 = 1.0 / 6.0
		c1 = 1.0 / 3.0
	)

	s := (v[0] + v[1] + v[2]) * c1
	i := mgl32.Vec3{floor(v[0] + s), floor(v[1] + s), floor(v[2] + s)}
	t := (i[0] + i[1] + i[2]) * c0
	x0 := mgl32.Vec3{v[0] - i[0] + t, v[1] - i[1] + t, v[2] - i[2] + t}

	g := mgl32.Vec3{step(x0[1], x0[0]), step(x0[2], x0[1]), step(x0[0], x0[2])}
	l := mgl32.Vec3{1 - g[0], 1 - g[1], 1 - g[2]}
	i1 := mgl32.Vec3{min(g[0], l[2]), min(g[1], l[0]), min(g[2], l[1])}
	i2 := mgl32.Vec3{max(g[0], l[2]), max(g[1], l[0]), max(g[2], l[1])}

	corners := [4]mgl32.Vec3{
		x0,
		{x0[0] - i1[0] + c0, x0[1] - i1[1] + c0, x0[2] - i1[2] + c0},
		{x0[0] - i2[0] + c1, x0[1] - i2[1] + c1, x0[2] - i2[2] + c1},
		{x0[0] - 0.5, x0[1] - 0.5, x0[2] - 0.5},
	}
	offsets := [4]mgl32.Vec3{{}, i1, i2, {1, 1, 1}}

	i = mgl32.Vec3{glmod(i[0], 289), glmod(i[1], 289), glmod(i[2], 289)}

	// ns = (2/7, 0.5/7 - 1, 1/7)
	const (
		nsx = 2.0 / 7.0
		nsy = 0.5/7.0 - 1
		nsz = 1.0 / 7.0
	)

	var total float32
	for k := 0; k < 4; k++ {
		o := offsets[k]
		p := permute(permute(permute(i[2]+o[2])+i[1]+o[1]) + i[0] + o[0])

		j := p - 49*floor(p*nsz*nsz)
		xf := floor(j * nsz)
		yf := floor(j - 7*xf)
		gx := xf*nsx + nsy
		gy := yf*nsx + nsy
		h := 1 - abs(gx) - abs(gy)

		// Fold the octahedron onto the lower half.
		if h <= 0 {
			gx -= floor(gx)*2 + 1
			gy -= floor(gy)*2 + 1
		}
		grad := mgl32.Vec3{gx, gy, h}
		grad = grad.Mul(1 / sqrt(grad.Dot(grad)))

		x := corners[k]
		m := max(0.6-x.Dot(x), 0)
		m *= m
		total += m * m * grad.Dot(x)
	}
	return 42 * total
}

// fbm sums five octaves of simplex noise over (uv·freq, t·0.1) and
// remaps the result around 0.5.
func fbm(u, v, t float32) float32 {
	var total float32
	amp := float32(0.3)
	freq := float32(1)
	tz := t * 0.1
	for i := 0; i < fbmOctaves; i++ {
		total += snoise3(mgl32.Vec3{u * freq, v * freq, tz}) * amp
		freq *= 1.9
		amp *= 0.5
	}
	return total*0.7 + 0.5
}
