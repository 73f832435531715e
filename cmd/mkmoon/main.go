// Command mkmoon generates the moon surface texture: a grey disc with
// maria, craters and a soft limb on a transparent background.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	highland = colorful.Color{R: 0.86, G: 0.85, B: 0.82}
	mare     = colorful.Color{R: 0.42, G: 0.42, B: 0.45}
	ejecta   = colorful.Color{R: 0.97, G: 0.96, B: 0.94}
)

type crater struct {
	x, y, r float64
}

func main() {
	var (
		outPath = flag.String("out", "assets/moon.png", "Output PNG.")
		size    = flag.Int("size", 256, "Edge of the square texture in pixels.")
		seed    = flag.Uint64("seed", 1, "Surface seed.")
		craters = flag.Int("craters", 40, "Number of craters.")
		maria   = flag.Int("maria", 5, "Number of dark plains.")
	)
	flag.Parse()

	if *size < 8 || *size > 4096 {
		fatalf("size out of range: %d", *size)
	}
	img := render(*size, *seed, *craters, *maria)
	if err := writePNG(*outPath, img); err != nil {
		fatalf("write: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// render draws the disc. Coordinates are normalized so the disc has
// radius 1 around the image center.
func render(size int, seed uint64, nCraters, nMaria int) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))

	plains := make([]crater, nMaria)
	for i := range plains {
		plains[i] = crater{x: rng.Float64()*1.2 - 0.6, y: rng.Float64()*1.2 - 0.6, r: 0.2 + rng.Float64()*0.3}
	}
	pits := make([]crater, nCraters)
	for i := range pits {
		// Small craters are far more common than large ones.
		r := 0.02 + math.Pow(rng.Float64(), 3)*0.18
		pits[i] = crater{x: rng.Float64()*2 - 1, y: rng.Float64()*2 - 1, r: r}
	}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x := (float64(px) + 0.5 - half) / half
			y := (float64(py) + 0.5 - half) / half
			d := math.Hypot(x, y)
			if d > 1 {
				continue
			}

			dark := 0.0
			for _, m := range plains {
				dark = math.Max(dark, falloff(math.Hypot(x-m.x, y-m.y)/m.r))
			}
			c := highland.BlendLab(mare, dark*0.85)

			shade := 1.0
			for _, p := range pits {
				k := math.Hypot(x-p.x, y-p.y) / p.r
				switch {
				case k < 0.8:
					shade -= 0.18 * (1 - k/0.8)
				case k < 1.2:
					c = c.BlendLab(ejecta, 0.35*(1-math.Abs(k-1)/0.2))
				}
			}
			shade *= 0.9 + 0.1*grain(px, py, seed)
			// Limb darkening.
			shade *= 0.55 + 0.45*math.Sqrt(1-d*d)

			r, g, b := clamp01(c.R*shade), clamp01(c.G*shade), clamp01(c.B*shade)
			a := clamp01((1 - d) * half)
			img.SetNRGBA(px, py, color.NRGBA{
				R: uint8(r*255 + 0.5),
				G: uint8(g*255 + 0.5),
				B: uint8(b*255 + 0.5),
				A: uint8(a*255 + 0.5),
			})
		}
	}
	return img
}

func falloff(k float64) float64 {
	if k >= 1 {
		return 0
	}
	t := 1 - k
	return t * t * (3 - 2*t)
}

func grain(x, y int, seed uint64) float64 {
	h := uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f ^ seed
	h ^= h >> 31
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 29
	return float64(h>>11) / (1 << 53)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
