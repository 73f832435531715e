package shade

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lighting holds everything that depends only on the time of day. It is
// computed once per frame and shared by every pixel.
type Lighting struct {
	Sun  mgl32.Vec3
	Moon mgl32.Vec3

	Day       float32
	Night     float32
	Cinematic float32

	// Sunset is the horizon reddening, strongest with the sun at the
	// horizon.
	Sunset float32

	SkyBase mgl32.Vec3
	Horizon mgl32.Vec3

	sunRedness    float32
	sunEdge       float32
	sunColor      mgl32.Vec3
	glowColor     mgl32.Vec3
	glowReduction float32

	moonSize   float32
	moonScale  float32
	moonAlpha  float32
	moonRight  mgl32.Vec3
	moonUp     mgl32.Vec3
	fogDivisor float32
	bgCloud    mgl32.Vec3
	duskClouds bool

	waterDeep  mgl32.Vec3
	waterSurf  mgl32.Vec3
	waterTint  mgl32.Vec3
	reflection float32
	lightDir   mgl32.Vec3
	lightLevel float32
	specColor  mgl32.Vec3
	foamColor  mgl32.Vec3

	grain       float32
	contrast    float32
	vigStrength float32
}

// SunDirection returns the sun direction for hour. It rises in the east
// at 6 and peaks at 12.
func SunDirection(hour float32) mgl32.Vec3 {
	a := float64((hour - 6) / 24 * 2 * math.Pi)
	return mgl32.Vec3{0, float32(math.Sin(a)), float32(math.Cos(a))}.Normalize()
}

// MoonDirection returns the moon direction for hour; it trails the sun by
// half a day on a slightly tilted path.
func MoonDirection(hour float32) mgl32.Vec3 {
	a := float64((hour - 18) / 24 * 2 * math.Pi)
	return mgl32.Vec3{0.2, float32(math.Sin(a)), float32(math.Cos(a))}.Normalize()
}

// DayFactor is the day/night blend for a solar elevation.
func DayFactor(sunY float32) float32 { return Smoothstep(-0.2, 0.2, sunY) }

// CinematicFactor drives grain, contrast and vignette strength.
func CinematicFactor(sunY float32) float32 { return Smoothstep(-0.35, 0.15, sunY) }

// NewLighting evaluates the lighting model at hour.
func NewLighting(hour float32) Lighting {
	var l Lighting
	l.Sun = SunDirection(hour)
	l.Moon = MoonDirection(hour)
	sy := l.Sun.Y()

	l.Day = DayFactor(sy)
	l.Night = 1 - l.Day
	l.Cinematic = CinematicFactor(sy)
	l.Sunset = Smoothstep(0.4, -0.15, abs(sy))

	l.SkyBase = vec(blend(nightSky, daySky, l.Day))
	l.Horizon = vec(blend(blend(horizonNight, horizonDay, l.Day), sunset, l.Sunset*0.85))

	l.sunRedness = Smoothstep(0.3, 0, sy)
	l.sunEdge = mix(0.0008, 0.005, l.sunRedness)
	l.sunColor = vec(blend(sunDay, sunRed, l.sunRedness))
	glowRed := Smoothstep(0.4, 0, sy)
	l.glowColor = vec(blend(sunGlowDay, sunGlowRed, glowRed))
	l.glowReduction = 1 - Smoothstep(0.8, 1, glowRed)

	mh := Smoothstep(-0.05, 0.4, l.Moon.Y())
	l.moonSize = mix(0.998, 0.990, mh)
	l.moonScale = mix(0.06, 0.14, mh)
	l.moonAlpha = Smoothstep(0, 0.25, l.Moon.Y())
	l.moonRight = l.Moon.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	l.moonUp = l.moonRight.Cross(l.Moon)

	l.fogDivisor = mix(1, 0.3, l.Day)
	l.bgCloud = vec(blend(bgCloudNight, bgCloudDay, l.Day*0.8))
	l.duskClouds = l.Day > 0 && l.Day < 0.5

	waterDay := Smoothstep(0.05, 0.5, sy)
	l.waterDeep = vec(blend(waterDeepNight, waterDeepDay, waterDay))
	l.waterSurf = vec(blend(waterSurfNight, waterSurfDay, waterDay))
	l.waterTint = l.Horizon.Mul(0.6)
	objectH := abs(sy)
	l.lightDir = l.Sun
	l.lightLevel = l.Day
	if l.Night > 0.5 {
		objectH = abs(l.Moon.Y())
		l.lightDir = l.Moon
		l.lightLevel = 0.8
	}
	l.reflection = Smoothstep(0.6, 0, objectH) * 0.8
	specSun := blend(specSunHigh, specSunLow, Smoothstep(0.3, 0, sy))
	l.specColor = vec(blend(specSun, moonGlow, l.Night))
	l.foamColor = vec(blend(foam, sunset, l.Sunset*Smoothstep(-0.15, 0.1, sy)))

	l.grain = mix(0.05, 0.075, l.Cinematic)
	l.contrast = mix(1, 1.35, l.Cinematic)
	l.vigStrength = mix(0.6, 0.65, l.Cinematic)
	return l
}
