// Package clock owns the simulated time of day, the world speed multiplier
// and the accumulated simulation clock that drives the sky.
package clock

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing curves accepted by AnimateTo.
var (
	PowerOut3   ease.TweenFunc = ease.OutCubic
	Power2Out   ease.TweenFunc = ease.OutQuad
	Power2In    ease.TweenFunc = ease.InQuad
	Power2InOut ease.TweenFunc = ease.InOutQuad
	BackOut     ease.TweenFunc = ease.OutBack // overshoot 1.70158
	Linear      ease.TweenFunc = ease.Linear
)

const (
	HoursPerDay = 24
	MaxDragHour = 23.99

	// DialSize is the edge of the square dial, in pixels.
	DialSize = 60
	// KnobRadius is the distance of the knob from the dial center.
	KnobRadius = 21

	introSpeed    = 13
	introDuration = 8500 * time.Millisecond
	introSpeedDur = 7500 * time.Millisecond
	resetDuration = 1500 * time.Millisecond
	resetSpeedDur = time.Second
)

// Readout is what the clock face shows after every mutation.
type Readout struct {
	Clock string // "HH:MM"
	Date  string // "oct. 16."
	KnobX float32
	KnobY float32
}

// Controller is the time-of-day state machine. It is not safe for
// concurrent use; the frame loop is its only writer.
type Controller struct {
	now func() time.Time

	hour  float32
	speed float32
	sim   float64

	hourTween  *gween.Tween
	speedTween *gween.Tween

	observer func(Readout)
}

// New returns a controller at hour 0 and speed 1. now supplies the wall
// clock used by ResetToNow, Intro and the date readout; nil means time.Now.
func New(now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{now: now, speed: 1}
}

// SetObserver registers fn to receive a Readout after every mutation and
// immediately publishes the current state.
func (c *Controller) SetObserver(fn func(Readout)) {
	c.observer = fn
	c.publish()
}

func (c *Controller) Hour() float32       { return c.hour }
func (c *Controller) WorldSpeed() float32 { return c.speed }

// SimTime returns the accumulated simulation clock in seconds.
func (c *Controller) SimTime() float64 { return c.sim }

// Animating reports whether an hour transition is running.
func (c *Controller) Animating() bool { return c.hourTween != nil }

// Wrap renormalizes h into [0, 24). Non-finite input becomes 0.
func Wrap(h float32) float32 {
	if !finite32(h) {
		return 0
	}
	m := float32(math.Mod(float64(h), HoursPerDay))
	if m < 0 {
		m += HoursPerDay
	}
	if m >= HoursPerDay {
		m = 0
	}
	return m
}

// ShortestDelta returns the signed hour offset from one time of day to
// another along the shorter way around the dial. |delta| <= 12.
func ShortestDelta(from, to float32) float32 {
	d := Wrap(to) - Wrap(from)
	if d > 12 {
		d -= HoursPerDay
	} else if d < -12 {
		d += HoursPerDay
	}
	return d
}

// SetImmediate jumps to hour without animation.
func (c *Controller) SetImmediate(hour float32) {
	c.hourTween = nil
	c.hour = Wrap(hour)
	c.publish()
}

// AnimateTo starts an eased transition to target along the shortest path
// and returns the signed delta. A running transition is replaced.
func (c *Controller) AnimateTo(target float32, d time.Duration, easing ease.TweenFunc) float32 {
	delta := ShortestDelta(c.hour, target)
	if d <= 0 {
		c.SetImmediate(c.hour + delta)
		return delta
	}
	if easing == nil {
		easing = PowerOut3
	}
	c.hourTween = gween.New(c.hour, c.hour+delta, float32(d.Seconds()), easing)
	return delta
}

// WallHour returns the hour of t as hours plus minutes/60.
func WallHour(t time.Time) float32 {
	return float32(t.Hour()) + float32(t.Minute())/60
}

// ResetToNow animates back to the wall clock time and eases the world
// speed back to 1 if it is elevated. It returns the target hour.
func (c *Controller) ResetToNow() float32 {
	target := WallHour(c.now())
	c.AnimateTo(target, resetDuration, BackOut)
	if c.speed > 1 {
		c.speedTween = gween.New(c.speed, 1, float32(resetSpeedDur.Seconds()), Power2Out)
	} else {
		c.speedTween = nil
		c.speed = 1
	}
	return target
}

// Intro fast-forwards to the wall clock time while the world speed decays
// from 13 to 1.
func (c *Controller) Intro() float32 {
	target := WallHour(c.now())
	c.AnimateTo(target, introDuration, PowerOut3)
	c.speed = introSpeed
	c.speedTween = gween.New(introSpeed, 1, float32(introSpeedDur.Seconds()), PowerOut3)
	return target
}

// DialAngle converts a pointer offset from the dial center (y down) into
// a screen-space angle with 0 at three o'clock.
func DialAngle(dx, dy float64) float64 {
	return math.Atan2(dy, dx)
}

// DragTo sets the hour from a dial angle. The hour is clamped to
// [0, 23.99] and any running transition is cancelled.
func (c *Controller) DragTo(angle float64) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		angle = -math.Pi / 2
	}
	a := math.Mod(angle+math.Pi/2, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	h := float32(a / (2 * math.Pi) * HoursPerDay)
	h = min(max(h, 0), MaxDragHour)
	c.hourTween = nil
	c.hour = h
	c.publish()
}

// Advance progresses the simulation clock and the running transitions by
// dt. Negative or non-finite steps are ignored.
func (c *Controller) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	secs := float32(dt.Seconds())

	c.sim += dt.Seconds() * float64(c.speed)

	if c.speedTween != nil {
		v, done := c.speedTween.Update(secs)
		c.speed = v
		if done {
			c.speedTween = nil
		}
	}
	if c.hourTween != nil {
		v, done := c.hourTween.Update(secs)
		c.hour = Wrap(v)
		if done {
			c.hourTween = nil
		}
		c.publish()
	}
}

// Readout formats the current state for the clock face.
func (c *Controller) Readout() Readout {
	h := int(c.hour)
	m := int((c.hour - float32(h)) * 60)
	if m > 59 {
		m = 59
	}
	x, y := Knob(c.hour)
	return Readout{
		Clock: fmt.Sprintf("%02d:%02d", h, m),
		Date:  FormatDate(c.now()),
		KnobX: x,
		KnobY: y,
	}
}

// Knob returns the knob position on the dial for hour.
func Knob(hour float32) (x, y float32) {
	deg := float64(hour)/HoursPerDay*360 - 90
	rad := deg * math.Pi / 180
	c := float64(DialSize) / 2
	return float32(c + KnobRadius*math.Cos(rad)), float32(c + KnobRadius*math.Sin(rad))
}

// FormatDate renders t as a lower-case short month and two-digit day,
// e.g. "oct. 16.".
func FormatDate(t time.Time) string {
	return strings.ToLower(t.Format("Jan")) + ". " + t.Format("02") + "."
}

func (c *Controller) publish() {
	if c.observer != nil {
		c.observer(c.Readout())
	}
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
