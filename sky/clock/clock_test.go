package clock

import (
	"math"
	"testing"
	"time"
)

func fixedNow(h, m int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.October, 16, h, m, 0, 0, time.UTC)
	}
}

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestShortestDelta(t *testing.T) {
	cases := []struct {
		from, to, want float32
	}{
		{1, 23, -2},
		{23, 1, 2},
		{0, 12, 12},
		{6, 18, 12},
		{18, 6, -12},
		{10, 11.5, 1.5},
		{3, 3, 0},
	}
	for _, tc := range cases {
		if got := ShortestDelta(tc.from, tc.to); !near(got, tc.want, 1e-5) {
			t.Fatalf("ShortestDelta(%v,%v)=%v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
	for from := float32(0); from < 24; from += 0.7 {
		for to := float32(0); to < 24; to += 0.9 {
			if d := ShortestDelta(from, to); d > 12 || d < -12 {
				t.Fatalf("ShortestDelta(%v,%v)=%v out of range", from, to, d)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{0, 0},
		{24, 0},
		{25.5, 1.5},
		{-1, 23},
		{-49, 23},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 0},
	}
	for _, tc := range cases {
		if got := Wrap(tc.in); !near(got, tc.want, 1e-4) {
			t.Fatalf("Wrap(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAnimateToCrossesMidnight(t *testing.T) {
	c := New(fixedNow(12, 0))
	c.SetImmediate(1)
	if d := c.AnimateTo(23, time.Second, Linear); !near(d, -2, 1e-5) {
		t.Fatalf("delta=%v, want -2", d)
	}
	for i := 0; i < 120; i++ {
		c.Advance(time.Second / 60)
		if h := c.Hour(); h < 0 || h >= 24 {
			t.Fatalf("hour %v escaped [0,24)", h)
		}
	}
	if !near(c.Hour(), 23, 1e-4) {
		t.Fatalf("hour=%v, want 23", c.Hour())
	}
	if c.Animating() {
		t.Fatal("transition should have finished")
	}
}

func TestAnimateToSupersedes(t *testing.T) {
	c := New(fixedNow(12, 0))
	c.AnimateTo(6, time.Second, Linear)
	c.Advance(500 * time.Millisecond)
	c.AnimateTo(20, time.Second, Linear)
	c.Advance(2 * time.Second)
	if !near(c.Hour(), 20, 1e-4) {
		t.Fatalf("hour=%v, want 20", c.Hour())
	}
}

func TestBackOutOvershootStaysWrapped(t *testing.T) {
	c := New(fixedNow(0, 0))
	c.SetImmediate(23)
	c.AnimateTo(0, 1500*time.Millisecond, BackOut)
	for i := 0; i < 100; i++ {
		c.Advance(20 * time.Millisecond)
		if h := c.Hour(); h < 0 || h >= 24 {
			t.Fatalf("hour %v escaped [0,24)", h)
		}
	}
	if !near(c.Hour(), 0, 1e-4) && !near(c.Hour(), 24, 1e-4) {
		t.Fatalf("hour=%v, want 0", c.Hour())
	}
}

func TestDragTo(t *testing.T) {
	c := New(fixedNow(0, 0))
	cases := []struct {
		dx, dy float64
		want   float32
	}{
		{0, -10, 0},  // twelve o'clock
		{10, 0, 6},   // three o'clock
		{0, 10, 12},  // six o'clock
		{-10, 0, 18}, // nine o'clock
	}
	for _, tc := range cases {
		c.DragTo(DialAngle(tc.dx, tc.dy))
		if !near(c.Hour(), tc.want, 1e-4) {
			t.Fatalf("drag (%v,%v): hour=%v, want %v", tc.dx, tc.dy, c.Hour(), tc.want)
		}
	}

	// Just left of twelve o'clock maps to the end of the day, clamped.
	c.DragTo(-math.Pi/2 - 1e-9)
	if h := c.Hour(); h > MaxDragHour || h < 23.9 {
		t.Fatalf("hour=%v, want clamped to %v", h, MaxDragHour)
	}
}

func TestDragCancelsTransition(t *testing.T) {
	c := New(fixedNow(0, 0))
	c.AnimateTo(12, time.Second, Linear)
	c.DragTo(DialAngle(10, 0))
	c.Advance(2 * time.Second)
	if !near(c.Hour(), 6, 1e-4) {
		t.Fatalf("hour=%v, want 6", c.Hour())
	}
}

func TestResetToNowIdempotent(t *testing.T) {
	c := New(fixedNow(14, 30))
	c.SetImmediate(3)
	if got := c.ResetToNow(); !near(got, 14.5, 1e-5) {
		t.Fatalf("target=%v, want 14.5", got)
	}
	c.Advance(2 * time.Second)
	first := c.Hour()

	c.ResetToNow()
	c.Advance(2 * time.Second)
	second := c.Hour()

	if !near(first, 14.5, 1e-4) || !near(second, first, 1e-5) {
		t.Fatalf("reset not idempotent: %v then %v", first, second)
	}
	if c.WorldSpeed() != 1 {
		t.Fatalf("speed=%v, want 1", c.WorldSpeed())
	}
}

func TestIntroSpeedDecays(t *testing.T) {
	c := New(fixedNow(9, 0))
	c.Intro()
	if c.WorldSpeed() != introSpeed {
		t.Fatalf("speed=%v, want %v", c.WorldSpeed(), introSpeed)
	}
	prev := c.WorldSpeed()
	for i := 0; i < 60*9; i++ {
		c.Advance(time.Second / 60)
		if s := c.WorldSpeed(); s > prev+1e-5 {
			t.Fatalf("speed rose from %v to %v", prev, s)
		}
		prev = c.WorldSpeed()
	}
	if !near(c.WorldSpeed(), 1, 1e-5) {
		t.Fatalf("speed=%v, want 1", c.WorldSpeed())
	}
	if !near(c.Hour(), 9, 1e-4) {
		t.Fatalf("hour=%v, want 9", c.Hour())
	}
}

func TestResetEasesElevatedSpeed(t *testing.T) {
	c := New(fixedNow(9, 0))
	c.Intro()
	c.Advance(100 * time.Millisecond)
	c.ResetToNow()
	if c.WorldSpeed() <= 1 {
		t.Fatalf("speed should still be elevated, got %v", c.WorldSpeed())
	}
	c.Advance(1100 * time.Millisecond)
	if !near(c.WorldSpeed(), 1, 1e-5) {
		t.Fatalf("speed=%v, want 1", c.WorldSpeed())
	}
}

func TestSimulationClockMonotonic(t *testing.T) {
	c := New(fixedNow(0, 0))
	c.Advance(time.Second)
	c.Advance(-time.Second)
	c.Advance(0)
	if c.SimTime() != 1 {
		t.Fatalf("sim=%v, want 1", c.SimTime())
	}
}

func TestReadout(t *testing.T) {
	c := New(fixedNow(0, 0))
	var got Readout
	c.SetObserver(func(r Readout) { got = r })

	c.SetImmediate(13.5)
	if got.Clock != "13:30" {
		t.Fatalf("clock=%q, want 13:30", got.Clock)
	}
	if got.Date != "oct. 16." {
		t.Fatalf("date=%q", got.Date)
	}

	c.SetImmediate(0)
	if !near(got.KnobX, 30, 1e-4) || !near(got.KnobY, 9, 1e-4) {
		t.Fatalf("knob at midnight=(%v,%v), want (30,9)", got.KnobX, got.KnobY)
	}
	c.SetImmediate(6)
	if !near(got.KnobX, 51, 1e-4) || !near(got.KnobY, 30, 1e-4) {
		t.Fatalf("knob at 6=(%v,%v), want (51,30)", got.KnobX, got.KnobY)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "may. 03." {
		t.Fatalf("FormatDate=%q", got)
	}
}
