package hal

import "time"

// maxFrameDelta caps a single frame so a stalled window (dragged, hidden
// tab) does not fast-forward the scene.
const maxFrameDelta = 250 * time.Millisecond

type hostTime struct {
	now   func() time.Time
	last  time.Time
	delta time.Duration

	// Simulated clocks advance by a fixed step from start.
	simulated bool
	start     time.Time
	ticks     uint64
	step      time.Duration
}

func newHostTime(now func() time.Time) *hostTime {
	if now == nil {
		now = time.Now
	}
	return &hostTime{now: now}
}

func newSimulatedTime(start time.Time, hz int) *hostTime {
	return &hostTime{
		simulated: true,
		start:     start,
		step:      time.Second / time.Duration(hz),
	}
}

func (t *hostTime) Now() time.Time {
	if t.simulated {
		return t.start.Add(time.Duration(t.ticks) * t.step)
	}
	return t.now()
}

func (t *hostTime) Delta() time.Duration { return t.delta }

// tick starts a new frame.
func (t *hostTime) tick() {
	if t.simulated {
		t.ticks++
		t.delta = t.step
		return
	}
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.delta = 0
		return
	}
	t.delta = min(max(now.Sub(t.last), 0), maxFrameDelta)
	t.last = now
}
