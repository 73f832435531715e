package hal

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"skyline/internal/metrics"
	"skyline/sky/clock"
	"skyline/sky/labels"
	"skyline/sky/shade"
)

var (
	// ErrNoWindow is returned by RunWindow when the build has no window
	// backend.
	ErrNoWindow = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")

	// ErrQuit ends the frame loop without reporting a failure.
	ErrQuit = errors.New("quit")
)

// Scene is everything the host needs to present one frame.
type Scene struct {
	// Uniforms are sized to the drawable surface, which may be smaller
	// than the logical surface.
	Uniforms shade.Uniforms
	// Moon is the current moon texture (the placeholder until it loads).
	Moon image.Image

	// Labels are placed on the logical surface.
	Labels     []labels.Placement
	CursorHelp bool

	Readout  clock.Readout
	Dial     image.Rectangle
	Dragging bool

	Grain bool
}

// Display presents frames on a surface of Size logical pixels.
type Display interface {
	Size() (w, h int)
	// Scale is the device pixel ratio.
	Scale() float64
	// Dial is where the clock dial is shown, in surface pixels. Presses
	// inside it start a drag.
	Dial() image.Rectangle
	Present(s Scene) error
}

// PointerKind classifies a pointer event.
type PointerKind uint8

const (
	PointerMove PointerKind = iota + 1
	PointerPress
	PointerRelease
)

// PointerEvent is a pointer sample in logical pixels, origin top-left.
type PointerEvent struct {
	Kind PointerKind
	X, Y float32
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyR
	KeyG
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Input provides buffered input events. Events are dropped when the
// consumer falls behind.
type Input interface {
	Pointer() <-chan PointerEvent
	Keys() <-chan KeyEvent
}

// Time is the frame clock.
type Time interface {
	// Now is the wall clock the scene uses for "now" and the date.
	Now() time.Time
	// Delta is the length of the current frame.
	Delta() time.Duration
}

// HAL provides the only contact point between the renderer and the
// outside world.
type HAL interface {
	Logger() *slog.Logger
	Metrics() *metrics.Collector
	Display() Display
	Input() Input
	Time() Time
}
