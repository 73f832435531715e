package hal

import (
	"io"
	"log/slog"

	"skyline/internal/metrics"
)

// Options are shared by the window and headless hosts.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Collector
	// Workers bounds the CPU shading goroutines. 0 means GOMAXPROCS.
	Workers int
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type hostHAL struct {
	log     *slog.Logger
	metrics *metrics.Collector
	disp    Display
	in      *hostInput
	t       *hostTime
}

func newHost(opts Options, disp Display, t *hostTime) *hostHAL {
	return &hostHAL{
		log:     opts.logger(),
		metrics: opts.Metrics,
		disp:    disp,
		in:      newHostInput(),
		t:       t,
	}
}

func (h *hostHAL) Logger() *slog.Logger        { return h.log }
func (h *hostHAL) Metrics() *metrics.Collector { return h.metrics }
func (h *hostHAL) Display() Display            { return h.disp }
func (h *hostHAL) Input() Input                { return h.in }
func (h *hostHAL) Time() Time                  { return h.t }

// WindowConfig controls the windowed host.
type WindowConfig struct {
	Width  int
	Height int
	// CPU shades the sky with the CPU pipeline instead of the GPU program.
	CPU bool
}

type hostInput struct {
	ptr  chan PointerEvent
	keys chan KeyEvent

	// The pointer is at the origin until the first real move.
	lastX, lastY int
}

func newHostInput() *hostInput {
	return &hostInput{
		ptr:  make(chan PointerEvent, 64),
		keys: make(chan KeyEvent, 64),
	}
}

func (in *hostInput) Pointer() <-chan PointerEvent { return in.ptr }
func (in *hostInput) Keys() <-chan KeyEvent        { return in.keys }

// moved records a polled pointer position and reports whether it differs
// from the previous one.
func (in *hostInput) moved(x, y int) bool {
	if x == in.lastX && y == in.lastY {
		return false
	}
	in.lastX, in.lastY = x, y
	return true
}

func (in *hostInput) emitPointer(ev PointerEvent) {
	select {
	case in.ptr <- ev:
	default:
	}
}

func (in *hostInput) emitKey(code KeyCode, press bool) {
	select {
	case in.keys <- KeyEvent{Code: code, Press: press}:
	default:
	}
}
