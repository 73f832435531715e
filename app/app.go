package app

import (
	"context"
	"image"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/go-gl/mathgl/mgl32"

	"skyline/hal"
	"skyline/sky/clock"
	"skyline/sky/cursor"
	"skyline/sky/labels"
	"skyline/sky/orbit"
	"skyline/sky/shade"
	"skyline/sky/texture"
	"skyline/sky/view"
)

// Config is the scene setup.
type Config struct {
	// Seed drives satellite names and speeds. 0 seeds from the wall clock.
	Seed       uint64
	Satellites int
	// Hour is the initial time of day. Negative plays the intro toward the
	// wall clock.
	Hour float64
	// Moon is the texture path or URL. Empty keeps the placeholder.
	Moon  string
	Grain bool

	Quality  float64
	MaxWidth int

	// Cursor, when set, places the pointer before the first frame.
	Cursor  bool
	CursorX float32
	CursorY float32

	// HTTPClient fetches URL textures. nil means http.DefaultClient.
	HTTPClient *http.Client
}

type system struct {
	h   hal.HAL
	log *slog.Logger
	cfg Config

	clock   *clock.Controller
	catalog *orbit.Catalog
	cursor  cursor.State

	moonPending *texture.Pending
	moonImg     image.Image
	moonBitmap  *texture.Bitmap

	readout    clock.Readout
	dragging   bool
	grain      bool
	placements []labels.Placement
	sats       []mgl32.Vec3
}

// New builds the scene and returns its per-frame step. A panic inside the
// step is recovered and returned as *PanicError.
func New(ctx context.Context, h hal.HAL, cfg Config) func() error {
	s := newSystem(ctx, h, cfg)
	return guard(s.log, s.step)
}

func newSystem(ctx context.Context, h hal.HAL, cfg Config) *system {
	if cfg.Quality <= 0 {
		cfg.Quality = view.DefaultQuality
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = view.DefaultMaxWidth
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(h.Time().Now().UnixNano())
	}

	s := &system{
		h:       h,
		log:     h.Logger(),
		cfg:     cfg,
		clock:   clock.New(h.Time().Now),
		catalog: orbit.NewCatalog(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), cfg.Satellites),
		moonImg: texture.Placeholder(),
		grain:   cfg.Grain,
	}
	s.clock.SetObserver(func(r clock.Readout) { s.readout = r })

	if cfg.Hour < 0 {
		target := s.clock.Intro()
		s.log.Debug("intro", "target", target)
	} else {
		s.clock.SetImmediate(float32(cfg.Hour))
	}

	if cfg.Cursor {
		w, hgt := h.Display().Size()
		s.cursor.Move(cfg.CursorX, cfg.CursorY, float32(w), float32(hgt))
		s.cursor.Snap()
	}

	if cfg.Moon != "" {
		s.moonPending = texture.Load(ctx, cfg.Moon, texture.Options{
			Client: cfg.HTTPClient,
			Logger: s.log.With("asset", "moon"),
		})
	}

	names := make([]string, 0, s.catalog.Satellites())
	for _, b := range s.catalog.Bodies() {
		if b.Kind == orbit.Satellite {
			names = append(names, b.Name)
		}
	}
	s.log.Info("scene ready", "seed", seed, "satellites", names, "hour", s.clock.Hour())
	return s
}

func (s *system) step() error {
	if err := s.drainInput(); err != nil {
		return err
	}
	s.clock.Advance(s.h.Time().Delta())
	s.catalog.Update(float32(s.clock.SimTime()))
	s.cursor.Step()
	s.pollMoon()
	return s.present()
}

// pollMoon swaps in the moon texture once its load has finished.
func (s *system) pollMoon() {
	if s.moonPending == nil {
		return
	}
	select {
	case <-s.moonPending.Done():
	default:
		return
	}
	if err := s.moonPending.Err(); err != nil {
		s.h.Metrics().AssetFallback("moon")
	} else {
		s.moonImg = s.moonPending.Current()
		s.moonBitmap = texture.NewBitmap(s.moonImg)
		b := s.moonImg.Bounds()
		s.log.Info("moon texture bound", "src", s.moonPending.Source(), "width", b.Dx(), "height", b.Dy())
	}
	s.moonPending = nil
}

func (s *system) present() error {
	disp := s.h.Display()
	w, hgt := disp.Size()
	dw, dh := view.Drawable(w, hgt, disp.Scale(), s.cfg.Quality, s.cfg.MaxWidth)

	cx, cy := s.cursor.Smoothed()
	rx, ry := s.cursor.Raw()
	hour := s.clock.Hour()
	res := labels.Project(labels.Frame{
		Basis:   view.NewBasis(cx, cy),
		Width:   float32(w),
		Height:  float32(hgt),
		Hour:    hour,
		CursorX: rx,
		CursorY: ry,
	}, s.catalog.Bodies(), s.placements)
	s.placements = res.Labels
	s.sats = s.catalog.SatellitePositions(s.sats[:0])

	u := shade.Uniforms{
		Time:       float32(s.clock.SimTime()),
		Width:      dw,
		Height:     dh,
		CursorX:    cx,
		CursorY:    cy,
		Stars:      s.catalog.StarPositions(),
		Satellites: s.sats,
		Hour:       hour,
	}
	if s.moonBitmap != nil {
		u.Moon = s.moonBitmap
	}

	return disp.Present(hal.Scene{
		Uniforms:   u,
		Moon:       s.moonImg,
		Labels:     res.Labels,
		CursorHelp: res.CursorHelp,
		Readout:    s.readout,
		Dial:       disp.Dial(),
		Dragging:   s.dragging,
		Grain:      s.grain,
	})
}
