package app

import (
	"image"

	"skyline/hal"
	"skyline/sky/clock"
)

// drainInput applies every queued event. It returns hal.ErrQuit when the
// user asked to leave.
func (s *system) drainInput() error {
	in := s.h.Input()
	disp := s.h.Display()
	w, h := disp.Size()
	dial := disp.Dial()
	for {
		select {
		case ev := <-in.Pointer():
			s.pointer(ev, w, h, dial)
		case k := <-in.Keys():
			if err := s.key(k); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *system) pointer(ev hal.PointerEvent, w, h int, dial image.Rectangle) {
	switch ev.Kind {
	case hal.PointerMove:
		s.cursor.Move(ev.X, ev.Y, float32(w), float32(h))
		if s.dragging {
			s.drag(ev, dial)
		}
	case hal.PointerPress:
		if image.Pt(int(ev.X), int(ev.Y)).In(dial) {
			s.dragging = true
			s.drag(ev, dial)
		}
	case hal.PointerRelease:
		s.dragging = false
	}
}

// drag sets the hour from the pointer angle around the dial center.
func (s *system) drag(ev hal.PointerEvent, dial image.Rectangle) {
	cx := float64(dial.Min.X) + float64(dial.Dx())/2
	cy := float64(dial.Min.Y) + float64(dial.Dy())/2
	s.clock.DragTo(clock.DialAngle(float64(ev.X)-cx, float64(ev.Y)-cy))
}

func (s *system) key(k hal.KeyEvent) error {
	if !k.Press {
		return nil
	}
	switch k.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyR:
		target := s.clock.ResetToNow()
		s.log.Debug("reset to now", "target", target)
	case hal.KeyG:
		s.grain = !s.grain
		s.log.Debug("grain", "enabled", s.grain)
	}
	return nil
}
