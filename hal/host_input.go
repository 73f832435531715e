//go:build cgo || js

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// poll turns this tick's ebiten input state into events.
func (in *hostInput) poll() {
	x, y := ebiten.CursorPosition()
	if in.moved(x, y) {
		in.emitPointer(PointerEvent{Kind: PointerMove, X: float32(x), Y: float32(y)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.emitPointer(PointerEvent{Kind: PointerPress, X: float32(x), Y: float32(y)})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.emitPointer(PointerEvent{Kind: PointerRelease, X: float32(x), Y: float32(y)})
	}

	// A touch behaves like a pointer that moves, presses and releases.
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		in.emitPointer(PointerEvent{Kind: PointerMove, X: float32(tx), Y: float32(ty)})
		in.emitPointer(PointerEvent{Kind: PointerPress, X: float32(tx), Y: float32(ty)})
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		if inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		tx, ty := ebiten.TouchPosition(id)
		in.emitPointer(PointerEvent{Kind: PointerMove, X: float32(tx), Y: float32(ty)})
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		tx, ty := inpututil.TouchPositionInPreviousTick(id)
		in.emitPointer(PointerEvent{Kind: PointerRelease, X: float32(tx), Y: float32(ty)})
	}

	keys := []struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeyR, KeyR},
		{ebiten.KeyG, KeyG},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			in.emitKey(k.code, true)
		}
		if inpututil.IsKeyJustReleased(k.key) {
			in.emitKey(k.code, false)
		}
	}
}
