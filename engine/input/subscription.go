package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
)

// EventSource is the part of a window that produces raw input events.
// Each setter owns a single callback slot; passing nil clears it.
type EventSource interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseDownCallback(callback func(button int, x, y int32))
	SetMouseUpCallback(callback func(button int, x, y int32))
	SetMouseMoveCallback(callback func(x, y int32))
	Width() int
	Height() int
}

// Subscribe registers key, press/release and pointer handlers on src that feed this
// State. Any mouse button press (or touch, which the window reports as a press) sets the
// interaction flag and release clears it.
//
// The returned release function unregisters every handler and resets the state so no
// key or press stays latched after teardown. It is safe to call more than once.
//
// Parameters:
//   - src: the event producer, typically the engine window
//
// Returns:
//   - func(): releases the subscription
func (s *State) Subscribe(src EventSource) (release func()) {
	pointerAt := func(x, y int32) common.Pointer {
		return common.PointerFromPixels(float32(x), float32(y), src.Width(), src.Height())
	}

	src.SetKeyDownCallback(s.KeyDown)
	src.SetKeyUpCallback(s.KeyUp)
	src.SetMouseDownCallback(func(_ int, x, y int32) {
		s.SetPointer(pointerAt(x, y))
		s.SetInteracting(true)
	})
	src.SetMouseUpCallback(func(_ int, x, y int32) {
		s.SetPointer(pointerAt(x, y))
		s.SetInteracting(false)
	})
	src.SetMouseMoveCallback(func(x, y int32) {
		s.SetPointer(pointerAt(x, y))
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			src.SetKeyDownCallback(nil)
			src.SetKeyUpCallback(nil)
			src.SetMouseDownCallback(nil)
			src.SetMouseUpCallback(nil)
			src.SetMouseMoveCallback(nil)
			s.Reset()
		})
	}
}
