// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Viewport is the visible extent of the camera frustum, in world units, measured on the
// plane through the point the camera is looking at. Pointer coordinates in normalized
// device space are scaled by half of these extents to obtain world-space drag offsets.
type Viewport struct {
	// Width is the visible width in world units.
	Width float32
	// Height is the visible height in world units.
	Height float32
}

// Pointer is a pointer position in normalized device coordinates.
// X grows to the right and Y grows upward, both in [-1, 1] while inside the window.
type Pointer struct {
	X float32
	Y float32
}

// PointerFromPixels converts a window-space pixel position (origin top-left, y down)
// into normalized device coordinates.
//
// Parameters:
//   - x, y: cursor position in pixels
//   - width, height: window client area size in pixels
//
// Returns:
//   - Pointer: the normalized pointer, or the zero Pointer if the window has no area
func PointerFromPixels(x, y float32, width, height int) Pointer {
	if width <= 0 || height <= 0 {
		return Pointer{}
	}
	return Pointer{
		X: x/float32(width)*2 - 1,
		Y: -(y/float32(height))*2 + 1,
	}
}
