package common

import "math"

const (
	pi    = float32(math.Pi)
	twoPi = float32(2 * math.Pi)
)

// NormalizeAngle maps an angle in radians into the half-open range (-π, π]
// by repeated ±2π correction.
//
// Parameters:
//   - angle: the angle to normalize (radians)
//
// Returns:
//   - float32: the equivalent angle in (-π, π]
func NormalizeAngle(angle float32) float32 {
	for angle > pi {
		angle -= twoPi
	}
	for angle <= -pi {
		angle += twoPi
	}
	return angle
}

// LerpAngle interpolates between two angles along the shorter arc.
// Both inputs are normalized first; when they are more than π apart the smaller one
// is lifted by 2π so the traversed arc never exceeds π. The result is not
// re-normalized and may lie outside (-π, π].
//
// Parameters:
//   - start: the starting angle (radians)
//   - end: the target angle (radians)
//   - t: interpolation factor, 0 returns start and 1 returns end
//
// Returns:
//   - float32: the interpolated angle (radians)
func LerpAngle(start, end, t float32) float32 {
	start = NormalizeAngle(start)
	end = NormalizeAngle(end)

	if float32(math.Abs(float64(end-start))) > pi {
		if end > start {
			start += twoPi
		} else {
			end += twoPi
		}
	}

	return start + (end-start)*t
}

// Lerp linearly interpolates between a and b.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation factor
//
// Returns:
//   - float32: a + (b - a) * t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Lerp3 linearly interpolates two points componentwise.
//
// Parameters:
//   - a: start point
//   - b: end point
//   - t: interpolation factor
//
// Returns:
//   - [3]float32: the interpolated point
func Lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// Distance3 returns the euclidean distance between two points.
func Distance3(a, b [3]float32) float32 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	dz := b[2] - a[2]
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / pi
}
