package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const angleEps = 1e-4

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		want  float32
	}{
		{name: "zero", angle: 0, want: 0},
		{name: "inside range", angle: 1.25, want: 1.25},
		{name: "pi stays pi", angle: pi, want: pi},
		{name: "minus pi maps to pi", angle: -pi, want: pi},
		{name: "just over pi", angle: pi + 0.5, want: -pi + 0.5},
		{name: "three turns", angle: 6*pi + 0.3, want: 0.3},
		{name: "negative turns", angle: -4*pi - 0.3, want: -0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle(tt.angle)
			assert.InDelta(t, tt.want, got, angleEps)
		})
	}
}

func TestNormalizeAngle_RangeAndPeriodicity(t *testing.T) {
	for a := float32(-20); a <= 20; a += 0.37 {
		got := NormalizeAngle(a)
		require.Greater(t, got, -pi, "angle %v", a)
		require.LessOrEqual(t, got, pi, "angle %v", a)

		shifted := NormalizeAngle(a + twoPi)
		diff := math.Abs(float64(shifted - got))
		// both ends of the range describe the same direction
		if diff > math.Pi {
			diff = 2*math.Pi - diff
		}
		assert.Less(t, diff, 1e-3, "angle %v", a)
	}
}

func TestLerpAngle_SameAngle(t *testing.T) {
	for _, a := range []float32{0, 1, -2.5, 4, 9.1} {
		for _, tt := range []float32{0, 0.1, 0.5, 1} {
			assert.InDelta(t, NormalizeAngle(a), LerpAngle(a, a, tt), angleEps)
		}
	}
}

func TestLerpAngle_ForwardTraversal(t *testing.T) {
	end := pi - 0.01
	assert.InDelta(t, end, LerpAngle(0, end, 1), angleEps)

	mid := LerpAngle(0, end, 0.5)
	assert.InDelta(t, end/2, mid, angleEps)
	assert.Greater(t, mid, float32(0))
}

func TestLerpAngle_WrapsThroughPi(t *testing.T) {
	start := pi - 0.01
	end := -pi + 0.01

	got := LerpAngle(start, end, 0.5)
	assert.InDelta(t, math.Pi, math.Abs(float64(NormalizeAngle(got))), 1e-3)
	assert.InDelta(t, -1, math.Cos(float64(got)), 1e-3)

	got = LerpAngle(end, start, 0.5)
	assert.InDelta(t, math.Pi, math.Abs(float64(NormalizeAngle(got))), 1e-3)

	// a gap of exactly π is not lifted, so the midpoint sits on the negative side
	got = LerpAngle(0.01, -pi+0.01, 0.5)
	assert.InDelta(t, -math.Pi/2+0.01, got, angleEps)
}

func TestLerpAngle_Endpoints(t *testing.T) {
	start := float32(2.8)
	end := float32(-2.9)

	assert.InDelta(t, NormalizeAngle(start), NormalizeAngle(LerpAngle(start, end, 0)), angleEps)
	assert.InDelta(t, NormalizeAngle(end), NormalizeAngle(LerpAngle(start, end, 1)), angleEps)
}

func TestLerpAngle_NeverTakesLongArc(t *testing.T) {
	for s := float32(-3); s <= 3; s += 0.5 {
		for e := float32(-3); e <= 3; e += 0.5 {
			got := LerpAngle(s, e, 0.1)
			step := math.Abs(float64(NormalizeAngle(got - s)))
			assert.LessOrEqual(t, step, math.Pi*0.1+1e-3, "start %v end %v", s, e)
		}
	}
}

func TestLerp3(t *testing.T) {
	got := Lerp3([3]float32{0, 0, 0}, [3]float32{10, -10, 5}, 0.1)
	assert.InDeltaSlice(t, []float32{1, -1, 0.5}, got[:], angleEps)
}

func TestPointerFromPixels(t *testing.T) {
	p := PointerFromPixels(0, 0, 800, 600)
	assert.InDelta(t, -1, p.X, angleEps)
	assert.InDelta(t, 1, p.Y, angleEps)

	p = PointerFromPixels(400, 300, 800, 600)
	assert.InDelta(t, 0, p.X, angleEps)
	assert.InDelta(t, 0, p.Y, angleEps)

	assert.Equal(t, Pointer{}, PointerFromPixels(10, 10, 0, 600))
}
