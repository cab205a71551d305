package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
	"github.com/stretchr/testify/assert"
)

// unitViewport makes pointer coordinates map 1:1 onto world-space drag offsets.
var unitViewport = common.Viewport{Width: 2, Height: 2}

func TestSnapshot_Sample(t *testing.T) {
	tests := []struct {
		name   string
		snap   Snapshot
		intent MovementIntent
		tier   SpeedTier
	}{
		{
			name:   "no input is idle",
			snap:   Snapshot{},
			intent: MovementIntent{},
			tier:   SpeedWalk,
		},
		{
			name:   "forward walks",
			snap:   Snapshot{Forward: true},
			intent: MovementIntent{X: 0, Z: 1},
			tier:   SpeedWalk,
		},
		{
			name:   "backward overrides forward",
			snap:   Snapshot{Forward: true, Backward: true},
			intent: MovementIntent{X: 0, Z: -1},
			tier:   SpeedWalk,
		},
		{
			name:   "run key selects run tier",
			snap:   Snapshot{Forward: true, Run: true},
			intent: MovementIntent{X: 0, Z: 1},
			tier:   SpeedRun,
		},
		{
			name:   "left sets positive x",
			snap:   Snapshot{Left: true},
			intent: MovementIntent{X: 1, Z: 0},
			tier:   SpeedWalk,
		},
		{
			name:   "right overrides left",
			snap:   Snapshot{Left: true, Right: true},
			intent: MovementIntent{X: -1, Z: 0},
			tier:   SpeedWalk,
		},
		{
			name:   "centred drag walks forward on the bias",
			snap:   Snapshot{Interacting: true},
			intent: MovementIntent{X: 0, Z: DragForwardBias},
			tier:   SpeedWalk,
		},
		{
			name:   "drag inside dead zone keeps x zero",
			snap:   Snapshot{Interacting: true, Pointer: common.Pointer{X: 0.05}},
			intent: MovementIntent{X: 0, Z: DragForwardBias},
			tier:   SpeedWalk,
		},
		{
			name:   "drag x is inverted",
			snap:   Snapshot{Interacting: true, Pointer: common.Pointer{X: 0.3}},
			intent: MovementIntent{X: -0.3, Z: DragForwardBias},
			tier:   SpeedWalk,
		},
		{
			name:   "wide drag forces run without run key",
			snap:   Snapshot{Interacting: true, Pointer: common.Pointer{X: -0.6}},
			intent: MovementIntent{X: 0.6, Z: DragForwardBias},
			tier:   SpeedRun,
		},
		{
			name:   "far vertical drag forces run",
			snap:   Snapshot{Interacting: true, Pointer: common.Pointer{Y: 0.2}},
			intent: MovementIntent{X: 0, Z: 0.2 + DragForwardBias},
			tier:   SpeedRun,
		},
		{
			name:   "drag z replaces keyboard z",
			snap:   Snapshot{Backward: true, Interacting: true, Pointer: common.Pointer{Y: -0.2}},
			intent: MovementIntent{X: 0, Z: 0.2},
			tier:   SpeedWalk,
		},
		{
			name:   "left key overrides drag x but keeps drag z and run",
			snap:   Snapshot{Left: true, Interacting: true, Pointer: common.Pointer{X: -0.6}},
			intent: MovementIntent{X: 1, Z: DragForwardBias},
			tier:   SpeedRun,
		},
		{
			name:   "pointer ignored while not interacting",
			snap:   Snapshot{Pointer: common.Pointer{X: 0.9, Y: 0.9}},
			intent: MovementIntent{},
			tier:   SpeedWalk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.snap.Sample(unitViewport)
			assert.InDelta(t, tt.intent.X, got.Intent.X, 1e-6)
			assert.InDelta(t, tt.intent.Z, got.Intent.Z, 1e-6)
			assert.Equal(t, tt.tier, got.Tier)
		})
	}
}

func TestSnapshot_Sample_ForwardBiasAppliedOnce(t *testing.T) {
	// a small upward drag stays a walk; applying the bias twice would push z past the run threshold
	snap := Snapshot{Interacting: true, Pointer: common.Pointer{Y: 0.05}}

	got := snap.Sample(unitViewport)
	assert.InDelta(t, 0.05+DragForwardBias, got.Intent.Z, 1e-6)
	assert.Less(t, got.Intent.Z, float32(DragRunThreshold))
	assert.Greater(t, 0.05+2*DragForwardBias, DragRunThreshold)
	assert.Equal(t, SpeedWalk, got.Tier)
}

func TestSnapshot_Sample_ScalesByViewport(t *testing.T) {
	snap := Snapshot{Interacting: true, Pointer: common.Pointer{X: 0.1, Y: 0.1}}

	got := snap.Sample(common.Viewport{Width: 10, Height: 4})
	assert.InDelta(t, -0.5, got.Intent.X, 1e-6)
	assert.InDelta(t, 0.6, got.Intent.Z, 1e-6)
	assert.Equal(t, SpeedRun, got.Tier)
}

func TestSnapshot_Sample_Deterministic(t *testing.T) {
	snap := Snapshot{Forward: true, Interacting: true, Pointer: common.Pointer{X: 0.42, Y: -0.13}}
	first := snap.Sample(unitViewport)
	for range 10 {
		assert.Equal(t, first, snap.Sample(unitViewport))
	}
}

func TestMovementIntent_Idle(t *testing.T) {
	assert.True(t, MovementIntent{}.Idle())
	assert.False(t, MovementIntent{X: 0.1}.Idle())
	assert.False(t, MovementIntent{Z: -1}.Idle())
}
