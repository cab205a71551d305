package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu        sync.Mutex
	keyDown   func(uint32)
	keyUp     func(uint32)
	mouseDown func(int, int32, int32)
	mouseUp   func(int, int32, int32)
	mouseMove func(int32, int32)
}

func (f *fakeSource) SetKeyDownCallback(cb func(uint32)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyDown = cb
}

func (f *fakeSource) SetKeyUpCallback(cb func(uint32)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyUp = cb
}

func (f *fakeSource) SetMouseDownCallback(cb func(int, int32, int32)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouseDown = cb
}

func (f *fakeSource) SetMouseUpCallback(cb func(int, int32, int32)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouseUp = cb
}

func (f *fakeSource) SetMouseMoveCallback(cb func(int32, int32)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouseMove = cb
}

func (f *fakeSource) Width() int  { return 800 }
func (f *fakeSource) Height() int { return 600 }

func (f *fakeSource) registered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, set := range []bool{f.keyDown != nil, f.keyUp != nil, f.mouseDown != nil, f.mouseUp != nil, f.mouseMove != nil} {
		if set {
			n++
		}
	}
	return n
}

func TestState_BindingsAreOred(t *testing.T) {
	s := NewState(nil)

	s.KeyDown(common.KeyW)
	assert.True(t, s.Pressed(ActionForward))
	s.KeyDown(common.KeyUp)
	s.KeyUp(common.KeyW)
	assert.True(t, s.Pressed(ActionForward))
	s.KeyUp(common.KeyUp)
	assert.False(t, s.Pressed(ActionForward))

	s.KeyDown(common.KeyRightShift)
	assert.True(t, s.Snapshot().Run)
}

func TestState_SetBindings(t *testing.T) {
	s := NewState(nil)
	s.SetBindings(Bindings{ActionForward: {common.KeyR}})

	s.KeyDown(common.KeyW)
	assert.False(t, s.Pressed(ActionForward))
	s.KeyDown(common.KeyR)
	assert.True(t, s.Pressed(ActionForward))
}

func TestState_Snapshot(t *testing.T) {
	s := NewState(nil)
	s.KeyDown(common.KeyA)
	s.KeyDown(common.KeyS)
	s.SetPointer(common.Pointer{X: 0.25, Y: -0.5})
	s.SetInteracting(true)

	snap := s.Snapshot()
	assert.Equal(t, Snapshot{
		Backward:    true,
		Left:        true,
		Interacting: true,
		Pointer:     common.Pointer{X: 0.25, Y: -0.5},
	}, snap)
}

func TestState_ConcurrentProducer(t *testing.T) {
	s := NewState(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			s.SetInteracting(i%2 == 0)
			s.SetPointer(common.Pointer{X: float32(i) / 1000})
			s.KeyDown(common.KeyW)
			s.KeyUp(common.KeyW)
		}
	}()
	for range 1000 {
		_ = s.Snapshot()
	}
	wg.Wait()
}

func TestSubscribe_FeedsStateAndReleases(t *testing.T) {
	src := &fakeSource{}
	s := NewState(nil)

	release := s.Subscribe(src)
	require.Equal(t, 5, src.registered())

	src.keyDown(common.KeyD)
	src.mouseDown(common.MouseButtonLeft, 600, 150)

	snap := s.Snapshot()
	assert.True(t, snap.Right)
	assert.True(t, snap.Interacting)
	assert.InDelta(t, 0.5, snap.Pointer.X, 1e-6)
	assert.InDelta(t, 0.5, snap.Pointer.Y, 1e-6)

	src.mouseMove(400, 300)
	assert.Equal(t, common.Pointer{}, s.Snapshot().Pointer)

	src.mouseUp(common.MouseButtonLeft, 400, 300)
	assert.False(t, s.Interacting())

	src.mouseDown(common.MouseButtonRight, 400, 300)
	release()
	assert.Equal(t, 0, src.registered())
	assert.Equal(t, Snapshot{}, s.Snapshot())

	assert.NotPanics(t, release)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("Backward")
	require.NoError(t, err)
	assert.Equal(t, ActionBackward, a)
	assert.Equal(t, "backward", a.String())

	_, err = ParseAction("jump")
	assert.Error(t, err)
}
