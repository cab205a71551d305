package animator

import "go.uber.org/zap"

// StateAnimatorBuilderOption is a functional option for configuring a StateAnimator during construction.
type StateAnimatorBuilderOption func(*stateAnimator)

// WithFadeDuration sets the cross-fade time in seconds. Zero switches clips instantly.
//
// Parameters:
//   - seconds: the fade duration
//
// Returns:
//   - StateAnimatorBuilderOption: a function that sets the fade duration
func WithFadeDuration(seconds float32) StateAnimatorBuilderOption {
	return func(a *stateAnimator) {
		a.fade = max(seconds, 0)
	}
}

// WithClip registers a clip at construction time.
//
// Parameters:
//   - name: the clip name
//   - duration: clip length in seconds
//   - loop: whether playback wraps
//
// Returns:
//   - StateAnimatorBuilderOption: a function that adds the clip
func WithClip(name string, duration float32, loop bool) StateAnimatorBuilderOption {
	return func(a *stateAnimator) {
		a.clips[name] = &clipState{duration: duration, loop: loop, speed: 1}
	}
}

// WithInitialClip plays a clip at full weight with no fade. The clip must already be
// registered by an earlier WithClip.
//
// Parameters:
//   - name: the clip name
//
// Returns:
//   - StateAnimatorBuilderOption: a function that selects the starting clip
func WithInitialClip(name string) StateAnimatorBuilderOption {
	return func(a *stateAnimator) {
		if c, ok := a.clips[name]; ok {
			c.weight, c.target = 1, 1
			a.current = name
		}
	}
}

// WithLogger sets the logger used for transition messages.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - StateAnimatorBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) StateAnimatorBuilderOption {
	return func(a *stateAnimator) {
		if logger != nil {
			a.logger = logger
		}
	}
}
