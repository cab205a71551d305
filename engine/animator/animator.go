package animator

import (
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// DefaultFadeDuration is the cross-fade time in seconds used when a clip is played.
const DefaultFadeDuration float32 = 0.24

// Animator accepts a named-state trigger and performs its own cross-fade.
type Animator interface {
	// Play transitions to the named clip. Unknown names are ignored.
	//
	// Parameters:
	//   - name: the clip name
	Play(name string)
}

// clipState tracks playback time and fade weight of one clip.
// This mirrors per-instance playback state on a CPU-only clip set.
type clipState struct {
	duration float32
	loop     bool
	speed    float32

	time   float32
	weight float32
	target float32
	fade   float32
}

type stateAnimator struct {
	mu     *sync.Mutex
	logger *zap.Logger

	clips   map[string]*clipState
	current string
	fade    float32
}

// StateAnimator plays one named clip at a time and cross-fades between them.
// A newly played clip restarts from time zero and fades in while every other clip
// fades out over the same duration.
type StateAnimator interface {
	Animator

	// AddClip registers a clip. Adding an existing name replaces its playback settings.
	//
	// Parameters:
	//   - name: the clip name
	//   - duration: clip length in seconds, 0 for a static pose
	//   - loop: whether playback wraps at the end of the clip
	AddClip(name string, duration float32, loop bool)

	// SetSpeed sets the playback speed multiplier of a clip. No-op for unknown names.
	//
	// Parameters:
	//   - name: the clip name
	//   - speed: playback speed multiplier
	SetSpeed(name string, speed float32)

	// Update advances playback time and fade weights.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last update in seconds
	Update(deltaTime float32)

	// Current returns the name of the clip most recently played, or "" if none.
	//
	// Returns:
	//   - string: the current clip name
	Current() string

	// Clips returns the registered clip names in sorted order.
	//
	// Returns:
	//   - []string: clip names
	Clips() []string

	// Weights returns the blend weight of every clip with a non-zero weight.
	//
	// Returns:
	//   - map[string]float32: weights keyed by clip name
	Weights() map[string]float32

	// Duration returns the length of a clip in seconds, 0 for unknown names.
	Duration(name string) float32

	// Time returns the playback time of a clip in seconds.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - float32: playback time, 0 for unknown names
	Time(name string) float32

	// IsBlending reports whether any clip weight is still moving toward its target.
	//
	// Returns:
	//   - bool: true while a cross-fade is in progress
	IsBlending() bool
}

var _ StateAnimator = &stateAnimator{}

// NewStateAnimator creates a StateAnimator with no clips and a 0.24 s cross-fade.
//
// Parameters:
//   - options: functional options to configure the animator
//
// Returns:
//   - StateAnimator: the newly created animator
func NewStateAnimator(options ...StateAnimatorBuilderOption) StateAnimator {
	a := &stateAnimator{
		mu:     &sync.Mutex{},
		logger: zap.NewNop(),
		clips:  make(map[string]*clipState),
		fade:   DefaultFadeDuration,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *stateAnimator) AddClip(name string, duration float32, loop bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.clips[name]; ok {
		c.duration = duration
		c.loop = loop
		return
	}
	a.clips[name] = &clipState{duration: duration, loop: loop, speed: 1}
}

func (a *stateAnimator) SetSpeed(name string, speed float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.clips[name]; ok {
		c.speed = speed
	}
}

func (a *stateAnimator) Play(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next, ok := a.clips[name]
	if !ok {
		a.logger.Debug("ignoring unknown clip", zap.String("clip", name))
		return
	}
	if name == a.current {
		return
	}

	for clipName, c := range a.clips {
		if clipName == name {
			continue
		}
		c.target = 0
		c.fade = a.fade
	}
	next.time = 0
	next.target = 1
	next.fade = a.fade
	if a.current == "" || a.fade <= 0 {
		next.weight = 1
	}

	a.logger.Debug("animation cross-fade",
		zap.String("from", a.current),
		zap.String("to", name),
		zap.Float32("fade", a.fade),
	)
	a.current = name
}

func (a *stateAnimator) Update(deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range a.clips {
		if c.weight != c.target {
			c.weight = approach(c.weight, c.target, c.fade, deltaTime)
		}
		if c.weight == 0 && c.target == 0 {
			continue
		}
		c.time += deltaTime * c.speed
		if c.duration <= 0 {
			c.time = 0
			continue
		}
		if c.time > c.duration {
			if c.loop {
				c.time = float32(math.Mod(float64(c.time), float64(c.duration)))
			} else {
				c.time = c.duration
			}
		}
	}
}

func (a *stateAnimator) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *stateAnimator) Clips() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.clips))
	for name := range a.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *stateAnimator) Weights() map[string]float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]float32, len(a.clips))
	for name, c := range a.clips {
		if c.weight > 0 {
			out[name] = c.weight
		}
	}
	return out
}

func (a *stateAnimator) Duration(name string) float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.clips[name]; ok {
		return c.duration
	}
	return 0
}

func (a *stateAnimator) Time(name string) float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.clips[name]; ok {
		return c.time
	}
	return 0
}

func (a *stateAnimator) IsBlending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.clips {
		if c.weight != c.target {
			return true
		}
	}
	return false
}

// approach moves weight linearly toward target so a full 0→1 swing takes fade seconds.
func approach(weight, target, fade, dt float32) float32 {
	if fade <= 0 {
		return target
	}
	step := dt / fade
	if weight < target {
		return min(weight+step, target)
	}
	return max(weight-step, target)
}
