package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-locomotion/engine/profiler"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/scene"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/window"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	mu              *sync.RWMutex
	tickRateChannel chan time.Duration

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window
	logger *zap.Logger

	tickProfiler     *profiler.Profiler
	renderProfiler   *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the fixed-rate tick loop, the render loop, and window management.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Logger returns the engine's logger.
	Logger() *zap.Logger

	// EnableProfiler enables loop profiling output to the logger.
	EnableProfiler()

	// DisableProfiler disables loop profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// Active scenes and the tick callback are advanced at this rate.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the current tick interval.
	TickRate() time.Duration

	// SetTickCallback registers the function called each engine tick, after active scenes have ticked.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame, after scene cameras update.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are ticked and updated in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining order (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the engine loops. With a window it pumps window messages on the calling
	// goroutine until the window closes, replacing the window's update callback; without
	// one it blocks until Quit.
	Run()

	// Quit signals all engine goroutines to stop; Run returns once they have exited.
	// Safe to call multiple times and from inside callbacks.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.RWMutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		logger:           zap.NewNop(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	e.tickProfiler = profiler.NewProfiler(profiler.WithName("tick"), profiler.WithLogger(e.logger))
	e.renderProfiler = profiler.NewProfiler(profiler.WithName("render"), profiler.WithLogger(e.logger))

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Logger() *zap.Logger {
	return e.logger
}

func (e *engine) Run() {
	e.handle()
	if e.window == nil {
		<-e.quitChannel
		e.wg.Wait()
		return
	}
	// The window is closed from the message loop's own thread once quit is signalled.
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			if err := e.window.Close(); err != nil {
				e.logger.Warn("window close failed", zap.Error(err))
			}
		default:
		}
	})
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	e.logger.Info("engine stopped")
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
func (e *engine) handle() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.logger.Info("engine started",
		zap.Duration("tick_rate", e.TickRate()),
		zap.Int("scenes", len(e.Scenes())),
		zap.Bool("headless", e.window == nil),
	)

	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Each tick advances every active scene, then fires the tick callback.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer e.recoverLoop("tick")

	ticker := time.NewTicker(e.TickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.tick(dt)

			if e.profilingEnabled {
				e.tickProfiler.Tick(time.Since(now))
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Updates the camera of every active scene, then fires the render callback.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer e.recoverLoop("render")

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.render(dt)

			if e.profilingEnabled {
				e.renderProfiler.Tick(time.Since(now))
			}

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(lastRender); remaining > 0 {
					time.Sleep(remaining)
				}
			} else {
				// Yield so an uncapped loop does not starve the tick goroutine.
				time.Sleep(time.Millisecond)
			}
		}
	}
}

// tick advances the active scenes in ascending key order.
func (e *engine) tick(dt float32) {
	for _, s := range e.activeScenes() {
		s.Tick(dt)
	}
	if cb := e.tickCallbackFn(); cb != nil {
		cb(dt)
	}
}

// render refreshes the cameras of the active scenes.
func (e *engine) render(dt float32) {
	for _, s := range e.activeScenes() {
		s.UpdateCamera()
	}
	if cb := e.renderCallbackFn(); cb != nil {
		cb(dt)
	}
}

// resize propagates a new framebuffer size to every scene camera.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, s := range e.Scenes() {
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
	e.logger.Debug("window resized", zap.Int("width", width), zap.Int("height", height))
}

// recoverLoop recovers from a panic inside a loop goroutine and shuts the engine down.
func (e *engine) recoverLoop(loop string) {
	if r := recover(); r != nil {
		e.logger.Error("loop recovered from panic",
			zap.String("loop", loop),
			zap.Error(fmt.Errorf("%v", r)),
		)
		e.signalQuit()
	}
}

// activeScenes returns the active scenes in ascending key order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) tickCallbackFn() func(float32) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tickCallback
}

func (e *engine) renderCallbackFn() func(float32) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.renderCallback
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect on the next tick.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// Replace any pending update that the loop has not consumed yet.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) TickRate() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engineTickRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
