package input

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
)

// Snapshot is a consistent copy of the input state taken once per tick.
type Snapshot struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Run      bool

	// Interacting is the InteractionFlag: true while a pointer or touch press is held.
	Interacting bool
	// Pointer is the last known pointer position in normalized device coordinates.
	Pointer common.Pointer
}

// State accumulates input events from an event producer (the window thread) and
// hands out per-tick snapshots to the controller. Key and pointer state are guarded by
// a mutex; the interaction flag is a single-writer atomic.
type State struct {
	mu *sync.Mutex

	bindings Bindings
	held     map[uint32]bool
	pointer  common.Pointer

	interacting atomic.Bool
}

// NewState creates an empty State using the given bindings, or the defaults when nil.
//
// Parameters:
//   - bindings: key bindings per action
//
// Returns:
//   - *State: the new input state
func NewState(bindings Bindings) *State {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &State{
		mu:       &sync.Mutex{},
		bindings: bindings.Clone(),
		held:     make(map[uint32]bool),
	}
}

// KeyDown records a key press.
func (s *State) KeyDown(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[keyCode] = true
}

// KeyUp records a key release.
func (s *State) KeyUp(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, keyCode)
}

// SetPointer records the pointer position in normalized device coordinates.
func (s *State) SetPointer(p common.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = p
}

// SetInteracting sets the interaction flag. Called from press/release handlers.
func (s *State) SetInteracting(active bool) {
	s.interacting.Store(active)
}

// Interacting returns the current interaction flag.
func (s *State) Interacting() bool {
	return s.interacting.Load()
}

// Pressed reports whether any key bound to action is held.
//
// Parameters:
//   - action: the action to query
//
// Returns:
//   - bool: true if active
func (s *State) Pressed(action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressedLocked(action)
}

// SetBindings replaces the key bindings. Held keys are kept.
func (s *State) SetBindings(bindings Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings = bindings.Clone()
}

// Reset releases every key and clears the pointer and interaction flag.
func (s *State) Reset() {
	s.mu.Lock()
	s.held = make(map[uint32]bool)
	s.pointer = common.Pointer{}
	s.mu.Unlock()
	s.interacting.Store(false)
}

// Snapshot captures the state for one tick. The interaction flag is read exactly once.
//
// Returns:
//   - Snapshot: the captured state
func (s *State) Snapshot() Snapshot {
	interacting := s.interacting.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Forward:     s.pressedLocked(ActionForward),
		Backward:    s.pressedLocked(ActionBackward),
		Left:        s.pressedLocked(ActionLeft),
		Right:       s.pressedLocked(ActionRight),
		Run:         s.pressedLocked(ActionRun),
		Interacting: interacting,
		Pointer:     s.pointer,
	}
}

// pressedLocked reports whether any key bound to action is held. Caller must hold the mutex.
func (s *State) pressedLocked(action Action) bool {
	for _, key := range s.bindings[action] {
		if s.held[key] {
			return true
		}
	}
	return false
}
