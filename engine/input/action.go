package input

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
)

// Action is a named logical input that one or more physical keys can trigger.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionRun

	actionCount
)

var actionNames = [actionCount]string{
	ActionForward:  "forward",
	ActionBackward: "backward",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionRun:      "run",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves an action by its name, case-insensitively.
//
// Parameters:
//   - name: the action name (e.g. "forward")
//
// Returns:
//   - Action: the matching action
//   - error: error if the name is unknown
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if strings.EqualFold(n, name) {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// Bindings maps each action to the key codes that trigger it. An action is active
// while any of its keys is held.
type Bindings map[Action][]uint32

// DefaultBindings returns the arrow-key / WASD layout with Shift to run.
//
// Returns:
//   - Bindings: a fresh copy of the default bindings
func DefaultBindings() Bindings {
	return Bindings{
		ActionForward:  {common.KeyUp, common.KeyW},
		ActionBackward: {common.KeyDown, common.KeyS},
		ActionLeft:     {common.KeyLeft, common.KeyA},
		ActionRight:    {common.KeyRight, common.KeyD},
		ActionRun:      {common.KeyLeftShift, common.KeyRightShift},
	}
}

// Clone returns a deep copy of the bindings.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for a, keys := range b {
		out[a] = append([]uint32(nil), keys...)
	}
	return out
}
