package controller

// AnimationState is the clip the controller asks the character to play.
type AnimationState int

const (
	AnimationIdle AnimationState = iota
	AnimationWalk
	AnimationRun
)

// String returns the clip name the animation player is keyed by.
func (a AnimationState) String() string {
	switch a {
	case AnimationWalk:
		return "walk"
	case AnimationRun:
		return "run"
	default:
		return "idle"
	}
}
