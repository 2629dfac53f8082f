package core

// Action is a semantic input, decoupled from the physical key or request
// that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionEasy    // Select easy difficulty
	ActionMedium  // Select medium difficulty
	ActionHard    // Select hard difficulty
	ActionCycle   // Cycle to the next difficulty
	ActionRestart // Restart with a fresh maze
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionEasy:
		return "Easy"
	case ActionMedium:
		return "Medium"
	case ActionHard:
		return "Hard"
	case ActionCycle:
		return "Cycle"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four directions.
func (a Action) IsMove() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}
