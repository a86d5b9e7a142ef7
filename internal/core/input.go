package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // Slide tiles left
	ActionUp           // Slide tiles up
	ActionRight        // Slide tiles right
	ActionDown         // Slide tiles down
	ActionReset        // Start over; honoured only after game over
	ActionUndo         // Revert the last move
	ActionQuit         // Leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionReset:
		return "Reset"
	case ActionUndo:
		return "Undo"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action is one of the four slide directions.
func (a Action) IsDirection() bool {
	return a >= ActionLeft && a <= ActionDown
}
