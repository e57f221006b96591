package core

// Action represents a semantic game action, abstracted from physical key presses.
// Frontends translate keys, window events and SSH input into actions.
type Action int

const (
	ActionNone Action = iota
	ActionJump        // Space - primary action: flap while playing, restart after a crash
	ActionQuit        // Escape, Q, Ctrl+C, window close - end the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered since the previous frame.
// Unlike a set, it keeps arrival order and duplicates: two presses of the
// primary action within one frame are two events.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{actions: make([]Action, 0, 4)}
}

// Push appends an action. ActionNone is dropped.
func (f *InputFrame) Push(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the pending actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Len returns the number of pending actions.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear resets the frame for the next tick, reusing its storage.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
