package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up
	ActionDown           // S, Down arrow - move down
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionFire           // Space, mouse click - fire toward the pointer
	ActionRestart        // G - new round: clear projectiles and respawn targets
	ActionRespawn        // R - respawn targets only
	ActionPause          // P, Escape - pause/unpause game
	ActionHelp           // ? - toggle the key help footer
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionFire:
		return "Fire"
	case ActionRestart:
		return "Restart"
	case ActionRespawn:
		return "Respawn"
	case ActionPause:
		return "Pause"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the last known pointer cell (mouse position).
	// Only meaningful when HasPointer is true.
	Pointer    Point
	HasPointer bool

	// Elapsed is the wall time covered by this tick. Zero means the game
	// should assume one nominal tick (1 / TickRate).
	Elapsed time.Duration
}

// Point is an integer cell coordinate.
type Point struct {
	X, Y int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records the pointer cell for this frame.
func (f *InputFrame) SetPointer(x, y int) {
	f.Pointer = Point{X: x, Y: y}
	f.HasPointer = true
}

// Clear resets all actions for the next frame.
// The pointer is kept since it is a position, not an event.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Elapsed = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f
	clone.Actions = make(map[Action]bool, len(f.Actions))
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
