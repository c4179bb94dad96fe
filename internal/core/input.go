package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action uint8

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - paddle left
	ActionRight          // D, Right arrow - paddle right
	ActionStop           // S, Down arrow - stop the paddle
	ActionLaunch         // Space, Enter - begin the round
	ActionPause          // P, Escape - pause/unpause
	ActionRestart        // R - restart after game over or win
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStop:
		return "Stop"
	case ActionLaunch:
		return "Launch"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input gathered during one simulation tick.
// Actions are kept as a bitmask so frames are cheap to copy and record.
type InputFrame struct {
	Actions uint16

	// Pointer is the last pointer column seen this tick, in screen cells.
	Pointer    int
	HasPointer bool
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	f.Actions |= 1 << a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions&(1<<a) != 0
}

// SetPointer records an absolute pointer column for this frame.
func (f *InputFrame) SetPointer(x int) {
	f.Pointer = x
	f.HasPointer = true
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return f.Actions == 0 && !f.HasPointer
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// InputLog records one InputFrame per tick so a round can be re-simulated.
type InputLog struct {
	frames []InputFrame
}

// Append records the input of one tick.
func (l *InputLog) Append(f InputFrame) {
	l.frames = append(l.frames, f)
}

// Frames returns the recorded frames in tick order.
func (l *InputLog) Frames() []InputFrame {
	return l.frames
}

// Len returns the number of recorded ticks.
func (l *InputLog) Len() int {
	return len(l.frames)
}
