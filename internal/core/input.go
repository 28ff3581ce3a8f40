package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W, Up arrow - walk forward
	ActionBackward           // S, Down arrow - walk backward
	ActionTurnLeft           // A, Left arrow - turn counter-clockwise
	ActionTurnRight          // D, Right arrow - turn clockwise
	ActionStrafeLeft         // Q, comma - sidestep left
	ActionStrafeRight        // E, period - sidestep right
	ActionFire               // Space, Ctrl - attack with the current weapon
	ActionUse                // F, Enter - open doors, push walls, ride elevators
	ActionRun                // Shift held with a movement key
	ActionWeapon1            // 1 - knife
	ActionWeapon2            // 2 - pistol
	ActionWeapon3            // 3 - machine gun
	ActionWeapon4            // 4 - chain gun
	ActionNextWeapon         // Tab - cycle owned weapons
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R key - restart after game over
	ActionQuit               // Ctrl+C - exit game/session
	ActionPause              // P - pause/unpause game
	ActionSave               // Ctrl+S - write the save slot
	ActionLoad               // Ctrl+L - restore the save slot
	ActionZoomIn             // + - automap zoom in
	ActionZoomOut            // - - automap zoom out
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionForward:     "Forward",
	ActionBackward:    "Backward",
	ActionTurnLeft:    "TurnLeft",
	ActionTurnRight:   "TurnRight",
	ActionStrafeLeft:  "StrafeLeft",
	ActionStrafeRight: "StrafeRight",
	ActionFire:        "Fire",
	ActionUse:         "Use",
	ActionRun:         "Run",
	ActionWeapon1:     "Weapon1",
	ActionWeapon2:     "Weapon2",
	ActionWeapon3:     "Weapon3",
	ActionWeapon4:     "Weapon4",
	ActionNextWeapon:  "NextWeapon",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionRestart:     "Restart",
	ActionQuit:        "Quit",
	ActionPause:       "Pause",
	ActionSave:        "Save",
	ActionLoad:        "Load",
	ActionZoomIn:      "ZoomIn",
	ActionZoomOut:     "ZoomOut",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether the action steers the player.
func (a Action) IsMovement() bool {
	return a >= ActionForward && a <= ActionStrafeRight
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
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

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
