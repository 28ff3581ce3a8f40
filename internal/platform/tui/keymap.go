package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-wolf/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// keyActions holds the bindings that produce game actions. Shifted
// movement keys run.
var keyActions = map[string][]core.Action{
	"w":     {core.ActionForward},
	"up":    {core.ActionForward},
	"s":     {core.ActionBackward},
	"down":  {core.ActionBackward},
	"a":     {core.ActionTurnLeft},
	"left":  {core.ActionTurnLeft},
	"d":     {core.ActionTurnRight},
	"right": {core.ActionTurnRight},
	"q":     {core.ActionStrafeLeft},
	",":     {core.ActionStrafeLeft},
	"e":     {core.ActionStrafeRight},
	".":     {core.ActionStrafeRight},

	"W": {core.ActionForward, core.ActionRun},
	"S": {core.ActionBackward, core.ActionRun},
	"A": {core.ActionTurnLeft, core.ActionRun},
	"D": {core.ActionTurnRight, core.ActionRun},
	"Q": {core.ActionStrafeLeft, core.ActionRun},
	"E": {core.ActionStrafeRight, core.ActionRun},
	"<": {core.ActionStrafeLeft, core.ActionRun},
	">": {core.ActionStrafeRight, core.ActionRun},

	"shift+up":    {core.ActionForward, core.ActionRun},
	"shift+down":  {core.ActionBackward, core.ActionRun},
	"shift+left":  {core.ActionTurnLeft, core.ActionRun},
	"shift+right": {core.ActionTurnRight, core.ActionRun},

	" ":     {core.ActionFire},
	"f":     {core.ActionUse},
	"enter": {core.ActionUse},
	"1":     {core.ActionWeapon1},
	"2":     {core.ActionWeapon2},
	"3":     {core.ActionWeapon3},
	"4":     {core.ActionWeapon4},
	"tab":   {core.ActionNextWeapon},

	"p":      {core.ActionPause},
	"esc":    {core.ActionPause},
	"r":      {core.ActionRestart},
	"ctrl+s": {core.ActionSave},
	"ctrl+l": {core.ActionLoad},
	"+":      {core.ActionZoomIn},
	"=":      {core.ActionZoomIn},
	"-":      {core.ActionZoomOut},
}

// MapKey translates a key message to game actions.
// Returns the actions (nil for unbound keys) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return []core.Action{core.ActionQuit}, true
	}
	return keyActions[key], false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
