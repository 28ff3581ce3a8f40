package tui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-wolf/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected []core.Action
		quit     bool
	}{
		{"w walks", runeKey("w"), []core.Action{core.ActionForward}, false},
		{"up walks", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionForward}, false},
		{"shift W runs", runeKey("W"), []core.Action{core.ActionForward, core.ActionRun}, false},
		{"shift+left runs", tea.KeyMsg{Type: tea.KeyShiftLeft}, []core.Action{core.ActionTurnLeft, core.ActionRun}, false},
		{"q strafes", runeKey("q"), []core.Action{core.ActionStrafeLeft}, false},
		{"space fires", runeKey(" "), []core.Action{core.ActionFire}, false},
		{"enter uses", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionUse}, false},
		{"3 picks weapon", runeKey("3"), []core.Action{core.ActionWeapon3}, false},
		{"tab cycles weapons", tea.KeyMsg{Type: tea.KeyTab}, []core.Action{core.ActionNextWeapon}, false},
		{"ctrl+s saves", tea.KeyMsg{Type: tea.KeyCtrlS}, []core.Action{core.ActionSave}, false},
		{"ctrl+l loads", tea.KeyMsg{Type: tea.KeyCtrlL}, []core.Action{core.ActionLoad}, false},
		{"minus zooms out", runeKey("-"), []core.Action{core.ActionZoomOut}, false},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}, true},
		{"unbound", runeKey("z"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if !slices.Equal(got, tt.expected) || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), got, quit, tt.expected, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	if km.MapKeyToFrame(runeKey("D"), &frame) {
		t.Fatal("MapKeyToFrame() reported quit")
	}
	if !frame.Has(core.ActionTurnRight) || !frame.Has(core.ActionRun) {
		t.Errorf("frame = %v, expected TurnRight and Run", frame.Actions)
	}
	if !km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame) {
		t.Error("ctrl+c should quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
