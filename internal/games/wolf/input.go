package wolf

import (
	"github.com/vovakirdan/tui-wolf/internal/config"
	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/sim"
)

// heldActions are kept active for holdMs after their last press.
var heldActions = []core.Action{
	core.ActionForward, core.ActionBackward,
	core.ActionTurnLeft, core.ActionTurnRight,
	core.ActionStrafeLeft, core.ActionStrafeRight,
	core.ActionRun, core.ActionFire,
}

// opposites cancel each other's hold on press, so reversing is immediate.
var opposites = map[core.Action]core.Action{
	core.ActionForward:     core.ActionBackward,
	core.ActionBackward:    core.ActionForward,
	core.ActionTurnLeft:    core.ActionTurnRight,
	core.ActionTurnRight:   core.ActionTurnLeft,
	core.ActionStrafeLeft:  core.ActionStrafeRight,
	core.ActionStrafeRight: core.ActionStrafeLeft,
}

// controls turns terminal key presses into per-tic player commands.
// Terminals report presses and repeats but never releases, so a key counts
// as held until holdMs pass without a repeat.
type controls struct {
	speeds config.PlayerConfig
	remain map[core.Action]int
}

func newControls(speeds config.PlayerConfig) *controls {
	return &controls{speeds: speeds, remain: make(map[core.Action]int)}
}

func (c *controls) reset() {
	clear(c.remain)
}

// command ages the holds by frameMs, registers this frame's presses and
// returns the resulting command.
func (c *controls) command(in core.InputFrame, frameMs int) sim.Cmd {
	for a, ms := range c.remain {
		if ms -= frameMs; ms <= 0 {
			delete(c.remain, a)
		} else {
			c.remain[a] = ms
		}
	}
	for _, a := range heldActions {
		if !in.Has(a) {
			continue
		}
		c.remain[a] = max(c.speeds.HoldMs, frameMs)
		if opp, ok := opposites[a]; ok {
			delete(c.remain, opp)
		}
	}

	walk, turn := c.speeds.WalkSpeed, c.speeds.TurnSpeed
	if c.held(core.ActionRun) {
		walk, turn = c.speeds.RunSpeed, c.speeds.RunTurnSpeed
	}

	var cmd sim.Cmd
	cmd.Forward = c.axis(core.ActionForward, core.ActionBackward) * walk
	cmd.Strafe = c.axis(core.ActionStrafeRight, core.ActionStrafeLeft) * walk
	cmd.Turn = c.axis(core.ActionTurnLeft, core.ActionTurnRight) * turn
	cmd.Attack = c.held(core.ActionFire)
	cmd.Use = in.Has(core.ActionUse)

	switch {
	case in.Has(core.ActionWeapon1):
		cmd.Impulse = 1
	case in.Has(core.ActionWeapon2):
		cmd.Impulse = 2
	case in.Has(core.ActionWeapon3):
		cmd.Impulse = 3
	case in.Has(core.ActionWeapon4):
		cmd.Impulse = 4
	case in.Has(core.ActionNextWeapon):
		cmd.Impulse = sim.ImpulseNextWeapon
	}
	return cmd
}

func (c *controls) held(a core.Action) bool {
	return c.remain[a] > 0
}

func (c *controls) axis(pos, neg core.Action) int {
	switch {
	case c.held(pos):
		return 1
	case c.held(neg):
		return -1
	}
	return 0
}
