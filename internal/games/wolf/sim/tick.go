package sim

// TickResult reports what one Tick did.
type TickResult struct {
	Tics      int
	PlayState PlayState
}

// Tick advances the world by elapsedMs of wall-clock time, clamped to the
// configured maximum frame so a stalled host does not cause a huge jump.
func (w *World) Tick(elapsedMs int, cmd Cmd) TickResult {
	if elapsedMs > w.opts.MaxFrameMs {
		elapsedMs = w.opts.MaxFrameMs
	}
	tics := w.clock.MsToTics(elapsedMs)
	if tics > 0 {
		w.RunTics(tics, cmd)
	}
	return TickResult{Tics: tics, PlayState: w.Player.PlayState}
}

// RunTics advances the world by a whole number of tics: player first, then
// every actor in array order, then the push-wall and the doors.
func (w *World) RunTics(tics int, cmd Cmd) {
	if tics <= 0 || w.Player.PlayState.Finished() || w.Player.PlayState == PlayNotInGame {
		return
	}
	w.tics = tics
	w.madeNoise = false

	switch w.Player.PlayState {
	case PlayPlaying:
		w.controlPlayer(cmd, tics)
	case PlayDeathCam:
		w.advanceDeathCam(tics)
	}

	w.sweepActors(tics)
	w.ProcessPushWall(tics)
	w.ProcessDoors(tics)

	w.State.Time += tics
	w.fadePlayer(tics)

	if w.Player.PlayState.Finished() && w.State.EndTime == 0 {
		w.State.EndTime = w.State.Time
	}
}

func (w *World) fadePlayer(tics int) {
	p := &w.Player
	p.DamageFlash = max(0, p.DamageFlash-tics)
	p.FaceWince = max(0, p.FaceWince-tics)
}

// Time returns the level time in tics.
func (w *World) Time() int {
	return w.State.Time
}
