package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
)

// NumAreas is the size of the area graph.
const NumAreas = level.NumAreas

// AreaGraph tracks which areas are joined by open doors and which of them
// the player can currently hear or see into.
type AreaGraph struct {
	// Links counts open doors between each pair of areas.
	Links [NumAreas][NumAreas]int
	// ByPlayer marks areas reachable from the player's area.
	ByPlayer [NumAreas]bool

	// Strict panics on count underflow instead of clamping.
	Strict bool
}

func validArea(a int) bool {
	return a >= 0 && a < NumAreas
}

// Init clears the graph and marks area as reachable.
func (g *AreaGraph) Init(area int) {
	g.Links = [NumAreas][NumAreas]int{}
	g.ByPlayer = [NumAreas]bool{}
	if validArea(area) {
		g.ByPlayer[area] = true
	}
}

// Join records one more open door between a and b.
func (g *AreaGraph) Join(a, b int) {
	if !validArea(a) || !validArea(b) {
		return
	}
	g.Links[a][b]++
	if a != b {
		g.Links[b][a]++
	}
}

// Disconnect removes one open door between a and b.
func (g *AreaGraph) Disconnect(a, b int) {
	if !validArea(a) || !validArea(b) {
		return
	}
	if g.Links[a][b] <= 0 || g.Links[b][a] <= 0 {
		if g.Strict {
			panic(fmt.Sprintf("sim: area connection %d-%d underflow", a, b))
		}
		g.Links[a][b] = 0
		g.Links[b][a] = 0
		return
	}
	g.Links[a][b]--
	if a != b {
		g.Links[b][a]--
	}
}

// Connect recomputes reachability starting from area.
func (g *AreaGraph) Connect(area int) {
	g.ByPlayer = [NumAreas]bool{}
	if !validArea(area) {
		return
	}
	g.ByPlayer[area] = true
	g.visit(area)
}

func (g *AreaGraph) visit(area int) {
	for i := range NumAreas {
		if g.Links[area][i] > 0 && !g.ByPlayer[i] {
			g.ByPlayer[i] = true
			g.visit(i)
		}
	}
}

// Reachable reports whether area is connected to the player's area.
// Unresolved and special areas are never reachable.
func (g *AreaGraph) Reachable(area int) bool {
	return validArea(area) && g.ByPlayer[area]
}
