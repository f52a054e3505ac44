package systems

import (
	"github.com/1siamBot/trench-sim/engine/core"
)

// FogState represents visibility of a point for the player
type FogState uint8

const (
	FogHidden  FogState = iota // no player unit can see it
	FogVisible                 // inside some player unit's vision radius
)

// FogOfWar answers visibility queries against the player's units. Build one
// per frame; it copies positions so it stays valid while the world moves on.
type FogOfWar struct {
	Radius float64
	eyes   []core.Vec2
}

// NewFogOfWar snapshots the living player units
func NewFogOfWar(players []*core.Unit, radius float64) *FogOfWar {
	f := &FogOfWar{Radius: radius}
	for _, u := range players {
		if u.Alive() {
			f.eyes = append(f.eyes, u.Pos)
		}
	}
	return f
}

// At returns the fog state at p
func (f *FogOfWar) At(p core.Vec2) FogState {
	for _, e := range f.eyes {
		if e.DistanceTo(p) < f.Radius {
			return FogVisible
		}
	}
	return FogHidden
}

// IsVisible returns true if p is currently visible
func (f *FogOfWar) IsVisible(p core.Vec2) bool {
	return f.At(p) == FogVisible
}
