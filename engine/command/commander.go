package command

import (
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/systems"
)

// Commander turns player commands into world changes. Commands are queued
// by the input layer and applied at the start of the next tick, so a live
// session and a replay of its command log evolve identically.
type Commander struct {
	world    *core.World
	pending  []GameCommand
	replay   *Replay
	recorder *Recorder

	anchor   *core.Vec2
	selected []core.UnitID

	// first tick at which the player may call artillery again
	artilleryReady uint64
	err            error
}

// NewCommander creates a commander bound to w
func NewCommander(w *core.World) *Commander {
	return &Commander{world: w}
}

func (c *Commander) Priority() int { return 5 }

// Record logs every applied command to rec
func (c *Commander) Record(rec *Recorder) { c.recorder = rec }

// Play feeds the commands of a loaded log back in at their ticks
func (c *Commander) Play(r *Replay) { c.replay = r }

// Err returns the first error hit while recording
func (c *Commander) Err() error { return c.err }

// Press anchors a selection box
func (c *Commander) Press(x, y float64) { c.enqueue(CmdSelectBegin, x, y) }

// Release closes the selection box opened by Press
func (c *Commander) Release(x, y float64) { c.enqueue(CmdSelectEnd, x, y) }

// Click orders the selected units to (x, y)
func (c *Commander) Click(x, y float64) { c.enqueue(CmdMoveOrder, x, y) }

// CallArtillery requests a player strike on (x, y)
func (c *Commander) CallArtillery(x, y float64) { c.enqueue(CmdArtillery, x, y) }

// SpawnVehicle deploys a player vehicle at (x, y)
func (c *Commander) SpawnVehicle(x, y float64) { c.enqueue(CmdSpawnVehicle, x, y) }

func (c *Commander) enqueue(t CmdType, x, y float64) {
	c.pending = append(c.pending, GameCommand{Tick: c.world.TickCount, Type: t, X: x, Y: y})
}

// Selecting reports the anchor of an open selection box
func (c *Commander) Selecting() (core.Vec2, bool) {
	if c.anchor == nil {
		return core.Vec2{}, false
	}
	return *c.anchor, true
}

// Selected returns the living selected units
func (c *Commander) Selected() []*core.Unit {
	var units []*core.Unit
	for _, id := range c.selected {
		if u := c.world.Unit(id); u != nil {
			units = append(units, u)
		}
	}
	return units
}

// IsSelected reports whether unit id is in the current selection
func (c *Commander) IsSelected(id core.UnitID) bool {
	for _, s := range c.selected {
		if s == id {
			return true
		}
	}
	return false
}

// ArtilleryReady reports whether a player strike would be accepted now
func (c *Commander) ArtilleryReady() bool {
	return c.world.TickCount >= c.artilleryReady
}

func (c *Commander) Update(w *core.World) {
	var cmds []GameCommand
	if c.replay != nil {
		cmds = c.replay.CommandsForTick(w.TickCount)
	}
	for _, cmd := range c.pending {
		cmd.Tick = w.TickCount
		cmds = append(cmds, cmd)
	}
	c.pending = c.pending[:0]

	for _, cmd := range cmds {
		c.apply(w, cmd)
		if c.recorder != nil && c.err == nil {
			c.err = c.recorder.Record(cmd)
		}
	}
}

func (c *Commander) apply(w *core.World, cmd GameCommand) {
	p := core.Vec2{X: cmd.X, Y: cmd.Y}
	switch cmd.Type {
	case CmdSelectBegin:
		c.anchor = &p
	case CmdSelectEnd:
		if c.anchor == nil {
			return
		}
		box := core.RectFromCorners(*c.anchor, p)
		c.anchor = nil
		c.selected = c.selected[:0]
		for _, u := range w.Players {
			if u.Alive() && box.Contains(u.Pos) {
				c.selected = append(c.selected, u.ID)
			}
		}
		w.Emit(core.EvtSelection, box.Center(), core.SidePlayer, len(c.selected))
	case CmdMoveOrder:
		units := c.Selected()
		for _, u := range units {
			systems.OrderMove(u, p.X, p.Y)
		}
		if len(units) > 0 {
			w.Emit(core.EvtMoveOrder, p, core.SidePlayer, len(units))
		}
	case CmdArtillery:
		if !c.ArtilleryReady() {
			return
		}
		systems.TriggerArtillery(w, p.X, p.Y, core.SidePlayer)
		c.artilleryReady = w.TickCount + uint64(w.Rules.PlayerArtilleryCooldown)
	case CmdSpawnVehicle:
		w.SpawnVehicle(p, core.SidePlayer)
		w.Emit(core.EvtVehicleSpawned, p, core.SidePlayer, nil)
	}
}
