package systems

import (
	"github.com/1siamBot/trench-sim/engine/core"
)

// ArtillerySystem grows explosions and applies their area damage
type ArtillerySystem struct{}

func (s *ArtillerySystem) Priority() int { return 30 }

func (s *ArtillerySystem) Update(w *core.World) {
	AdvanceExplosions(w)
}

// TriggerArtillery starts a blast at (x, y) credited to side and kicks the camera
func TriggerArtillery(w *core.World, x, y float64, side core.Side) *core.Explosion {
	e := &core.Explosion{
		Center:    core.Vec2{X: x, Y: y},
		MaxRadius: w.Rules.ExplosionMaxRadius,
		Side:      side,
	}
	w.Explosions = append(w.Explosions, e)
	w.Shake = w.Rules.ShakeTicks
	w.Emit(core.EvtExplosion, e.Center, side, nil)
	w.Emit(core.EvtScreenShake, e.Center, side, w.Rules.ShakeTicks)
	return e
}

// AdvanceExplosions widens every blast by one growth step. A blast past its
// max radius is removed without dealing damage that tick; otherwise every
// opposing unit strictly inside the radius is hit.
func AdvanceExplosions(w *core.World) {
	kept := w.Explosions[:0]
	for _, e := range w.Explosions {
		e.Radius += w.Rules.ExplosionGrowth
		if e.Radius > e.MaxRadius {
			continue
		}
		for _, u := range w.UnitsOf(e.Side.Opponent()) {
			if !u.Alive() || e.Center.DistanceTo(u.Pos) >= e.Radius {
				continue
			}
			if !w.Rules.RepeatExplosionDamage && !e.MarkHit(u.ID) {
				continue
			}
			w.Emit(core.EvtUnitHit, u.Pos, e.Side, core.HitInfo{Unit: u.ID, Damage: w.Rules.ExplosionDamage})
			ApplyDamage(w, u, w.Rules.ExplosionDamage, e.Side)
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.Explosions); i++ {
		w.Explosions[i] = nil
	}
	w.Explosions = kept
}
