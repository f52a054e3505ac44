package systems

import (
	"math"

	"github.com/1siamBot/trench-sim/engine/core"
)

// ReturnFireSystem lets player riflemen shoot back with the same target
// selection and reload gating the enemy uses. It never calls artillery.
type ReturnFireSystem struct{}

func (s *ReturnFireSystem) Priority() int { return 55 }

func (s *ReturnFireSystem) Update(w *core.World) {
	if !w.Rules.ReturnFire {
		return
	}
	for _, u := range w.Players {
		if u.Alive() {
			Engage(w, u, w.Enemies)
		}
	}
}

// NearestTarget returns the closest living unit to from. Ties go to the
// first one in collection order. nil and +Inf are returned when there is
// nobody left.
func NearestTarget(from core.Vec2, targets []*core.Unit) (*core.Unit, float64) {
	var best *core.Unit
	bestDist := math.Inf(1)
	for _, t := range targets {
		if !t.Alive() {
			continue
		}
		if d := from.DistanceTo(t.Pos); d < bestDist {
			bestDist = d
			best = t
		}
	}
	return best, bestDist
}

// Engage fires u at its nearest target when one is in range and the weapon
// is loaded, then counts the reload down by one tick. It reports whether a
// shot was fired.
func Engage(w *core.World, u *core.Unit, targets []*core.Unit) bool {
	fired := false
	nearest, dist := NearestTarget(u.Pos, targets)
	if nearest != nil && dist < w.Rules.FireRange && u.Reload <= 0 {
		Fire(w, u, nearest)
		u.Reload = w.Rules.ReloadTicks
		fired = true
	}
	if u.Reload > 0 {
		u.Reload--
	}
	return fired
}

// Fire launches a projectile from attacker toward where target stands now
func Fire(w *core.World, attacker, target *core.Unit) *core.Projectile {
	p := &core.Projectile{
		Origin: attacker.Pos,
		Pos:    attacker.Pos,
		Target: target.Pos,
		Side:   attacker.Side,
		Weapon: attacker.Weapon,
	}
	w.Projectiles = append(w.Projectiles, p)
	w.Emit(core.EvtGunshot, attacker.Pos, attacker.Side, nil)
	return p
}

// ApplyDamage takes hp from u on behalf of the attributed side. A unit
// brought to zero is dead for the rest of the tick and, if the player side
// did it, scores a kill. It reports whether the unit died.
func ApplyDamage(w *core.World, u *core.Unit, damage int, by core.Side) bool {
	if !u.Alive() {
		return false
	}
	u.HP -= damage
	if u.Alive() {
		return false
	}
	if by == core.SidePlayer {
		w.Kills++
	}
	w.Emit(core.EvtUnitKilled, u.Pos, by, core.HitInfo{Unit: u.ID, Damage: damage})
	return true
}

// Suppress pins u down for the configured number of ticks
func Suppress(w *core.World, u *core.Unit) {
	u.Suppressed = w.Rules.SuppressionTicks
}
