package systems

import (
	"github.com/1siamBot/trench-sim/engine/core"
)

// ProjectileSystem moves bullets and resolves their hits
type ProjectileSystem struct{}

func (s *ProjectileSystem) Priority() int { return 20 }

func (s *ProjectileSystem) Update(w *core.World) {
	AdvanceProjectiles(w)
	ResolveHits(w)
}

// AdvanceProjectiles moves every bullet straight at its fixed target point.
// Bullets within the arrival distance stay put, and a step never carries a
// bullet past its target.
func AdvanceProjectiles(w *core.World) {
	for _, p := range w.Projectiles {
		if p.Remaining() > w.Rules.ArrivalDistance {
			p.Pos = p.Pos.StepToward(p.Target, w.Rules.ProjectileSpeed)
		}
	}
}

// ResolveHits checks each bullet against the opposing side. The first
// living unit inside the hit radius takes the bullet; at most one hit per
// bullet per tick.
func ResolveHits(w *core.World) {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if hitFirst(w, p) {
			continue
		}
		if w.Rules.ExpireOnArrival && p.Remaining() <= w.Rules.ArrivalDistance {
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(w.Projectiles); i++ {
		w.Projectiles[i] = nil
	}
	w.Projectiles = kept
}

func hitFirst(w *core.World, p *core.Projectile) bool {
	for _, u := range w.UnitsOf(p.Side.Opponent()) {
		if !u.Alive() || p.Pos.DistanceTo(u.Pos) >= w.Rules.HitRadius {
			continue
		}
		cover := w.InCover(u)
		damage := w.Rules.BulletDamage
		if cover {
			damage = w.Rules.CoverDamage
		}
		if p.Weapon == core.WeaponMachine {
			Suppress(w, u)
		}
		w.Emit(core.EvtUnitHit, u.Pos, p.Side, core.HitInfo{Unit: u.ID, Damage: damage, Cover: cover})
		ApplyDamage(w, u, damage, p.Side)
		SpawnSmoke(w, u.Pos)
		return true
	}
	return false
}
