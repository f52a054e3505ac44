package core

// ---- Sides ----

// Side identifies one of the two opposing factions
type Side uint8

const (
	SidePlayer Side = iota
	SideEnemy
)

// Opponent returns the opposing side
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ---- Infantry ----

// WeaponType selects the on-hit effect of a projectile
type WeaponType uint8

const (
	WeaponRifle   WeaponType = iota
	WeaponMachine            // hits also suppress
)

func (t WeaponType) String() string {
	if t == WeaponMachine {
		return "machine"
	}
	return "rifle"
}

// UnitID is a per-World identifier for infantry units
type UnitID uint64

// Unit is a single infantryman
type Unit struct {
	ID         UnitID
	Pos        Vec2
	Side       Side
	Weapon     WeaponType
	HP         int
	Reload     int   // ticks until the unit may fire again
	Target     *Vec2 // pending move order, nil when none
	Suppressed int   // ticks of remaining suppression
}

// Alive reports whether the unit still has hit points. Dead units stay in
// their collection until the end of the system that killed them.
func (u *Unit) Alive() bool { return u.HP > 0 }

// ---- Projectiles ----

// Projectile is a bullet flying toward a fixed point. The target point is
// captured when fired and never re-aimed.
type Projectile struct {
	Origin Vec2
	Pos    Vec2
	Target Vec2
	Side   Side
	Weapon WeaponType
}

// Remaining returns the distance left to the target point
func (p *Projectile) Remaining() float64 {
	return p.Pos.DistanceTo(p.Target)
}

// ---- Artillery ----

// Explosion is an expanding blast attributed to a side for kill credit
type Explosion struct {
	Center    Vec2
	Radius    float64
	MaxRadius float64
	Side      Side

	hit map[UnitID]struct{} // units already damaged, for one-shot blasts
}

// MarkHit records that u was damaged by this blast. It returns false if u
// had already been marked.
func (e *Explosion) MarkHit(id UnitID) bool {
	if e.hit == nil {
		e.hit = make(map[UnitID]struct{})
	}
	if _, ok := e.hit[id]; ok {
		return false
	}
	e.hit[id] = struct{}{}
	return true
}

// ---- Smoke ----

// Smoke is a decorative puff left where a unit was hit
type Smoke struct {
	Pos  Vec2
	Life int
}

// ---- Vehicles ----

// VehicleState is the vehicle advance state machine
type VehicleState uint8

const (
	VehicleAdvancing VehicleState = iota
	VehicleSieging
	VehicleIdle
)

func (s VehicleState) String() string {
	switch s {
	case VehicleAdvancing:
		return "advancing"
	case VehicleSieging:
		return "sieging"
	case VehicleIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Vehicle is an armored vehicle that grinds through opposing structures in order
type Vehicle struct {
	Pos       Vec2
	Side      Side
	HP        int
	Objective int // index into the opposing structures, in registry order
	State     VehicleState
}

// ---- Structures ----

// Structure is a trench line: cover for its own side, an objective for the other
type Structure struct {
	Rect
	Side Side
	HP   int
}

// Breached reports whether the structure has been worn down to zero
func (s *Structure) Breached() bool { return s.HP <= 0 }
