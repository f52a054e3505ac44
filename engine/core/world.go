package core

// World owns every live entity collection and the score. Systems receive it
// explicitly; nothing outside the World keeps references to its entities
// across ticks.
type World struct {
	Rules Rules
	Bus   *EventBus

	Players     []*Unit
	Enemies     []*Unit
	Projectiles []*Projectile
	Explosions  []*Explosion
	Smoke       []*Smoke
	Vehicles    []*Vehicle
	Structures  []*Structure

	Kills     int // enemy units killed by player fire, never decreases
	Shake     int // remaining screen-shake ticks
	TickCount uint64
	Width     float64
	Height    float64

	systems []System
	nextID  UnitID
}

// System processes the world once per tick
type System interface {
	Update(w *World)
	Priority() int
}

// NewWorld creates an empty world with its own event bus
func NewWorld(rules Rules) *World {
	return &World{
		Rules: rules,
		Bus:   NewEventBus(),
	}
}

// Deploy places the scenario's units, structures and vehicles
func (w *World) Deploy(sc Scenario) {
	w.Width, w.Height = sc.Width, sc.Height

	machine := make(map[int]bool, len(sc.MachineGunners))
	for _, i := range sc.MachineGunners {
		machine[i] = true
	}
	for i := 0; i < sc.UnitsPerSide; i++ {
		wep := WeaponRifle
		if machine[i] {
			wep = WeaponMachine
		}
		x := sc.FirstColumn + float64(i)*sc.Spacing
		w.SpawnUnit(Vec2{X: x, Y: sc.PlayerRow}, SidePlayer, wep)
		w.SpawnUnit(Vec2{X: x, Y: sc.EnemyRow}, SideEnemy, wep)
	}
	for _, s := range sc.Structures {
		st := s
		w.Structures = append(w.Structures, &st)
	}
	for _, v := range sc.Vehicles {
		w.SpawnVehicle(Vec2{X: v.X, Y: v.Y}, v.Side)
	}
}

// SpawnUnit adds a fresh unit to its side's collection
func (w *World) SpawnUnit(pos Vec2, side Side, wep WeaponType) *Unit {
	w.nextID++
	u := &Unit{
		ID:     w.nextID,
		Pos:    pos,
		Side:   side,
		Weapon: wep,
		HP:     w.Rules.UnitHP,
	}
	if side == SidePlayer {
		w.Players = append(w.Players, u)
	} else {
		w.Enemies = append(w.Enemies, u)
	}
	return u
}

// SpawnVehicle adds a vehicle heading for the first opposing structure
func (w *World) SpawnVehicle(pos Vec2, side Side) *Vehicle {
	v := &Vehicle{Pos: pos, Side: side, HP: w.Rules.VehicleHP}
	w.Vehicles = append(w.Vehicles, v)
	return v
}

// UnitsOf returns the live collection of a side
func (w *World) UnitsOf(side Side) []*Unit {
	if side == SidePlayer {
		return w.Players
	}
	return w.Enemies
}

// Unit finds a living unit by id
func (w *World) Unit(id UnitID) *Unit {
	for _, units := range [2][]*Unit{w.Players, w.Enemies} {
		for _, u := range units {
			if u.ID == id && u.Alive() {
				return u
			}
		}
	}
	return nil
}

// InCover reports whether u stands inside a structure of its own side
func (w *World) InCover(u *Unit) bool {
	for _, s := range w.Structures {
		if s.Side == u.Side && s.Contains(u.Pos) {
			return true
		}
	}
	return false
}

// OpposingStructures returns the structures not owned by side, in registry order
func (w *World) OpposingStructures(side Side) []*Structure {
	var result []*Structure
	for _, s := range w.Structures {
		if s.Side != side {
			result = append(result, s)
		}
	}
	return result
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Systems returns the registered systems in the order Step runs them
func (w *World) Systems() []System {
	return append([]System(nil), w.systems...)
}

// Step runs all systems once, in priority order, then dispatches the
// events they queued.
func (w *World) Step() {
	for _, s := range w.systems {
		s.Update(w)
		w.sweep()
	}
	w.TickCount++
	w.Bus.Dispatch()
}

// sweep compacts dead units out of both collections
func (w *World) sweep() {
	w.Players = compactUnits(w.Players)
	w.Enemies = compactUnits(w.Enemies)
}

func compactUnits(units []*Unit) []*Unit {
	kept := units[:0]
	for _, u := range units {
		if u.Alive() {
			kept = append(kept, u)
		}
	}
	// Drop references left in the tail
	for i := len(kept); i < len(units); i++ {
		units[i] = nil
	}
	return kept
}

// Outcome reports whether either side has been wiped out
func (w *World) Outcome() Outcome {
	switch {
	case len(w.Enemies) == 0 && len(w.Players) > 0:
		return PlayerVictory
	case len(w.Players) == 0 && len(w.Enemies) > 0:
		return EnemyVictory
	case len(w.Players) == 0 && len(w.Enemies) == 0:
		return Draw
	}
	return Ongoing
}

// Outcome is the state of the battle
type Outcome uint8

const (
	Ongoing Outcome = iota
	PlayerVictory
	EnemyVictory
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case PlayerVictory:
		return "player victory"
	case EnemyVictory:
		return "enemy victory"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}
