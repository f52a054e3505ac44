package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContains_StrictBounds(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 40, H: 40}

	assert.True(t, r.Contains(Vec2{X: 30, Y: 30}))
	assert.False(t, r.Contains(Vec2{X: 10, Y: 30}), "left edge is outside")
	assert.False(t, r.Contains(Vec2{X: 50, Y: 30}), "right edge is outside")
	assert.False(t, r.Contains(Vec2{X: 30, Y: 50}), "bottom edge is outside")
	assert.Equal(t, Vec2{X: 30, Y: 30}, r.Center())
}

func TestRectFromCorners_AnyOrder(t *testing.T) {
	a := RectFromCorners(Vec2{X: 50, Y: 50}, Vec2{X: 10, Y: 10})
	b := RectFromCorners(Vec2{X: 10, Y: 50}, Vec2{X: 50, Y: 10})
	want := Rect{X: 10, Y: 10, W: 40, H: 40}
	assert.Equal(t, want, a)
	assert.Equal(t, want, b)
}

func TestStepToward_NeverOvershoots(t *testing.T) {
	p := Vec2{}
	target := Vec2{X: 10}

	p = p.StepToward(target, 7)
	assert.InDelta(t, 7, p.X, 1e-9)
	p = p.StepToward(target, 7)
	assert.Equal(t, target, p)
}

func TestDirection_CoincidentPoints(t *testing.T) {
	dir, dist := Vec2{X: 3, Y: 4}.Direction(Vec2{X: 3, Y: 4})
	assert.Equal(t, Vec2{}, dir)
	assert.Zero(t, dist)

	dir, dist = Vec2{}.Direction(Vec2{X: 3, Y: 4})
	assert.InDelta(t, 5, dist, 1e-9)
	assert.InDelta(t, 1, dir.Len(), 1e-9)
}

func TestDeploy_DefaultScenario(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.Deploy(DefaultScenario())

	require.Len(t, w.Players, 8)
	require.Len(t, w.Enemies, 8)
	require.Len(t, w.Structures, 2)

	assert.Equal(t, Vec2{X: 300, Y: 700}, w.Players[0].Pos)
	assert.Equal(t, Vec2{X: 510, Y: 175}, w.Enemies[7].Pos)
	for _, u := range append(append([]*Unit{}, w.Players...), w.Enemies...) {
		assert.Equal(t, 100, u.HP)
		assert.Equal(t, WeaponRifle, u.Weapon)
		assert.True(t, w.InCover(u), "unit %d starts in its trench", u.ID)
	}

	seen := make(map[UnitID]bool)
	for _, u := range append(append([]*Unit{}, w.Players...), w.Enemies...) {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
}

func TestDeploy_MachineGunners(t *testing.T) {
	sc := DefaultScenario()
	sc.MachineGunners = []int{3, 7}
	w := NewWorld(DefaultRules())
	w.Deploy(sc)

	assert.Equal(t, WeaponMachine, w.Players[3].Weapon)
	assert.Equal(t, WeaponMachine, w.Enemies[7].Weapon)
	assert.Equal(t, WeaponRifle, w.Players[0].Weapon)
}

func TestInCover_OnlyOwnSide(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.Deploy(DefaultScenario())

	intruder := w.SpawnUnit(Vec2{X: 400, Y: 180}, SidePlayer, WeaponRifle)
	assert.False(t, w.InCover(intruder), "enemy trench gives no cover to player")
}

func TestOpposingStructures_KeepsOrder(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.Structures = []*Structure{
		{Rect: Rect{X: 0}, Side: SideEnemy},
		{Rect: Rect{X: 1}, Side: SidePlayer},
		{Rect: Rect{X: 2}, Side: SideEnemy},
	}

	got := w.OpposingStructures(SidePlayer)
	require.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0].X)
	assert.Equal(t, 2.0, got[1].X)
}

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
	kill     *Unit
}

func (s *recordingSystem) Priority() int { return s.priority }

func (s *recordingSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
	if s.kill != nil {
		s.kill.HP = 0
	}
}

func TestStep_RunsSystemsInPriorityOrder(t *testing.T) {
	w := NewWorld(DefaultRules())
	var log []string
	w.AddSystem(&recordingSystem{name: "vehicles", priority: 60, log: &log})
	w.AddSystem(&recordingSystem{name: "shake", priority: 1, log: &log})
	w.AddSystem(&recordingSystem{name: "combat", priority: 20, log: &log})

	w.Step()

	assert.Equal(t, []string{"shake", "combat", "vehicles"}, log)
	assert.Equal(t, uint64(1), w.TickCount)
}

func TestStep_SweepsDeadUnits(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.Deploy(DefaultScenario())
	victim := w.Enemies[2]
	var log []string
	w.AddSystem(&recordingSystem{name: "killer", priority: 1, log: &log, kill: victim})

	w.Step()

	assert.Len(t, w.Enemies, 7)
	assert.Nil(t, w.Unit(victim.ID))
	for _, u := range w.Enemies {
		assert.NotEqual(t, victim.ID, u.ID)
	}
}

func TestStep_DispatchesQueuedEvents(t *testing.T) {
	w := NewWorld(DefaultRules())
	var got []Event
	w.Bus.On(EvtGunshot, func(e Event) { got = append(got, e) })

	w.Emit(EvtGunshot, Vec2{X: 1, Y: 2}, SideEnemy, nil)
	assert.Empty(t, got, "events wait for the end of the tick")

	w.Step()

	require.Len(t, got, 1)
	assert.Equal(t, Vec2{X: 1, Y: 2}, got[0].Pos)
	assert.Equal(t, SideEnemy, got[0].Side)

	w.Step()
	assert.Len(t, got, 1, "a dispatched event is not delivered again")
}

func TestOutcome(t *testing.T) {
	w := NewWorld(DefaultRules())
	assert.Equal(t, Draw, w.Outcome())

	w.SpawnUnit(Vec2{}, SidePlayer, WeaponRifle)
	assert.Equal(t, PlayerVictory, w.Outcome())

	e := w.SpawnUnit(Vec2{}, SideEnemy, WeaponRifle)
	assert.Equal(t, Ongoing, w.Outcome())

	w.Players[0].HP = 0
	w.sweep()
	assert.Equal(t, EnemyVictory, w.Outcome())
	assert.NotNil(t, w.Unit(e.ID))
}

func TestGameLoop_FixedTicksPerSecond(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.Deploy(DefaultScenario())
	gl := NewGameLoop(w, 60)
	gl.Play()

	ran := 0
	for i := 0; i < 10; i++ {
		ran += gl.Advance(0.1)
	}
	// 1 second of wall time is 60 ticks, give or take float rounding
	assert.InDelta(t, 60, ran, 1)
	assert.Equal(t, uint64(ran), gl.CurrentTick())
}

func TestGameLoop_CapsFrameTime(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.Deploy(DefaultScenario())
	gl := NewGameLoop(w, 8)
	gl.Play()

	ran := gl.Advance(10)
	assert.Equal(t, 2, ran, "a 10s hitch only pays for 0.25s of ticks")
}

func TestGameLoop_PausedDoesNotTick(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.Deploy(DefaultScenario())
	gl := NewGameLoop(w, 20)

	assert.Zero(t, gl.Advance(0.2))
	assert.Zero(t, gl.CurrentTick())

	gl.Toggle()
	assert.Equal(t, StatePlaying, gl.State)
	gl.Toggle()
	assert.Equal(t, StatePaused, gl.State)
}

func TestGameLoop_StopsAtOutcome(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.SpawnUnit(Vec2{}, SidePlayer, WeaponRifle)
	gl := NewGameLoop(w, 20)
	gl.Play()

	gl.Advance(0.2)

	assert.Equal(t, StateGameOver, gl.State)
	assert.Equal(t, uint64(1), gl.CurrentTick(), "no ticks after the battle is decided")
	gl.Play()
	assert.Equal(t, StateGameOver, gl.State)
}

type callLog struct{ calls []string }

func (c *callLog) ApplyScreenShake(float64) { c.calls = append(c.calls, "shake") }
func (c *callLog) DrawGround() { c.calls = append(c.calls, "ground") }
func (c *callLog) DrawStructures([]*Structure) { c.calls = append(c.calls, "structures") }
func (c *callLog) DrawUnit(u *Unit) { c.calls = append(c.calls, "unit:"+u.Side.String()) }
func (c *callLog) DrawProjectiles([]*Projectile) { c.calls = append(c.calls, "projectiles") }
func (c *callLog) DrawExplosions([]*Explosion) { c.calls = append(c.calls, "explosions") }
func (c *callLog) DrawSmoke([]*Smoke) { c.calls = append(c.calls, "smoke") }
func (c *callLog) DrawVehicles([]*Vehicle) { c.calls = append(c.calls, "vehicles") }
func (c *callLog) ApplyFogOfWar([]*Unit, float64) { c.calls = append(c.calls, "fog") }
func (c *callLog) DrawKills(int) { c.calls = append(c.calls, "kills") }

func TestRenderFrame_LayerOrder(t *testing.T) {
	w := NewWorld(DefaultRules())
	w.SpawnUnit(Vec2{}, SidePlayer, WeaponRifle)
	w.SpawnUnit(Vec2{}, SideEnemy, WeaponRifle)

	var v callLog
	RenderFrame(&v, w, DefaultVisionRadius)

	assert.Equal(t, []string{
		"shake", "ground", "structures", "unit:player", "unit:enemy",
		"projectiles", "explosions", "smoke", "vehicles", "fog", "kills",
	}, v.calls)
}
