package battle

import (
	"fmt"
	"testing"

	"github.com/1siamBot/trench-sim/engine/config"
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) *config.Config {
	cfg := config.Default()
	cfg.Seed = seed
	return cfg
}

func TestNew_DeploysScenario(t *testing.T) {
	b, err := New(seeded(1))
	require.NoError(t, err)

	assert.Len(t, b.World.Players, 8)
	assert.Len(t, b.World.Enemies, 8)
	assert.Len(t, b.World.Structures, 2)
	assert.Equal(t, int64(1), b.Seed)
	assert.Equal(t, 60.0, b.Loop.TickRate)
}

func TestNew_ZeroSeedDrawsOne(t *testing.T) {
	b, err := New(seeded(0))
	require.NoError(t, err)
	assert.NotZero(t, b.Seed)
}

func TestRunTicks_SameSeedSameBattle(t *testing.T) {
	run := func() Report {
		b, err := New(seeded(77))
		require.NoError(t, err)
		b.RunTicks(3000)
		return b.Report()
	}

	first := run()
	assert.Equal(t, first, run())
	assert.Equal(t, uint64(3000), first.Ticks)
	assert.Positive(t, first.Strikes, "3000 ticks at 0.5% should bring artillery")
}

func TestRunTicks_StopsAtOutcome(t *testing.T) {
	b, err := New(seeded(5))
	require.NoError(t, err)
	for _, u := range b.World.Enemies {
		u.HP = 0
	}

	ran := b.RunTicks(100)

	assert.Equal(t, uint64(1), ran)
	r := b.Report()
	assert.Equal(t, core.PlayerVictory, r.Outcome)
	assert.Contains(t, r.String(), "Outcome:      player victory")
}

func TestNew_TickOrder(t *testing.T) {
	b, err := New(seeded(1))
	require.NoError(t, err)

	var order []string
	var priorities []int
	for _, s := range b.World.Systems() {
		order = append(order, fmt.Sprintf("%T", s))
		priorities = append(priorities, s.Priority())
	}

	assert.Equal(t, []string{
		"*systems.ShakeSystem",
		"*command.Commander",
		"*systems.MovementSystem",
		"*systems.ProjectileSystem",
		"*systems.ArtillerySystem",
		"*systems.SmokeSystem",
		"*ai.TacticalAI",
		"*systems.ReturnFireSystem",
		"*systems.VehicleSystem",
	}, order)
	assert.IsIncreasing(t, priorities)
}

// duel clears the field down to one rifleman per side, 200 apart
func duel(t *testing.T) *Battle {
	t.Helper()
	cfg := seeded(9)
	cfg.Artillery.Chance = 0
	b, err := New(cfg)
	require.NoError(t, err)

	b.World.Players = nil
	b.World.Enemies = nil
	b.World.SpawnUnit(core.Vec2{X: 500, Y: 600}, core.SidePlayer, core.WeaponRifle)
	b.World.SpawnUnit(core.Vec2{X: 500, Y: 400}, core.SideEnemy, core.WeaponRifle)
	return b
}

func TestStep_ShotsLeaveTheMuzzleNextTick(t *testing.T) {
	b := duel(t)

	b.World.Step()

	require.Len(t, b.World.Projectiles, 2, "both riflemen fire on the first tick")
	for _, p := range b.World.Projectiles {
		assert.Equal(t, p.Origin, p.Pos, "%s shot moved in the tick it was fired", p.Side)
	}

	b.World.Step()
	for _, p := range b.World.Projectiles {
		assert.InDelta(t, b.World.Rules.ProjectileSpeed, p.Pos.DistanceTo(p.Origin), 1e-9)
	}
}

func TestStep_EnemyFiresBeforePlayerReturnsFire(t *testing.T) {
	b := duel(t)

	var shooters []core.Side
	b.World.Bus.On(core.EvtGunshot, func(e core.Event) { shooters = append(shooters, e.Side) })
	b.World.Step()

	assert.Equal(t, []core.Side{core.SideEnemy, core.SidePlayer}, shooters)
}

func TestStep_CommandedVehicleMovesSameTick(t *testing.T) {
	b := duel(t)

	b.Commander.SpawnVehicle(500, 760)
	b.World.Step()

	require.Len(t, b.World.Vehicles, 1)
	v := b.World.Vehicles[0]
	assert.InDelta(t, b.World.Rules.VehicleSpeed, v.Pos.DistanceTo(core.Vec2{X: 500, Y: 760}), 1e-9)
	assert.Equal(t, core.VehicleAdvancing, v.State)
}

func TestStep_ShakeDecaysBeforeNewStrike(t *testing.T) {
	b := duel(t)

	b.Commander.CallArtillery(100, 100)
	b.World.Step()

	assert.Equal(t, b.World.Rules.ShakeTicks, b.World.Shake, "a strike this tick is not decayed until the next")
	b.World.Step()
	assert.Equal(t, b.World.Rules.ShakeTicks-1, b.World.Shake)
}
