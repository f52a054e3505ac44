package command

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/1siamBot/trench-sim/engine/ai"
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommanderWorld() (*core.World, *Commander) {
	w := core.NewWorld(core.DefaultRules())
	c := NewCommander(w)
	w.AddSystem(c)
	return w, c
}

func TestSelection_StrictRectangle(t *testing.T) {
	w, c := newCommanderWorld()
	inside := w.SpawnUnit(core.Vec2{X: 20, Y: 20}, core.SidePlayer, core.WeaponRifle)
	w.SpawnUnit(core.Vec2{X: 60, Y: 60}, core.SidePlayer, core.WeaponRifle)
	w.SpawnUnit(core.Vec2{X: 10, Y: 30}, core.SidePlayer, core.WeaponRifle) // on the edge
	w.SpawnUnit(core.Vec2{X: 30, Y: 30}, core.SideEnemy, core.WeaponRifle)

	c.Press(50, 50)
	c.Release(10, 10)
	w.Step()

	sel := c.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, inside.ID, sel[0].ID)
	assert.True(t, c.IsSelected(inside.ID))
	_, open := c.Selecting()
	assert.False(t, open)
}

func TestSelection_ReplacesPrevious(t *testing.T) {
	w, c := newCommanderWorld()
	a := w.SpawnUnit(core.Vec2{X: 20, Y: 20}, core.SidePlayer, core.WeaponRifle)
	b := w.SpawnUnit(core.Vec2{X: 220, Y: 20}, core.SidePlayer, core.WeaponRifle)

	c.Press(0, 0)
	c.Release(50, 50)
	w.Step()
	c.Press(200, 0)
	c.Release(250, 50)
	w.Step()

	assert.False(t, c.IsSelected(a.ID))
	assert.True(t, c.IsSelected(b.ID))
}

func TestSelection_ReleaseWithoutPressIgnored(t *testing.T) {
	w, c := newCommanderWorld()
	w.SpawnUnit(core.Vec2{X: 20, Y: 20}, core.SidePlayer, core.WeaponRifle)

	c.Release(50, 50)
	w.Step()

	assert.Empty(t, c.Selected())
}

func TestMoveOrder_SelectedOnly(t *testing.T) {
	w, c := newCommanderWorld()
	a := w.SpawnUnit(core.Vec2{X: 20, Y: 20}, core.SidePlayer, core.WeaponRifle)
	b := w.SpawnUnit(core.Vec2{X: 300, Y: 300}, core.SidePlayer, core.WeaponRifle)

	var orders int
	w.Bus.On(core.EvtMoveOrder, func(core.Event) { orders++ })

	c.Press(0, 0)
	c.Release(50, 50)
	c.Click(500, 400)
	w.Step()

	require.NotNil(t, a.Target)
	assert.Equal(t, core.Vec2{X: 500, Y: 400}, *a.Target)
	assert.Nil(t, b.Target)
	assert.Equal(t, 1, orders)
}

func TestMoveOrder_DeadUnitsDropOut(t *testing.T) {
	w, c := newCommanderWorld()
	a := w.SpawnUnit(core.Vec2{X: 20, Y: 20}, core.SidePlayer, core.WeaponRifle)

	c.Press(0, 0)
	c.Release(50, 50)
	w.Step()
	a.HP = 0
	c.Click(500, 400)
	w.Step()

	assert.Empty(t, c.Selected())
	assert.Nil(t, a.Target)
}

func TestArtillery_Cooldown(t *testing.T) {
	w, c := newCommanderWorld()

	c.CallArtillery(400, 200)
	w.Step()
	require.Len(t, w.Explosions, 1)
	assert.Equal(t, core.SidePlayer, w.Explosions[0].Side)
	assert.False(t, c.ArtilleryReady())

	c.CallArtillery(400, 200)
	w.Step()
	assert.Len(t, w.Explosions, 1, "second call inside the cooldown is refused")

	for !c.ArtilleryReady() {
		w.Step()
	}
	c.CallArtillery(400, 200)
	w.Step()
	assert.Len(t, w.Explosions, 2)
	assert.Equal(t, uint64(w.Rules.PlayerArtilleryCooldown+1), w.TickCount)
}

func TestSpawnVehicle(t *testing.T) {
	w, c := newCommanderWorld()
	var spawned int
	w.Bus.On(core.EvtVehicleSpawned, func(core.Event) { spawned++ })

	c.SpawnVehicle(600, 750)
	w.Step()

	require.Len(t, w.Vehicles, 1)
	assert.Equal(t, core.SidePlayer, w.Vehicles[0].Side)
	assert.Equal(t, core.Vec2{X: 600, Y: 750}, w.Vehicles[0].Pos)
	assert.Equal(t, 1, spawned)
}

func TestCodec_RejectsTruncatedLog(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf, -7)
	require.NoError(t, rec.Record(GameCommand{Tick: 3, Type: CmdArtillery, X: 1.5, Y: 2.5}))
	require.NoError(t, rec.Flush())

	replay, err := LoadReplay(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, int64(-7), replay.Seed)
	assert.Equal(t, []GameCommand{{Tick: 3, Type: CmdArtillery, X: 1.5, Y: 2.5}}, replay.Commands)
	assert.Equal(t, uint64(3), replay.LastTick())

	_, err = LoadReplay(bytes.NewReader(buf.Bytes()[:buf.Len()-1]))
	assert.Error(t, err)
}

func TestCodec_RejectsUnknownType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRecorder(&buf, 1).Flush())
	cmd := GameCommand{Tick: 1, Type: CmdType(200)}
	require.NoError(t, cmd.Encode(&buf))

	_, err := LoadReplay(&buf)
	assert.Error(t, err)
}

func TestLoadReplay_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRecorder(&buf, 99).Flush())
	assert.Len(t, buf.Bytes(), 12)

	replay, err := LoadReplay(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, int64(99), replay.Seed)
	assert.Empty(t, replay.Commands)

	_, err = LoadReplay(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrNotCommandLog)

	var raw bytes.Buffer
	move := GameCommand{Tick: 1, Type: CmdMoveOrder}
	require.NoError(t, move.Encode(&raw))
	_, err = LoadReplay(&raw)
	assert.ErrorIs(t, err, ErrNotCommandLog, "a log without the header is refused")

	_, err = LoadReplay(bytes.NewReader(buf.Bytes()[:8]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type snapshot struct {
	Tick     uint64
	Kills    int
	Players  []core.Vec2
	Enemies  []core.Vec2
	Vehicles []core.Vec2
}

func battle(seed int64) (*core.World, *Commander) {
	w := core.NewWorld(core.DefaultRules())
	w.Deploy(core.DefaultScenario())
	systems.Install(w)
	w.AddSystem(ai.NewTacticalAI(ai.DiffHard, rand.New(rand.NewSource(seed))))
	c := NewCommander(w)
	w.AddSystem(c)
	return w, c
}

func snap(w *core.World) snapshot {
	s := snapshot{Tick: w.TickCount, Kills: w.Kills}
	for _, u := range w.Players {
		s.Players = append(s.Players, u.Pos)
	}
	for _, u := range w.Enemies {
		s.Enemies = append(s.Enemies, u.Pos)
	}
	for _, v := range w.Vehicles {
		s.Vehicles = append(s.Vehicles, v.Pos)
	}
	return s
}

func TestReplay_ReproducesSession(t *testing.T) {
	const ticks = 900

	var log bytes.Buffer
	w, c := battle(42)
	c.Record(NewRecorder(&log, 42))
	for i := 0; i < ticks; i++ {
		switch i {
		case 10:
			c.Press(250, 650)
			c.Release(650, 720)
		case 11:
			c.Click(450, 300)
		case 200:
			c.CallArtillery(500, 180)
		case 400:
			c.SpawnVehicle(600, 760)
		}
		w.Step()
	}
	require.NoError(t, c.Err())
	require.NoError(t, c.recorder.Flush())
	live := snap(w)

	replay, err := LoadReplay(&log)
	require.NoError(t, err)
	assert.Len(t, replay.Commands, 5)
	assert.Equal(t, int64(42), replay.Seed)

	w2, c2 := battle(replay.Seed)
	c2.Play(replay)
	for i := 0; i < ticks; i++ {
		w2.Step()
	}

	assert.Equal(t, live, snap(w2))
}
