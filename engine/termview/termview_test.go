package termview

import (
	"testing"

	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 120x41 cells over a 1200x800 field: 10x20 field units per cell
func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(120, 41)
	return screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestRenderFrame_Battlefield(t *testing.T) {
	screen := newScreen(t)
	w := core.NewWorld(core.DefaultRules())
	w.Deploy(core.DefaultScenario())
	w.Kills = 3

	view := NewTerminal(screen, float64(w.Width), float64(w.Height))
	core.RenderFrame(view, w, core.DefaultVisionRadius)
	view.Show()

	// first player rifleman at (300, 700)
	assert.Equal(t, 'p', runeAt(screen, 30, 35))
	// enemy line at y=175 is far outside any player's vision
	for x := 30; x < 54; x++ {
		assert.NotEqual(t, 'e', runeAt(screen, x, 8))
	}
	// the player trench near the units is visible
	assert.Equal(t, '=', runeAt(screen, 25, 33))

	status := ""
	for x := 0; x < 12; x++ {
		status += string(runeAt(screen, x, 40))
	}
	assert.Contains(t, status, "Kills: 3")
}

func TestDrawUnit_MarksSuppressionAndWeapon(t *testing.T) {
	screen := newScreen(t)
	view := NewTerminal(screen, 1200, 800)
	view.DrawGround()

	view.DrawUnit(&core.Unit{Pos: core.Vec2{X: 105, Y: 105}, Side: core.SidePlayer, Weapon: core.WeaponMachine, HP: 100})
	view.DrawUnit(&core.Unit{Pos: core.Vec2{X: 205, Y: 105}, Side: core.SideEnemy, HP: 100, Suppressed: 5})

	assert.Equal(t, 'P', runeAt(screen, 10, 5))
	r, _, style, _ := screen.GetContent(20, 5)
	assert.Equal(t, 'e', r)
	assert.Equal(t, styleSuppress, style)
}

func TestApplyFogOfWar_HidesEnemies(t *testing.T) {
	screen := newScreen(t)
	view := NewTerminal(screen, 1200, 800)
	view.DrawGround()

	player := &core.Unit{Pos: core.Vec2{X: 505, Y: 410}, Side: core.SidePlayer, HP: 100}
	near := &core.Unit{Pos: core.Vec2{X: 605, Y: 410}, Side: core.SideEnemy, HP: 100}
	far := &core.Unit{Pos: core.Vec2{X: 905, Y: 410}, Side: core.SideEnemy, HP: 100}
	for _, u := range []*core.Unit{player, near, far} {
		view.DrawUnit(u)
	}
	view.ApplyFogOfWar([]*core.Unit{player}, 150)

	assert.Equal(t, 'p', runeAt(screen, 50, 20))
	assert.Equal(t, 'e', runeAt(screen, 60, 20))
	assert.Equal(t, ' ', runeAt(screen, 90, 20))
	_, _, style, _ := screen.GetContent(90, 20)
	assert.Equal(t, styleFog, style)
}

func TestDrawExplosions_FillsRadius(t *testing.T) {
	screen := newScreen(t)
	view := NewTerminal(screen, 1200, 800)
	view.DrawGround()

	view.DrawExplosions([]*core.Explosion{{Center: core.Vec2{X: 600, Y: 400}, Radius: 30, MaxRadius: 60}})

	assert.Equal(t, '*', runeAt(screen, 60, 20))
	assert.Equal(t, ' ', runeAt(screen, 70, 20))
}

func TestCell_OutsideField(t *testing.T) {
	screen := newScreen(t)
	view := NewTerminal(screen, 1200, 800)
	view.DrawGround()

	_, _, ok := view.cell(core.Vec2{X: -1, Y: 10})
	assert.False(t, ok)
	_, _, ok = view.cell(core.Vec2{X: 1200, Y: 10})
	assert.False(t, ok)
	assert.Equal(t, core.Vec2{X: 5, Y: 10}, view.FieldPos(0, 0))
}
