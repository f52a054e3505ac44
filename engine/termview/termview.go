// Package termview draws the battlefield as a character grid on a tcell
// screen. The last row is a status line.
package termview

import (
	"fmt"

	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/systems"
	"github.com/gdamore/tcell/v2"
)

var (
	styleGround   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkOliveGreen)
	styleTrench   = styleGround.Foreground(tcell.ColorSaddleBrown)
	styleBreached = styleGround.Foreground(tcell.ColorDimGray)
	stylePlayer   = styleGround.Foreground(tcell.ColorLime).Bold(true)
	styleEnemy    = styleGround.Foreground(tcell.ColorRed).Bold(true)
	styleSuppress = styleGround.Foreground(tcell.ColorYellow).Bold(true)
	styleBullet   = styleGround.Foreground(tcell.ColorWheat)
	styleBlast    = styleGround.Foreground(tcell.ColorOrangeRed)
	styleSmoke    = styleGround.Foreground(tcell.ColorGray)
	styleVehicle  = styleGround.Foreground(tcell.ColorSilver).Bold(true)
	styleFog      = styleGround.Foreground(tcell.ColorDarkSlateGray).Dim(true)
	styleStatus   = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
)

// Terminal is a core.Visualizer over a tcell screen. The field is scaled to
// fit the screen, one cell standing for a block of field units.
type Terminal struct {
	screen tcell.Screen
	fieldW float64
	fieldH float64

	cols, rows int
	shake      int

	// Status is appended to the kill count on the status line
	Status string
}

var _ core.Visualizer = (*Terminal)(nil)

// NewTerminal creates a terminal view of a fieldW x fieldH battlefield
func NewTerminal(s tcell.Screen, fieldW, fieldH float64) *Terminal {
	return &Terminal{screen: s, fieldW: fieldW, fieldH: fieldH}
}

// Show flushes the frame to the terminal
func (t *Terminal) Show() {
	t.screen.Show()
}

// cell maps a field position to a grid cell
func (t *Terminal) cell(p core.Vec2) (int, int, bool) {
	if t.cols == 0 || t.rows == 0 {
		return 0, 0, false
	}
	x := int(p.X / t.fieldW * float64(t.cols))
	y := int(p.Y / t.fieldH * float64(t.rows))
	if p.X < 0 || p.Y < 0 || x >= t.cols || y >= t.rows {
		return 0, 0, false
	}
	return x, y, true
}

// center maps a grid cell back to the field position at its middle
func (t *Terminal) center(x, y int) core.Vec2 {
	return core.Vec2{
		X: (float64(x) + 0.5) * t.fieldW / float64(t.cols),
		Y: (float64(y) + 0.5) * t.fieldH / float64(t.rows),
	}
}

func (t *Terminal) put(p core.Vec2, r rune, style tcell.Style) {
	if x, y, ok := t.cell(p); ok {
		t.screen.SetContent(x, y, r, nil, style)
	}
}

// ApplyScreenShake records the shake for the status line; the grid itself
// does not jitter
func (t *Terminal) ApplyScreenShake(magnitude float64) {
	t.shake = int(magnitude)
}

func (t *Terminal) DrawGround() {
	w, h := t.screen.Size()
	t.cols, t.rows = w, h-1
	t.screen.Clear()
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			t.screen.SetContent(x, y, ' ', nil, styleGround)
		}
	}
}

func (t *Terminal) DrawStructures(structures []*core.Structure) {
	for _, s := range structures {
		r, style := '=', styleTrench
		if s.Breached() {
			r, style = '~', styleBreached
		}
		x0, y0, ok0 := t.cell(core.Vec2{X: s.X, Y: s.Y})
		x1, y1, ok1 := t.cell(core.Vec2{X: s.X + s.W, Y: s.Y + s.H})
		if !ok0 || !ok1 {
			continue
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.screen.SetContent(x, y, r, nil, style)
			}
		}
	}
}

func (t *Terminal) DrawUnit(u *core.Unit) {
	r, style := 'p', stylePlayer
	if u.Side == core.SideEnemy {
		r, style = 'e', styleEnemy
	}
	if u.Weapon == core.WeaponMachine {
		r -= 'a' - 'A'
	}
	if u.Suppressed > 0 {
		style = styleSuppress
	}
	t.put(u.Pos, r, style)
}

func (t *Terminal) DrawProjectiles(projectiles []*core.Projectile) {
	for _, p := range projectiles {
		t.put(p.Pos, '\'', styleBullet)
	}
}

func (t *Terminal) DrawExplosions(explosions []*core.Explosion) {
	for _, e := range explosions {
		for y := 0; y < t.rows; y++ {
			for x := 0; x < t.cols; x++ {
				if t.center(x, y).DistanceTo(e.Center) < e.Radius {
					t.screen.SetContent(x, y, '*', nil, styleBlast)
				}
			}
		}
	}
}

func (t *Terminal) DrawSmoke(smoke []*core.Smoke) {
	for _, s := range smoke {
		t.put(s.Pos, '°', styleSmoke)
	}
}

func (t *Terminal) DrawVehicles(vehicles []*core.Vehicle) {
	for _, v := range vehicles {
		t.put(v.Pos, '#', styleVehicle)
	}
}

// ApplyFogOfWar greys out every cell no player unit can see
func (t *Terminal) ApplyFogOfWar(players []*core.Unit, visionRadius float64) {
	fog := systems.NewFogOfWar(players, visionRadius)
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			if fog.IsVisible(t.center(x, y)) {
				continue
			}
			r, _, _, _ := t.screen.GetContent(x, y)
			if r == 'e' || r == 'E' {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, styleFog)
		}
	}
}

func (t *Terminal) DrawKills(kills int) {
	line := fmt.Sprintf(" Kills: %d ", kills)
	if t.shake > 0 {
		line += " SHELLING "
	}
	if t.Status != "" {
		line += " " + t.Status + " "
	}
	w, h := t.screen.Size()
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	for i, r := range []rune(line) {
		if i >= w {
			break
		}
		t.screen.SetContent(i, h-1, r, nil, styleStatus)
	}
}

// FieldPos converts a mouse cell to the field position at its center
func (t *Terminal) FieldPos(x, y int) core.Vec2 {
	return t.center(x, y)
}
