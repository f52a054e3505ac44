// Package ui draws the battle HUD over the battlefield and routes clicks on
// its buttons before they reach the commander.
package ui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/trench-sim/engine/battle"
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Action is what a HUD button does
type Action int

const (
	ActNone Action = iota
	ActArtillery
	ActVehicle
	ActPause
)

func (a Action) String() string {
	switch a {
	case ActArtillery:
		return "Artillery"
	case ActVehicle:
		return "Vehicle"
	case ActPause:
		return "Pause"
	default:
		return "Move"
	}
}

// Button is a clickable HUD rectangle in screen pixels
type Button struct {
	X, Y, W, H int
	Action     Action
}

func (b Button) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// HUD sits between the input and the commander. Presses on a button are
// consumed; an armed button turns the next right click into its order.
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	PanelHeight      int
	Buttons          []Button

	// Armed replaces the next move order, ActNone when idle
	Armed Action

	next     input.Commands
	ctl      input.Controls
	swallow  bool
	portrait int
}

var (
	_ input.Commands = (*HUD)(nil)
	_ input.Controls = (*HUD)(nil)
)

var (
	barColor      = color.RGBA{0, 0, 0, 180}
	buttonColor   = color.RGBA{50, 50, 80, 255}
	armedColor    = color.RGBA{100, 100, 200, 255}
	buttonBorder  = color.RGBA{150, 150, 200, 255}
	portraitColor = color.RGBA{0x55, 0x6b, 0x2f, 220}
	hpHigh        = color.RGBA{0, 200, 0, 255}
	hpMid         = color.RGBA{255, 200, 0, 255}
	hpLow         = color.RGBA{255, 0, 0, 255}
)

func NewHUD(sw, sh int, next input.Commands, ctl input.Controls) *HUD {
	h := &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		TopBarHeight: 24,
		PanelHeight:  64,
		next:         next,
		ctl:          ctl,
		portrait:     28,
	}
	bx := sw - 3*75 - 10
	by := sh - h.PanelHeight + 18
	for i, a := range []Action{ActArtillery, ActVehicle, ActPause} {
		h.Buttons = append(h.Buttons, Button{X: bx + i*75, Y: by, W: 70, H: 26, Action: a})
	}
	return h
}

// ButtonAt returns the button under a screen point
func (h *HUD) ButtonAt(x, y int) (Button, bool) {
	for _, b := range h.Buttons {
		if b.contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}

func (h *HUD) trigger(a Action) {
	switch a {
	case ActPause:
		h.Toggle()
	case ActArtillery, ActVehicle:
		if h.Armed == a {
			h.Armed = ActNone
		} else {
			h.Armed = a
		}
	}
}

func (h *HUD) Press(x, y float64) {
	if b, ok := h.ButtonAt(int(x), int(y)); ok {
		h.trigger(b.Action)
		h.swallow = true
		return
	}
	h.next.Press(x, y)
}

func (h *HUD) Release(x, y float64) {
	if h.swallow {
		h.swallow = false
		return
	}
	h.next.Release(x, y)
}

func (h *HUD) Click(x, y float64) {
	armed := h.Armed
	h.Armed = ActNone
	switch armed {
	case ActArtillery:
		h.next.CallArtillery(x, y)
	case ActVehicle:
		h.next.SpawnVehicle(x, y)
	default:
		h.next.Click(x, y)
	}
}

func (h *HUD) CallArtillery(x, y float64) { h.next.CallArtillery(x, y) }

func (h *HUD) SpawnVehicle(x, y float64) { h.next.SpawnVehicle(x, y) }

func (h *HUD) Toggle() {
	if h.ctl != nil {
		h.ctl.Toggle()
	}
}

// TopBar is the status line across the top of the screen
func TopBar(b *battle.Battle) string {
	w := b.World
	artillery := "ready"
	if !b.Commander.ArtilleryReady() {
		artillery = "reloading"
	}
	return fmt.Sprintf("Tick: %d | Kills: %d | Troops: %d vs %d | Artillery: %s",
		b.Loop.CurrentTick(), w.Kills, len(w.Players), len(w.Enemies), artillery)
}

// UnitLine describes one selected rifleman
func UnitLine(u *core.Unit, maxHP int) string {
	line := fmt.Sprintf("HP: %d/%d | %s", u.HP, maxHP, u.Weapon)
	if u.Suppressed > 0 {
		line += " | pinned"
	}
	if u.Target != nil {
		line += fmt.Sprintf(" | moving to %.0f,%.0f", u.Target.X, u.Target.Y)
	}
	return line
}

// Draw renders the whole HUD
func (h *HUD) Draw(screen *ebiten.Image, b *battle.Battle, cursor core.Vec2, threat float64) {
	h.drawTopBar(screen, b)
	h.drawUnitInfo(screen, b)
	h.drawCommandButtons(screen)
	if h.Armed != ActNone {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: right click a target (threat %.2f)", h.Armed, threat),
			int(cursor.X)+12, int(cursor.Y)+12)
	}

	switch b.Loop.State {
	case core.StatePaused:
		h.drawPaused(screen)
	case core.StateGameOver:
		h.drawGameOver(screen, b.Report())
	}
}

func (h *HUD) drawTopBar(screen *ebiten.Image, b *battle.Battle) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), barColor, false)
	ebitenutil.DebugPrintAt(screen, TopBar(b), 10, 5)
}

func (h *HUD) drawUnitInfo(screen *ebiten.Image, b *battle.Battle) {
	py := h.ScreenH - h.PanelHeight
	vector.DrawFilledRect(screen, 0, float32(py), float32(h.ScreenW), float32(h.PanelHeight), barColor, false)

	selected := b.Commander.Selected()
	if len(selected) == 0 {
		ebitenutil.DebugPrintAt(screen, "Drag to select riflemen", 10, py+8)
		return
	}

	maxHP := b.World.Rules.UnitHP
	x := 10
	for i, u := range selected {
		if i >= 12 {
			break
		}
		vector.DrawFilledRect(screen, float32(x), float32(py+6), float32(h.portrait), float32(h.portrait), portraitColor, false)
		ratio := float32(u.HP) / float32(maxHP)
		clr := hpHigh
		if ratio < 0.5 {
			clr = hpMid
		}
		if ratio < 0.25 {
			clr = hpLow
		}
		vector.DrawFilledRect(screen, float32(x), float32(py+h.portrait+8), float32(h.portrait)*ratio, 3, clr, false)
		x += h.portrait + 4
	}
	ebitenutil.DebugPrintAt(screen, UnitLine(selected[0], maxHP), 10, py+h.portrait+14)
}

func (h *HUD) drawCommandButtons(screen *ebiten.Image) {
	for _, b := range h.Buttons {
		clr := buttonColor
		if h.Armed == b.Action {
			clr = armedColor
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, false)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, buttonBorder, false)
		ebitenutil.DebugPrintAt(screen, b.Action.String(), b.X+6, b.Y+6)
	}
}
