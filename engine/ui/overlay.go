package ui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/trench-sim/engine/battle"
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	dimColor    = color.RGBA{0, 0, 0, 180}
	panelColor  = color.RGBA{15, 15, 30, 230}
	panelBorder = color.RGBA{0, 140, 200, 255}
	winColor    = color.RGBA{50, 220, 80, 255}
	lossColor   = color.RGBA{220, 50, 50, 255}
	drawColor   = color.RGBA{255, 200, 50, 255}
)

// Headline is the large result text of a finished battle
func Headline(o core.Outcome) (string, color.RGBA) {
	switch o {
	case core.PlayerVictory:
		return "VICTORY", winColor
	case core.EnemyVictory:
		return "DEFEAT", lossColor
	case core.Draw:
		return "STALEMATE", drawColor
	default:
		return "", panelBorder
	}
}

// StatLines lists the end of battle numbers shown under the headline
func StatLines(r battle.Report) []string {
	return []string{
		fmt.Sprintf("Ticks:        %d", r.Ticks),
		fmt.Sprintf("Kills:        %d", r.Kills),
		fmt.Sprintf("Survivors:    %d vs %d", r.PlayersLeft, r.EnemiesLeft),
		fmt.Sprintf("Shots fired:  %d", r.Shots),
		fmt.Sprintf("Strikes:      %d", r.Strikes),
		fmt.Sprintf("Breaches:     %d", r.Breaches),
	}
}

func (h *HUD) drawPanel(screen *ebiten.Image, w, ht int) (int, int) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.ScreenH), dimColor, false)
	px := h.ScreenW/2 - w/2
	py := h.ScreenH/2 - ht/2
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(w), float32(ht), panelColor, false)
	vector.StrokeRect(screen, float32(px), float32(py), float32(w), float32(ht), 2, panelBorder, false)
	return px, py
}

func (h *HUD) drawPaused(screen *ebiten.Image) {
	_, py := h.drawPanel(screen, 240, 60)
	msg := "PAUSED - Space to resume"
	ebitenutil.DebugPrintAt(screen, msg, h.ScreenW/2-len(msg)*3, py+22)
}

func (h *HUD) drawGameOver(screen *ebiten.Image, r battle.Report) {
	_, py := h.drawPanel(screen, 320, 220)
	cx := h.ScreenW / 2

	headline, clr := Headline(r.Outcome)
	tx := cx - len(headline)*3
	ty := py + 24
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			ebitenutil.DebugPrintAt(screen, headline, tx+dx, ty+dy)
		}
	}
	vector.DrawFilledRect(screen, float32(cx-60), float32(ty+18), 120, 3, clr, false)

	sy := ty + 36
	for i, line := range StatLines(r) {
		ebitenutil.DebugPrintAt(screen, line, cx-90, sy+i*22)
	}
}
