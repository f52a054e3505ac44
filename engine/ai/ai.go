package ai

import (
	"math/rand"
	"strings"

	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/systems"
)

// Difficulty controls AI behavior
type Difficulty int

const (
	DiffEasy Difficulty = iota
	DiffMedium
	DiffHard
)

// ParseDifficulty maps a config string to a Difficulty, defaulting to medium
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(s) {
	case "easy":
		return DiffEasy
	case "hard":
		return DiffHard
	default:
		return DiffMedium
	}
}

func (d Difficulty) String() string {
	switch d {
	case DiffEasy:
		return "easy"
	case DiffHard:
		return "hard"
	default:
		return "medium"
	}
}

// artilleryScale multiplies the per-tick artillery chance
func (d Difficulty) artilleryScale() float64 {
	switch d {
	case DiffEasy:
		return 0.5
	case DiffHard:
		return 2
	default:
		return 1
	}
}

// TacticalAI drives the enemy riflemen and their artillery. Every unit picks
// its target afresh each tick; there is no coordination and no memory.
type TacticalAI struct {
	Difficulty Difficulty
	rng        *rand.Rand
}

// NewTacticalAI creates an AI drawing all of its randomness from rng
func NewTacticalAI(diff Difficulty, rng *rand.Rand) *TacticalAI {
	return &TacticalAI{
		Difficulty: diff,
		rng:        rng,
	}
}

func (ai *TacticalAI) Priority() int { return 50 }

func (ai *TacticalAI) Update(w *core.World) {
	ai.DecideActions(w)
}

// DecideActions lets every enemy unit shoot at its nearest player unit when
// in range and loaded, then rolls for an artillery strike on the player line.
func (ai *TacticalAI) DecideActions(w *core.World) {
	for _, e := range w.Enemies {
		if e.Alive() {
			systems.Engage(w, e, w.Players)
		}
	}

	if ai.rng.Float64() < w.Rules.ArtilleryChance*ai.Difficulty.artilleryScale() {
		x := w.Rules.ArtilleryBandMinX + ai.rng.Float64()*w.Rules.ArtilleryBandWidth
		systems.TriggerArtillery(w, x, w.Rules.ArtilleryY, core.SideEnemy)
	}
}

// ThreatAssessment returns how many living enemy rifles can reach a point,
// weighted toward the closest. Useful for deciding where to send units.
func ThreatAssessment(w *core.World, p core.Vec2) float64 {
	threat := 0.0
	for _, e := range w.Enemies {
		if !e.Alive() {
			continue
		}
		d := e.Pos.DistanceTo(p)
		if d < w.Rules.FireRange {
			threat += 1.0 - d/w.Rules.FireRange
		}
	}
	return threat
}
