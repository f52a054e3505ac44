package systems

import (
	"github.com/1siamBot/trench-sim/engine/core"
)

// ShakeSystem counts down the camera shake pulse
type ShakeSystem struct{}

func (s *ShakeSystem) Priority() int { return 1 }

func (s *ShakeSystem) Update(w *core.World) {
	if w.Shake > 0 {
		w.Shake--
	}
}

// SmokeSystem ages smoke puffs and lets them drift upward
type SmokeSystem struct{}

func (s *SmokeSystem) Priority() int { return 40 }

func (s *SmokeSystem) Update(w *core.World) {
	kept := w.Smoke[:0]
	for _, sm := range w.Smoke {
		sm.Life--
		sm.Pos.Y -= w.Rules.SmokeRise
		if sm.Life > 0 {
			kept = append(kept, sm)
		}
	}
	for i := len(kept); i < len(w.Smoke); i++ {
		w.Smoke[i] = nil
	}
	w.Smoke = kept
}

// SpawnSmoke leaves a puff at pos
func SpawnSmoke(w *core.World, pos core.Vec2) {
	w.Smoke = append(w.Smoke, &core.Smoke{Pos: pos, Life: w.Rules.SmokeLife})
}
