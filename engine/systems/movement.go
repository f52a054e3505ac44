package systems

import (
	"github.com/1siamBot/trench-sim/engine/core"
)

// MovementSystem wears off suppression and walks units to their move orders
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 10 }

func (s *MovementSystem) Update(w *core.World) {
	for _, units := range [2][]*core.Unit{w.Players, w.Enemies} {
		for _, u := range units {
			if !u.Alive() {
				continue
			}
			if u.Suppressed > 0 {
				u.Suppressed--
			}
			if w.Rules.MoveOrders {
				stepToOrder(w, u)
			}
		}
	}
}

func stepToOrder(w *core.World, u *core.Unit) {
	if u.Target == nil {
		return
	}
	u.Pos = u.Pos.StepToward(*u.Target, w.Rules.MoveSpeed)
	if u.Pos == *u.Target {
		u.Target = nil
	}
}

// OrderMove gives u a move order toward (x, y). Out-of-field points are
// accepted as is.
func OrderMove(u *core.Unit, x, y float64) {
	u.Target = &core.Vec2{X: x, Y: y}
}
