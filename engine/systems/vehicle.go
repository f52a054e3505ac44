package systems

import (
	"github.com/1siamBot/trench-sim/engine/core"
)

// VehicleSystem drives armor through the opposing trench lines
type VehicleSystem struct{}

func (s *VehicleSystem) Priority() int { return 60 }

func (s *VehicleSystem) Update(w *core.World) {
	AdvanceVehicles(w)
}

// AdvanceVehicles runs one tick of each vehicle's state machine:
// advancing toward the current objective, sieging it once close enough, and
// moving on to the next objective when it is breached. A vehicle that has
// run out of objectives idles for good.
func AdvanceVehicles(w *core.World) {
	for _, v := range w.Vehicles {
		objectives := w.OpposingStructures(v.Side)
		if v.Objective >= len(objectives) {
			v.State = core.VehicleIdle
			continue
		}
		target := objectives[v.Objective]

		if v.Pos.DistanceTo(target.Center()) > w.Rules.SiegeDistance {
			v.State = core.VehicleAdvancing
			v.Pos = v.Pos.StepToward(target.Center(), w.Rules.VehicleSpeed)
			continue
		}

		v.State = core.VehicleSieging
		wasStanding := !target.Breached()
		target.HP--
		if target.Breached() {
			if wasStanding {
				w.Emit(core.EvtStructureBreached, target.Center(), v.Side, target)
			}
			v.Objective++
			v.State = core.VehicleAdvancing
		}
	}
}
