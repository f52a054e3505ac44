package systems

import (
	"github.com/1siamBot/trench-sim/engine/core"
)

// Install registers the stock simulation systems on w. Enemy AI and player
// commands live in their own packages and are added by the caller.
func Install(w *core.World) {
	w.AddSystem(&ShakeSystem{})
	w.AddSystem(&MovementSystem{})
	w.AddSystem(&ProjectileSystem{})
	w.AddSystem(&ArtillerySystem{})
	w.AddSystem(&SmokeSystem{})
	w.AddSystem(&ReturnFireSystem{})
	w.AddSystem(&VehicleSystem{})
}
