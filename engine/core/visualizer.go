package core

// Visualizer is the presentation side of a frame. Implementations only read
// what they are handed; nothing they do feeds back into the World.
type Visualizer interface {
	ApplyScreenShake(magnitude float64)
	DrawGround()
	DrawStructures(structures []*Structure)
	DrawUnit(u *Unit)
	DrawProjectiles(projectiles []*Projectile)
	DrawExplosions(explosions []*Explosion)
	DrawSmoke(smoke []*Smoke)
	DrawVehicles(vehicles []*Vehicle)
	ApplyFogOfWar(players []*Unit, visionRadius float64)
	DrawKills(kills int)
}

// DefaultVisionRadius is how far a player unit sees through the fog
const DefaultVisionRadius = 150

// RenderFrame draws the world through v in fixed layer order
func RenderFrame(v Visualizer, w *World, visionRadius float64) {
	v.ApplyScreenShake(float64(w.Shake))
	v.DrawGround()
	v.DrawStructures(w.Structures)
	for _, u := range w.Players {
		v.DrawUnit(u)
	}
	for _, u := range w.Enemies {
		v.DrawUnit(u)
	}
	v.DrawProjectiles(w.Projectiles)
	v.DrawExplosions(w.Explosions)
	v.DrawSmoke(w.Smoke)
	v.DrawVehicles(w.Vehicles)
	v.ApplyFogOfWar(w.Players, visionRadius)
	v.DrawKills(w.Kills)
}
