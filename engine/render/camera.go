package render

import (
	"math/rand"

	"github.com/1siamBot/trench-sim/engine/core"
)

// Camera maps field coordinates to the screen. The field is drawn 1:1;
// the only displacement is the per-frame shake jitter.
type Camera struct {
	ShakeX, ShakeY float64
	ScreenW        int
	ScreenH        int
	rng            *rand.Rand
}

// NewCamera creates a camera whose jitter is drawn from rng
func NewCamera(screenW, screenH int, rng *rand.Rand) *Camera {
	return &Camera{
		ScreenW: screenW,
		ScreenH: screenH,
		rng:     rng,
	}
}

// Shake picks this frame's jitter, uniform in [-m/2, m/2) on both axes.
// A zero magnitude recenters the view.
func (c *Camera) Shake(magnitude float64) {
	if magnitude <= 0 {
		c.ShakeX, c.ShakeY = 0, 0
		return
	}
	c.ShakeX = c.rng.Float64()*magnitude - magnitude/2
	c.ShakeY = c.rng.Float64()*magnitude - magnitude/2
}

// WorldToScreen converts a field position to a screen pixel position
func (c *Camera) WorldToScreen(p core.Vec2) (float32, float32) {
	return float32(p.X + c.ShakeX), float32(p.Y + c.ShakeY)
}

// ScreenToWorld converts a cursor position to the field. The jitter is
// ignored so orders land where the player aimed on the steady field.
func (c *Camera) ScreenToWorld(sx, sy int) core.Vec2 {
	return core.Vec2{X: float64(sx), Y: float64(sy)}
}

// InView reports whether a field position is on screen
func (c *Camera) InView(p core.Vec2, margin float64) bool {
	return p.X >= -margin && p.Y >= -margin &&
		p.X <= float64(c.ScreenW)+margin && p.Y <= float64(c.ScreenH)+margin
}
