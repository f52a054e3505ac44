package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StatePaused GameState = iota
	StatePlaying
	StateGameOver
)

// maxFrameTime caps how much wall time a single frame may feed the simulation
const maxFrameTime = 0.25

// GameLoop runs the simulation at a fixed tick rate regardless of how often
// the display refreshes.
type GameLoop struct {
	World       *World
	State       GameState
	TickRate    float64 // fixed ticks per second
	accumulator float64
	lastTime    time.Time
	now         func() time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(w *World, tickRate float64) *GameLoop {
	gl := &GameLoop{
		World:    w,
		TickRate: tickRate,
		now:      time.Now,
	}
	gl.lastTime = gl.now()
	return gl
}

// Update should be called every render frame. It advances the simulation by
// however many whole ticks fit in the time since the previous call and
// returns the interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	gl.Advance(frameTime)
	return gl.accumulator * gl.TickRate
}

// Advance feeds frameTime seconds into the accumulator and runs the ticks
// it pays for. It returns how many ticks ran.
func (gl *GameLoop) Advance(frameTime float64) int {
	// Cap frame time to avoid spiral of death
	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	ran := 0
	for gl.accumulator >= dt {
		gl.accumulator -= dt
		if gl.State != StatePlaying {
			continue
		}
		gl.World.Step()
		ran++
		if gl.World.Outcome() != Ongoing {
			gl.State = StateGameOver
		}
	}
	return ran
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	if gl.State == StateGameOver {
		return
	}
	gl.State = StatePlaying
	gl.lastTime = gl.now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	if gl.State == StatePlaying {
		gl.State = StatePaused
	}
}

// Toggle flips between playing and paused
func (gl *GameLoop) Toggle() {
	if gl.State == StatePlaying {
		gl.Pause()
	} else {
		gl.Play()
	}
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
