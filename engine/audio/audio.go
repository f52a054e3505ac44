package audio

import (
	"math"
	"sync"
	"time"

	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundID identifies a sound effect
type SoundID string

const (
	SndGunshot   SoundID = "gunshot"
	SndExplosion SoundID = "explosion"
)

var (
	gunshotLength   = 120 * time.Millisecond
	explosionLength = 1200 * time.Millisecond
)

// AudioManager plays synthesized battlefield sounds. Without an output
// device it keeps counting requests and stays silent.
type AudioManager struct {
	mu           sync.Mutex
	MasterVolume float64
	SFXVolume    map[SoundID]float64
	mixer        *beep.Mixer
	initialized  bool
	played       map[SoundID]int
	seed         int64
}

func NewAudioManager() *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume: map[SoundID]float64{
			SndGunshot:   0.1,
			SndExplosion: 0.2,
		},
		mixer:  &beep.Mixer{},
		played: make(map[SoundID]int),
		seed:   1,
	}
}

// Initialize opens the speaker
func (am *AudioManager) Initialize() error {
	am.mu.Lock()
	defer am.mu.Unlock()

	if am.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(am.mixer)
	am.initialized = true
	return nil
}

// Cleanup silences everything still playing
func (am *AudioManager) Cleanup() {
	am.mu.Lock()
	defer am.mu.Unlock()

	if !am.initialized {
		return
	}
	speaker.Lock()
	am.mixer.Clear()
	speaker.Unlock()
	am.initialized = false
}

// Attach plays a sound for every gunshot and explosion on the bus
func (am *AudioManager) Attach(bus *core.EventBus) {
	bus.On(core.EvtGunshot, func(core.Event) { am.PlaySFX(SndGunshot) })
	bus.On(core.EvtExplosion, func(core.Event) { am.PlaySFX(SndExplosion) })
}

// PlaySFX starts a sound effect. Overlapping sounds are mixed.
func (am *AudioManager) PlaySFX(id SoundID) {
	am.mu.Lock()
	defer am.mu.Unlock()

	am.played[id]++
	if !am.initialized {
		return
	}
	am.seed++
	s := am.streamer(id, am.seed)
	if s == nil {
		return
	}
	speaker.Lock()
	am.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times id was requested
func (am *AudioManager) Played(id SoundID) int {
	am.mu.Lock()
	defer am.mu.Unlock()
	return am.played[id]
}

func (am *AudioManager) streamer(id SoundID, seed int64) beep.Streamer {
	var gen beep.Streamer
	switch id {
	case SndGunshot:
		gen = beep.Take(sampleRate.N(gunshotLength), NewGunshotGenerator(sampleRate, seed))
	case SndExplosion:
		gen = beep.Take(sampleRate.N(explosionLength), NewExplosionGenerator(sampleRate, seed))
	default:
		return nil
	}
	return newVolume(gen, am.SFXVolume[id]*am.MasterVolume)
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.MasterVolume = math.Max(0, math.Min(1, v))
}

// math.Log2(0) is -Inf, so zero volume is mapped to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// noise is a small LCG so generated sounds do not depend on global rand
type noise struct{ state int64 }

func (n *noise) next() float64 {
	n.state = (n.state*1103515245 + 12345) & 0x7fffffff
	return float64(n.state)/float64(0x7fffffff)*2 - 1
}

// GunshotGenerator generates a sharp crack: a noise burst with a fast decay
// over a short wooden knock
type GunshotGenerator struct {
	sr    beep.SampleRate
	pos   int
	noise noise
}

// NewGunshotGenerator creates a gunshot generator
func NewGunshotGenerator(sr beep.SampleRate, seed int64) *GunshotGenerator {
	return &GunshotGenerator{sr: sr, noise: noise{state: seed}}
}

func (g *GunshotGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 40)
		knock := math.Sin(2 * math.Pi * 180 * t)
		sample := env * (0.7*g.noise.next() + 0.3*knock)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *GunshotGenerator) Err() error {
	return nil
}

// ExplosionGenerator generates a long boom: low rumble and filtered noise
// under a slow decay
type ExplosionGenerator struct {
	sr    beep.SampleRate
	pos   int
	noise noise
	last  float64
}

// NewExplosionGenerator creates an explosion generator
func NewExplosionGenerator(sr beep.SampleRate, seed int64) *ExplosionGenerator {
	return &ExplosionGenerator{sr: sr, noise: noise{state: seed}}
}

func (g *ExplosionGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 3)
		// one-pole low-pass keeps the noise dull
		g.last += 0.05 * (g.noise.next() - g.last)
		rumble := math.Sin(2 * math.Pi * (40 + 30*env) * t)
		sample := env * (0.6*g.last + 0.4*rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ExplosionGenerator) Err() error {
	return nil
}
