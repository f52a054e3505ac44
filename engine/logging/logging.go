package logging

import (
	"io"
	"strings"
	"time"

	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/rs/zerolog"
)

// ParseLevel maps a config string to a zerolog level, defaulting to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a console logger with RFC3339 timestamps
func New(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Attach logs notable battle events. Gunshots are sampled at trace level so
// a long firefight cannot flood the log.
func Attach(log zerolog.Logger, bus *core.EventBus) {
	shots := log.Sample(&zerolog.BurstSampler{
		Burst:       5,
		Period:      10 * time.Second,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})

	bus.OnAll(func(e core.Event) {
		switch e.Type {
		case core.EvtGunshot:
			shots.Trace().Uint64("tick", e.Tick).Stringer("side", e.Side).Msg("shot fired")
		case core.EvtUnitKilled:
			ev := log.Debug().Uint64("tick", e.Tick).Stringer("by", e.Side).
				Float64("x", e.Pos.X).Float64("y", e.Pos.Y)
			if hit, ok := e.Payload.(core.HitInfo); ok {
				ev = ev.Uint64("unit", uint64(hit.Unit)).Int("damage", hit.Damage)
			}
			ev.Msg("unit killed")
		case core.EvtExplosion:
			log.Debug().Uint64("tick", e.Tick).Stringer("side", e.Side).
				Float64("x", e.Pos.X).Float64("y", e.Pos.Y).Msg("artillery strike")
		case core.EvtStructureBreached:
			log.Info().Uint64("tick", e.Tick).Stringer("side", e.Side).Msg("structure breached")
		case core.EvtVehicleSpawned:
			log.Debug().Uint64("tick", e.Tick).Stringer("side", e.Side).Msg("vehicle deployed")
		}
	})
}
