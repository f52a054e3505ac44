// Package battle assembles a playable battle from a config: the world, its
// systems, the enemy AI, the player's commander and the metrics.
package battle

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/1siamBot/trench-sim/engine/ai"
	"github.com/1siamBot/trench-sim/engine/command"
	"github.com/1siamBot/trench-sim/engine/config"
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/systems"
	"github.com/1siamBot/trench-sim/engine/telemetry"
)

// Battle is one deployed engagement
type Battle struct {
	Config    *config.Config
	Seed      int64
	World     *core.World
	Loop      *core.GameLoop
	Commander *command.Commander
	AI        *ai.TacticalAI
	Metrics   *telemetry.Metrics
}

// New deploys the configured scenario. A zero seed draws one from the clock.
func New(cfg *config.Config) (*Battle, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := core.NewWorld(cfg.Rules())
	w.Deploy(cfg.Scenario())
	systems.Install(w)

	enemy := ai.NewTacticalAI(ai.ParseDifficulty(cfg.AI.Difficulty), rand.New(rand.NewSource(seed)))
	w.AddSystem(enemy)

	cmd := command.NewCommander(w)
	w.AddSystem(cmd)

	m, err := telemetry.New()
	if err != nil {
		return nil, fmt.Errorf("battle metrics: %w", err)
	}
	m.Attach(w.Bus)

	return &Battle{
		Config:    cfg,
		Seed:      seed,
		World:     w,
		Loop:      core.NewGameLoop(w, cfg.TickRate),
		Commander: cmd,
		AI:        enemy,
		Metrics:   m,
	}, nil
}

// RunTicks steps the world until an outcome or maxTicks, whichever is first.
// It returns how many ticks ran.
func (b *Battle) RunTicks(maxTicks uint64) uint64 {
	var n uint64
	for n < maxTicks && b.World.Outcome() == core.Ongoing {
		b.World.Step()
		n++
	}
	return n
}

// Report summarizes a battle
type Report struct {
	Seed        int64
	Ticks       uint64
	Outcome     core.Outcome
	Kills       int
	PlayersLeft int
	EnemiesLeft int
	Shots       int64
	Strikes     int64
	Breaches    int64
	DamageDealt int64
	DamageTaken int64
}

// Report snapshots the battle so far
func (b *Battle) Report() Report {
	return Report{
		Seed:        b.Seed,
		Ticks:       b.World.TickCount,
		Outcome:     b.World.Outcome(),
		Kills:       b.World.Kills,
		PlayersLeft: len(b.World.Players),
		EnemiesLeft: len(b.World.Enemies),
		Shots:       b.Metrics.Count(core.EvtGunshot),
		Strikes:     b.Metrics.Count(core.EvtExplosion),
		Breaches:    b.Metrics.Count(core.EvtStructureBreached),
		DamageDealt: b.Metrics.Damage(core.SidePlayer),
		DamageTaken: b.Metrics.Damage(core.SideEnemy),
	}
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Outcome:      %s\n", r.Outcome)
	fmt.Fprintf(&sb, "Ticks:        %d\n", r.Ticks)
	fmt.Fprintf(&sb, "Seed:         %d\n", r.Seed)
	fmt.Fprintf(&sb, "Kills:        %d\n", r.Kills)
	fmt.Fprintf(&sb, "Survivors:    %d player / %d enemy\n", r.PlayersLeft, r.EnemiesLeft)
	fmt.Fprintf(&sb, "Shots fired:  %d\n", r.Shots)
	fmt.Fprintf(&sb, "Strikes:      %d\n", r.Strikes)
	fmt.Fprintf(&sb, "Breaches:     %d\n", r.Breaches)
	fmt.Fprintf(&sb, "Damage:       %d dealt / %d taken\n", r.DamageDealt, r.DamageTaken)
	return sb.String()
}
