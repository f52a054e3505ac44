package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1siamBot/trench-sim/engine/battle"
	"github.com/1siamBot/trench-sim/engine/command"
	"github.com/1siamBot/trench-sim/engine/config"
	"github.com/1siamBot/trench-sim/engine/logging"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

func main() {
	var configDir string
	var ticks uint64
	var runs int
	var seed int64
	var replayPath string
	var copyReport bool
	var dumpMetrics bool

	flag.StringVar(&configDir, "config", ".", "directory holding "+config.FileName)
	flag.Uint64Var(&ticks, "ticks", 3600, "tick limit per run")
	flag.IntVar(&runs, "runs", 1, "number of runs, seeds counting up from -seed")
	flag.Int64Var(&seed, "seed", 0, "RNG seed for run 1 (0 uses the replay seed, then the config seed)")
	flag.StringVar(&replayPath, "replay", "", "command log to play back")
	flag.BoolVar(&copyReport, "clipboard", false, "copy the report to the clipboard")
	flag.BoolVar(&dumpMetrics, "metrics", false, "append the collected battle metrics to each run")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	if runs <= 0 {
		log.Fatal().Int("runs", runs).Msg("-runs must be > 0")
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	var replay *command.Replay
	if replayPath != "" {
		replay, err = loadReplay(replayPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading replay")
		}
		log.Info().Int("commands", len(replay.Commands)).Uint64("lastTick", replay.LastTick()).Int64("seed", replay.Seed).Msg("replay loaded")
		if seed == 0 {
			cfg.Seed = replay.Seed
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "=== Trench Battle Report ===\n")
	fmt.Fprintf(&out, "runs=%d ticks=%d difficulty=%s\n\n", runs, ticks, cfg.AI.Difficulty)

	base := cfg.Seed
	for i := 0; i < runs; i++ {
		if base != 0 {
			cfg.Seed = base + int64(i)
		}
		fmt.Fprintf(&out, "--- Run %d ---\n", i+1)
		if err := run(&out, log, cfg, ticks, replay, dumpMetrics); err != nil {
			log.Fatal().Err(err).Int("run", i+1).Msg("battle failed")
		}
		out.WriteString("\n")
	}

	fmt.Print(out.String())
	if copyReport {
		if err := clipboard.WriteAll(out.String()); err != nil {
			log.Warn().Err(err).Msg("could not copy report to clipboard")
		} else {
			log.Info().Msg("report copied to clipboard")
		}
	}
}

func run(out io.Writer, log zerolog.Logger, cfg *config.Config, ticks uint64, replay *command.Replay, dumpMetrics bool) error {
	b, err := battle.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Metrics.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("stopping metrics")
		}
	}()
	logging.Attach(log, b.World.Bus)
	if replay != nil {
		if replay.Seed != 0 && replay.Seed != b.Seed {
			log.Warn().Int64("logSeed", replay.Seed).Int64("seed", b.Seed).Msg("replaying on a different seed than the log was recorded with")
		}
		b.Commander.Play(replay)
	}
	for _, s := range b.World.Systems() {
		log.Debug().Str("system", fmt.Sprintf("%T", s)).Int("priority", s.Priority()).Msg("tick order")
	}

	log.Info().Int64("seed", b.Seed).Uint64("ticks", ticks).Msg("battle started")
	b.RunTicks(ticks)
	r := b.Report()
	log.Info().Stringer("outcome", r.Outcome).Uint64("tick", r.Ticks).Int("kills", r.Kills).Msg("battle ended")

	fmt.Fprint(out, r)
	if dumpMetrics {
		fmt.Fprintln(out, "Metrics:")
		if err := b.Metrics.Dump(out); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func loadReplay(path string) (*command.Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay: %w", err)
	}
	defer f.Close()
	return command.LoadReplay(f)
}
