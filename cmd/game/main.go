package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/1siamBot/trench-sim/engine/ai"
	"github.com/1siamBot/trench-sim/engine/audio"
	"github.com/1siamBot/trench-sim/engine/battle"
	"github.com/1siamBot/trench-sim/engine/command"
	"github.com/1siamBot/trench-sim/engine/config"
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/input"
	"github.com/1siamBot/trench-sim/engine/logging"
	"github.com/1siamBot/trench-sim/engine/render"
	"github.com/1siamBot/trench-sim/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// Game implements ebiten.Game interface
type Game struct {
	battle   *battle.Battle
	renderer *render.Renderer
	hud      *ui.HUD
	input    *input.InputState
	audio    *audio.AudioManager
	log      zerolog.Logger

	screenW, screenH int
	visionRadius     float64
	announced        bool
}

func NewGame(b *battle.Battle, am *audio.AudioManager, log zerolog.Logger) *Game {
	cfg := b.Config
	g := &Game{
		battle:       b,
		renderer:     render.NewRenderer(int(cfg.World.Width), int(cfg.World.Height), b.Seed),
		input:        input.NewInputState(),
		audio:        am,
		log:          log,
		screenW:      int(cfg.World.Width),
		screenH:      int(cfg.World.Height),
		visionRadius: cfg.Render.VisionRadius,
	}
	g.hud = ui.NewHUD(g.screenW, g.screenH, b.Commander, b.Loop)
	g.renderer.Selected = b.Commander.IsSelected
	g.renderer.SmokeLife = cfg.Combat.SmokeLife

	b.Loop.Play()
	return g
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.JustPressed[ebiten.KeyEscape] {
		return ebiten.Termination
	}

	g.input.Dispatch(g.hud, g.hud)

	// Game simulation tick
	g.battle.Loop.Update()

	if g.battle.Loop.State == core.StateGameOver && !g.announced {
		g.announced = true
		r := g.battle.Report()
		g.log.Info().Stringer("outcome", r.Outcome).Uint64("tick", r.Ticks).Int("kills", r.Kills).Msg("battle ended")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Begin(screen)
	core.RenderFrame(g.renderer, g.battle.World, g.visionRadius)

	if x1, y1, x2, y2, active := g.input.DragRect(); active {
		g.renderer.DrawSelectionBox(x1, y1, x2, y2)
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	cursor := g.renderer.Camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)
	threat := ai.ThreatAssessment(g.battle.World, cursor)
	g.hud.Draw(screen, g.battle, cursor, threat)
	g.renderer.DrawText(fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS()), float64(g.screenW-80), 28)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

func main() {
	var configDir string
	var recordPath string
	flag.StringVar(&configDir, "config", ".", "directory holding "+config.FileName)
	flag.StringVar(&recordPath, "record", "", "write the command log to this file")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	b, err := battle.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("deploying battle")
	}
	logging.Attach(log, b.World.Bus)

	am := audio.NewAudioManager()
	if err := am.Initialize(); err != nil {
		log.Warn().Err(err).Msg("audio unavailable, playing silent")
	}
	defer am.Cleanup()
	am.SetVolume(cfg.Render.Volume)
	am.Attach(b.World.Bus)

	var rec *command.Recorder
	if recordPath != "" {
		f, err := os.Create(recordPath)
		if err != nil {
			log.Fatal().Err(err).Msg("creating command log")
		}
		defer f.Close()
		rec = command.NewRecorder(f, b.Seed)
		b.Commander.Record(rec)
	}

	log.Info().Int64("seed", b.Seed).Str("difficulty", cfg.AI.Difficulty).Float64("tickRate", cfg.TickRate).Msg("battle started")

	ebiten.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	ebiten.SetWindowTitle("Trench Sim")
	ebiten.SetVsyncEnabled(true)

	game := NewGame(b, am, log)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game stopped")
	}

	if rec != nil {
		if err := errors.Join(b.Commander.Err(), rec.Flush()); err != nil {
			log.Error().Err(err).Msg("writing command log")
		} else {
			log.Info().Str("path", recordPath).Int("commands", len(rec.Commands)).Msg("command log written")
		}
	}
}
