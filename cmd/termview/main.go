package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/1siamBot/trench-sim/engine/battle"
	"github.com/1siamBot/trench-sim/engine/config"
	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/1siamBot/trench-sim/engine/logging"
	"github.com/1siamBot/trench-sim/engine/termview"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

type app struct {
	screen tcell.Screen
	term   *termview.Terminal
	battle *battle.Battle
	log    zerolog.Logger

	visionRadius float64
	buttons      tcell.ButtonMask
	mouse        core.Vec2
}

// handleInput reports false when the player quits
func (a *app) handleInput(ev tcell.Event) bool {
	cmd := a.battle.Commander
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a':
				cmd.CallArtillery(a.mouse.X, a.mouse.Y)
			case 't':
				cmd.SpawnVehicle(a.mouse.X, a.mouse.Y)
			case ' ':
				a.battle.Loop.Toggle()
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.mouse = a.term.FieldPos(x, y)
		btn := ev.Buttons()

		pressed := btn &^ a.buttons
		released := a.buttons &^ btn
		a.buttons = btn

		if pressed&tcell.Button1 != 0 {
			cmd.Press(a.mouse.X, a.mouse.Y)
		}
		if released&tcell.Button1 != 0 {
			cmd.Release(a.mouse.X, a.mouse.Y)
		}
		if pressed&(tcell.Button2|tcell.Button3) != 0 {
			cmd.Click(a.mouse.X, a.mouse.Y)
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) draw() {
	switch a.battle.Loop.State {
	case core.StatePaused:
		a.term.Status = "PAUSED"
	case core.StateGameOver:
		a.term.Status = a.battle.World.Outcome().String()
	default:
		a.term.Status = ""
	}
	core.RenderFrame(a.term, a.battle.World, a.visionRadius)
	a.term.Show()
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed
func pollEvents(s tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (a *app) run() {
	dt := 1.0 / a.battle.Loop.TickRate
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, eventChan, done)

	ended := false
	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case <-ticker.C:
			a.battle.Loop.Advance(dt)
			if a.battle.Loop.State == core.StateGameOver && !ended {
				ended = true
				r := a.battle.Report()
				a.log.Info().Stringer("outcome", r.Outcome).Uint64("tick", r.Ticks).Msg("battle ended")
			}
			a.draw()
		}
	}
}

func main() {
	var configDir string
	var logPath string
	flag.StringVar(&configDir, "config", ".", "directory holding "+config.FileName)
	flag.StringVar(&logPath, "log", "", "write the battle log to this file")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The terminal owns stdout and stderr while the battle runs
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := logging.New(out, cfg.LogLevel)

	b, err := battle.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logging.Attach(log, b.World.Bus)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	a := &app{
		screen:       screen,
		term:         termview.NewTerminal(screen, cfg.World.Width, cfg.World.Height),
		battle:       b,
		log:          log,
		visionRadius: cfg.Render.VisionRadius,
	}
	log.Info().Int64("seed", b.Seed).Msg("battle started")

	b.Loop.Play()
	a.run()
	screen.Fini()

	fmt.Print(b.Report())
}
