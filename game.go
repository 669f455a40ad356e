package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/mercmech/common"
	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/ecs/render"
	"github.com/milk9111/mercmech/prefabs"
	"github.com/milk9111/mercmech/sim"
)

const toastFrames = 120

type GameOptions struct {
	MechFile  string
	LevelFile string
	Verbose   bool
	Prefs     Prefs
}

type Game struct {
	sim     *sim.Simulation
	prefs   Prefs
	paused  bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher

	clipboardReady bool
	toast          string
	toastLeft      int
}

func NewGame(opts GameOptions) (*Game, error) {
	s, err := sim.New(sim.Options{
		MechFile:  opts.MechFile,
		LevelFile: opts.LevelFile,
		Pilot:     opts.Prefs.Script,
		Input:     readDevice,
		Verbose:   opts.Verbose,
		Debug:     opts.Prefs.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{sim: s, prefs: opts.Prefs}
	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboardReady = true
	}

	if info, err := os.Stat(prefabs.Dir); err == nil && info.IsDir() {
		if w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts"); err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if pausePressed() {
		g.paused = !g.paused
	}
	if g.toastLeft > 0 {
		g.toastLeft--
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.toggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}
	g.pollWatcher()
	g.sim.Update()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Drain() {
		if err := g.sim.HandleFileChange(path); err != nil {
			log.Printf("game: reload %s: %v", path, err)
			g.notify("reload failed: " + err.Error())
			continue
		}
		g.notify("reloaded " + path)
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("game: watcher: %v", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.DrawWorld(screen, g.sim.World, g.sim.Physics.Space(), g.sim.Debug())

	if c := g.sim.Character(); c != nil {
		hud := render.HUD{
			Name:  g.sim.MechSpec.Name,
			Pilot: g.sim.Pilot(),
			FPS:   ebiten.ActualFPS(),
			Debug: g.sim.Debug(),
		}
		if in, ok := ecs.Get(g.sim.World, g.sim.Player, component.InputComponent.Kind()); ok {
			hud.Source = in.Source.String()
		}
		if p, ok := ecs.Get(g.sim.World, g.sim.Player, component.PilotComponent.Kind()); ok {
			hud.Error = p.LastError
		}
		if hud.Debug {
			hud.Samples = c.Samples()
		}
		render.DrawHUD(screen, c.Status(), hud)
	}

	if g.toastLeft > 0 {
		ebitenutil.DebugPrintAt(screen, g.toast, 10, common.BaseHeight-24)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	savePrefs(g.prefs)
}

func (g *Game) notify(msg string) {
	g.toast = msg
	g.toastLeft = toastFrames
}

func (g *Game) reset() {
	g.sim.Reset()
	g.notify("reset")
}

func (g *Game) toggleDebug() {
	on := !g.sim.Debug()
	if err := g.sim.SetDebug(on); err != nil {
		g.notify("debug: " + err.Error())
		return
	}
	g.prefs.Debug = on
	savePrefs(g.prefs)
	g.notify(fmt.Sprintf("debug %v", on))
}

// copyTuning puts the live tuning on the clipboard as a mech file fragment.
func (g *Game) copyTuning() error {
	if !g.clipboardReady {
		return errors.New("clipboard unavailable")
	}
	data, err := prefabs.MarshalTuning(g.sim.MechSpec.Tuning)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	g.notify("tuning copied to clipboard")
	return nil
}

// cyclePilot steps through keyboard control and every bundled script.
func (g *Game) cyclePilot() {
	options := append([]string{"-"}, prefabs.Scripts()...)
	current := strings.TrimSuffix(g.sim.Pilot(), ".tengo")
	next := options[0]
	for i, name := range options {
		if name == current || (current == "" && name == "-") {
			next = options[(i+1)%len(options)]
			break
		}
	}
	if err := g.sim.SetPilot(next); err != nil {
		g.notify("pilot: " + err.Error())
		return
	}
	g.prefs.Script = next
	savePrefs(g.prefs)
	if next == "-" {
		next = "keyboard"
	}
	g.notify("pilot: " + next)
}
