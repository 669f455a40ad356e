package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and movement sampling")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	script := flag.String("script", "", "pilot script in prefabs/scripts (name, .tengo optional); \"-\" forces keyboard")
	mechFile := flag.String("mech", "mech.yaml", "mech prefab file")
	levelFile := flag.String("level", "level.yaml", "level prefab file")
	verbose := flag.Bool("v", false, "log simulation events")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("mercmech")

	prefs := loadPrefs()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			prefs.Debug = *debug
		case "script":
			prefs.Script = *script
		}
	})

	game, err := NewGame(GameOptions{
		MechFile:  *mechFile,
		LevelFile: *levelFile,
		Verbose:   *verbose,
		Prefs:     prefs,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
