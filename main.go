package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/camrig/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&cfg.Scene, "scene", cfg.Scene, "scene yaml (path or name in prefabs/)")
	flag.StringVar(&cfg.Blends, "blends", cfg.Blends, "blender settings yaml")
	flag.StringVar(&cfg.Script, "script", cfg.Script, "tengo blend rules script")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	flag.IntVar(&cfg.TickRate, "tps", cfg.TickRate, "simulation ticks per second")
	watch := flag.String("watch", strings.Join(cfg.Watch, ","), "comma separated directories to watch for rule changes")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg.Watch = nil
	for _, dir := range strings.Split(*watch, ",") {
		if dir = strings.TrimSpace(dir); dir != "" {
			cfg.Watch = append(cfg.Watch, dir)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := cfg.Logger(os.Stderr)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("camrig")
	ebiten.SetTPS(cfg.TickRate)

	game, err := NewGame(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
