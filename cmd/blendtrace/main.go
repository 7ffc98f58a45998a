// Command blendtrace replays a yaml timeline of camera activations through
// the blend manager and prints the resulting camera events.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/camrig/blendrules"
	"github.com/milk9111/camrig/config"
	"github.com/milk9111/camrig/prefabs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	timeline := flag.String("timeline", "timeline.yaml", "timeline yaml (path or name in prefabs/)")
	blends := flag.String("blends", "", "blender settings yaml; overrides the timeline's")
	flag.StringVar(&cfg.Script, "script", cfg.Script, "tengo blend rules script")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	verbose := flag.Bool("v", false, "print the blend description of every frame")
	state := flag.Bool("state", false, "print the final blended state as yaml")
	flag.Parse()

	logger := cfg.Logger(os.Stderr)

	spec, err := prefabs.LoadTimelineSpec(*timeline)
	if err != nil {
		log.Fatal(err)
	}
	blendsPath := spec.Blends
	if *blends != "" {
		blendsPath = *blends
	}

	lookup, err := blendrules.Build(blendsPath, cfg.Script, logger)
	if err != nil {
		log.Fatal(err)
	}

	_, final, err := Run(spec, lookup, os.Stdout, *verbose, logger)
	if err != nil {
		log.Fatal(err)
	}

	if *state {
		data, err := prefabs.NewStateSnapshot(final).YAML()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	}
}
