package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/ecs/entity"
	"golang.org/x/image/font/basicfont"
)

const (
	hudX          = 880
	hudLineHeight = 16
)

type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) lines(g *Game) []string {
	targets := g.world.Query(component.TargetTagComponent.Kind(), component.TransformComponent.Kind())
	lines := []string{fmt.Sprintf("frame %d  fps %.1f  targets %d", g.frames, ebiten.ActualFPS(), len(targets))}

	if brain := g.brainComponent(); brain != nil {
		lines = append(lines,
			"active: "+brain.Active,
			"blend:  "+brain.Description,
			fmt.Sprintf("fov %.1f  blending %v", brain.Output.Lens.FieldOfView, brain.Blending),
			"",
		)
		for _, rec := range brain.Log {
			lines = append(lines, rec.String())
		}
		lines = append(lines, "")
	}

	for i, e := range g.scene.LiveCameras(g.world) {
		vc, ok := ecs.Get(g.world, e, component.VirtualCameraComponent.Kind())
		if !ok {
			continue
		}
		marker := " "
		if i == g.selected {
			marker = ">"
		}
		live := ""
		if g.brain.IsLiveChild(entity.NewCameraRef(g.world, e)) {
			live = " live"
		}
		lines = append(lines, fmt.Sprintf("%s%d %-10s p=%d%s", marker, i+1, vc.Name, vc.Priority, live))
	}

	if g.status != "" {
		lines = append(lines, "", g.status)
	}
	return lines
}

func (h *hud) Draw(screen *ebiten.Image, g *Game) {
	for i, line := range h.lines(g) {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(hudX, float64(10+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		ebtext.Draw(screen, line, h.face, op)
	}
}
