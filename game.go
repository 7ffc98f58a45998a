package main

import (
	"fmt"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/camrig/blendrules"
	"github.com/milk9111/camrig/config"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/ecs/entity"
	"github.com/milk9111/camrig/ecs/system"
	"github.com/milk9111/camrig/prefabs"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	viewScale  = 16
	viewMargin = 40
)

var cameraKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type Game struct {
	frames int
	logger *slog.Logger

	world   *ecs.World
	scene   *entity.Scene
	brain   *system.BrainSystem
	physics *system.PhysicsSystem
	render  *system.RenderSystem
	rules   *blendrules.Reloader
	debug   bool

	selected     int
	paused       bool
	pauseUI      *ebitenui.UI
	hud          *hud
	clipboardErr error
	status       string
}

func NewGame(cfg config.Config, logger *slog.Logger) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(cfg.Scene)
	if err != nil {
		return nil, err
	}

	rules, err := blendrules.NewReloader(cfg.Blends, cfg.Script, logger)
	if err != nil {
		return nil, fmt.Errorf("load blend rules: %w", err)
	}
	if len(cfg.Watch) > 0 {
		if err := rules.Watch(cfg.Watch...); err != nil {
			logger.Warn("hot reload disabled", "dirs", cfg.Watch, "err", err)
		}
	}

	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, spec)
	if err != nil {
		_ = rules.Close()
		return nil, err
	}

	dt := cfg.DeltaTime()
	brain := system.NewBrainSystem(rules, dt, logger)
	physics := system.NewPhysicsSystem(float64(dt))
	render := system.NewRenderSystem(brain, viewScale, viewMargin, viewMargin)
	w.AddSystem(physics)
	w.AddSystem(system.NewVirtualCameraSystem())
	w.AddSystem(brain)
	w.AddSystem(render)

	g := &Game{
		logger:       logger,
		world:        w,
		scene:        scene,
		brain:        brain,
		physics:      physics,
		render:       render,
		rules:        rules,
		debug:        cfg.Debug,
		hud:          newHUD(),
		clipboardErr: clipboard.Init(),
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if err := g.rules.Close(); err != nil {
		g.logger.Warn("close watcher", "err", err)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.frames++

	if changed, err := g.rules.Poll(); err != nil {
		g.status = "rules reload failed: " + err.Error()
	} else if changed {
		g.status = "blend rules reloaded"
	}

	g.handleInput()
	g.world.Update()

	for _, evt := range g.world.Events().Drain() {
		g.logger.Debug("camera event", "type", evt.Type, "frame", g.frames)
	}
	return nil
}

func (g *Game) handleInput() {
	cams := g.scene.LiveCameras(g.world)
	for i, key := range cameraKeys {
		if i < len(cams) && inpututil.IsKeyJustPressed(key) {
			g.selected = i
			entity.Prioritize(g.world, cams[i])
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyD) && g.selected < len(cams) {
		name := entity.NewCameraRef(g.world, cams[g.selected]).Name()
		g.world.DestroyEntity(cams[g.selected])
		g.selected = 0
		g.status = "destroyed " + name
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.brain.Reset()
		g.status = "root frame reset"
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.status = g.copyState()
	}
}

func (g *Game) copyState() string {
	if g.clipboardErr != nil {
		return "clipboard unavailable: " + g.clipboardErr.Error()
	}
	data, err := prefabs.NewStateSnapshot(g.brain.State()).YAML()
	if err != nil {
		return "copy failed: " + err.Error()
	}
	clipboard.Write(clipboard.FmtText, data)
	return "camera state copied"
}

func (g *Game) brainComponent() *component.Brain {
	e, ok := g.world.First(component.BrainComponent.Kind())
	if !ok {
		return nil
	}
	brain, _ := ecs.Get(g.world, e, component.BrainComponent.Kind())
	return brain
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), screen, g.render)
	}
	g.hud.Draw(screen, g)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
