package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/ecs/entity"
)

var (
	arenaColor   = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	targetColor  = color.RGBA{R: 240, G: 200, B: 60, A: 255}
	cameraColor  = color.RGBA{R: 120, G: 120, B: 140, A: 255}
	liveColor    = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	disableColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	outputColor  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

const forwardLength = 3

// RenderSystem draws a top-down view of the XZ plane: the arena, targets,
// every virtual camera, and the blended brain output.
type RenderSystem struct {
	Scale   float32
	OffsetX float32
	OffsetY float32
	Brain   *BrainSystem
}

func NewRenderSystem(brain *BrainSystem, scale, offsetX, offsetY float32) *RenderSystem {
	return &RenderSystem{Scale: scale, OffsetX: offsetX, OffsetY: offsetY, Brain: brain}
}

func (rs *RenderSystem) Update(*ecs.World) {}

func (rs *RenderSystem) project(p mgl32.Vec3) (float32, float32) {
	return rs.OffsetX + p.X()*rs.Scale, rs.OffsetY + p.Z()*rs.Scale
}

func (rs *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if rs == nil || w == nil || screen == nil {
		return
	}

	ecs.ForEach(w, component.ArenaBoundsComponent.Kind(), func(_ ecs.Entity, b *component.ArenaBounds) {
		vector.StrokeRect(screen, rs.OffsetX, rs.OffsetY, float32(b.Width)*rs.Scale, float32(b.Depth)*rs.Scale, 2, arenaColor, false)
	})

	ecs.ForEach2(w, component.TargetTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.TargetTag, t *component.Transform) {
		r := float32(1)
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Radius > 0 {
			r = float32(pb.Radius)
		}
		x, y := rs.project(t.Position)
		vector.FillCircle(screen, x, y, r*rs.Scale, targetColor, true)
	})

	ecs.ForEach(w, component.VirtualCameraComponent.Kind(), func(e ecs.Entity, vc *component.VirtualCamera) {
		clr := cameraColor
		switch {
		case !vc.Enabled:
			clr = disableColor
		case rs.Brain != nil && rs.Brain.IsLiveChild(entity.NewCameraRef(w, e)):
			clr = liveColor
		}
		rs.drawCamera(screen, vc.State, 4, clr)
	})

	if rs.Brain != nil {
		rs.drawCamera(screen, rs.Brain.State(), 6, outputColor)
	}
}

func (rs *RenderSystem) drawCamera(screen *ebiten.Image, state camera.CameraState, size float32, clr color.Color) {
	pos := state.FinalPosition()
	x, y := rs.project(pos)
	vector.FillRect(screen, x-size/2, y-size/2, size, size, clr, false)

	fwd := state.Forward()
	fx, fy := rs.project(pos.Add(mgl32.Vec3{fwd.X(), 0, fwd.Z()}.Mul(forwardLength)))
	vector.StrokeLine(screen, x, y, fx, fy, 1, clr, true)
}
