package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/common"
	"github.com/stretchr/testify/assert"
)

func lookingState(pos, lookAt mgl32.Vec3) CameraState {
	s := NewCameraState()
	s.RawPosition = pos
	s.ReferenceLookAt = lookAt
	s.HasLookAt = true
	s.RawOrientation = common.LookRotation(lookAt.Sub(pos), common.WorldUp)
	return s
}

func TestNewCameraStateDefaults(t *testing.T) {
	s := NewCameraState()
	assert.False(t, s.HasLookAt)
	assert.Equal(t, mgl32.QuatIdent(), s.OrientationCorrection)
	assert.Equal(t, mgl32.Vec3{}, s.PositionCorrection)
	assert.Equal(t, common.WorldUp, s.ReferenceUp)

	var zero CameraState
	assert.False(t, zero.HasLookAt)
	assert.Equal(t, mgl32.QuatIdent(), zero.FinalOrientation())
}

func TestLerpEndpointsAreExact(t *testing.T) {
	a := lookingState(mgl32.Vec3{0, 1, 5}, mgl32.Vec3{0, 0, 0})
	b := lookingState(mgl32.Vec3{7, 3, -2}, mgl32.Vec3{1, 0, 1})
	b.Lens.FieldOfView = 70
	b.PositionCorrection = mgl32.Vec3{0.5, 0, 0}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, a, Lerp(a, b, -1))
	assert.Equal(t, b, Lerp(a, b, 2))
}

func TestLerpIsIdempotentForEqualStates(t *testing.T) {
	a := lookingState(mgl32.Vec3{3, 1, 5}, mgl32.Vec3{0, 2, 0})
	for _, w := range []float32{0.1, 0.5, 0.9} {
		assert.Equal(t, a, Lerp(a, a, w))
	}
}

func TestLerpIgnoreLookAtTargetSlerpsOrientation(t *testing.T) {
	cases := []struct {
		name   string
		hintsA BlendHints
		hintsB BlendHints
	}{
		{"hint_on_a", IgnoreLookAtTarget, 0},
		{"hint_on_b", 0, IgnoreLookAtTarget},
		{"hint_on_both", IgnoreLookAtTarget, IgnoreLookAtTarget},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := lookingState(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})
			b := lookingState(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 1, 0})
			a.RawOrientation = mgl32.QuatRotate(0.3, common.WorldUp)
			b.RawOrientation = mgl32.QuatRotate(-0.8, common.WorldUp)
			a.BlendHint = c.hintsA
			b.BlendHint = c.hintsB

			got := Lerp(a, b, 0.5)
			assert.Equal(t, mgl32.QuatSlerp(a.RawOrientation, b.RawOrientation, 0.5), got.RawOrientation)
			assert.False(t, got.HasLookAt)
		})
	}
}

func TestLerpBlendsLookAtTarget(t *testing.T) {
	a := lookingState(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0})
	b := lookingState(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{2, 1, 0})

	got := Lerp(a, b, 0.5)
	assert.True(t, got.HasLookAt)
	assert.Equal(t, common.LerpVec3(a.ReferenceLookAt, b.ReferenceLookAt, 0.5), got.ReferenceLookAt)

	want := got.ReferenceLookAt.Sub(got.RawPosition).Normalize()
	assert.True(t, got.Forward().ApproxEqualThreshold(want, 1e-3), "forward %v want %v", got.Forward(), want)
}

func TestLerpWithoutBothLookAtsSlerps(t *testing.T) {
	a := lookingState(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0})
	b := NewCameraState()
	b.RawOrientation = mgl32.QuatRotate(1, common.WorldUp)

	got := Lerp(a, b, 0.25)
	assert.False(t, got.HasLookAt)
	assert.Equal(t, mgl32.QuatSlerp(a.RawOrientation, b.RawOrientation, 0.25), got.RawOrientation)
}

func TestLerpLens(t *testing.T) {
	a := NewCameraState()
	b := NewCameraState()
	a.Lens.FieldOfView = 40
	b.Lens.FieldOfView = 60
	b.Lens.Mode = LensOrthographic

	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 50, mid.Lens.FieldOfView, 1e-5)
	assert.Equal(t, LensOrthographic, mid.Lens.Mode)
	assert.Equal(t, LensPerspective, Lerp(a, b, 0.4).Lens.Mode)
}

func TestLerpHintsTakeOtherSide(t *testing.T) {
	a := NewCameraState()
	b := NewCameraState()
	a.RawPosition = mgl32.Vec3{1, 2, 3}
	b.RawPosition = mgl32.Vec3{9, 9, 9}
	a.Lens.FieldOfView = 10
	b.Lens.FieldOfView = 90

	a.BlendHint = NoPosition
	b.BlendHint = NoLens
	got := Lerp(a, b, 0.3)
	assert.Equal(t, b.RawPosition, got.RawPosition)
	assert.Equal(t, a.Lens, got.Lens)
	assert.Equal(t, BlendHints(0), got.BlendHint)

	a.BlendHint = NoPosition
	b.BlendHint = NoPosition
	assert.Equal(t, NoPosition, Lerp(a, b, 0.3).BlendHint)
}

func TestLerpSphericalPositionKeepsDistance(t *testing.T) {
	target := mgl32.Vec3{0, 0, 0}
	a := lookingState(mgl32.Vec3{0, 0, 10}, target)
	b := lookingState(mgl32.Vec3{10, 0, 0}, target)
	a.BlendHint = SphericalPosition
	b.BlendHint = SphericalPosition

	got := Lerp(a, b, 0.5)
	assert.InDelta(t, 10, got.RawPosition.Sub(target).Len(), 1e-3)

	a.BlendHint, b.BlendHint = 0, 0
	linear := Lerp(a, b, 0.5)
	assert.Less(t, linear.RawPosition.Sub(target).Len(), float32(9))
}

func TestLerpCylindricalPosition(t *testing.T) {
	target := mgl32.Vec3{1, 0, 1}
	cases := []struct {
		name   string
		a, b   mgl32.Vec3
		height float32
	}{
		{"quarter_turn", mgl32.Vec3{10, 2, 0}, mgl32.Vec3{0, 6, 10}, 4},
		{"opposite_sides", mgl32.Vec3{-10, 0, 0}, mgl32.Vec3{10, 4, 0}, 2},
		{"nearly_opposite", mgl32.Vec3{-10, 0, 0.0001}, mgl32.Vec3{10, 0, 0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := lookingState(target.Add(c.a), target)
			b := lookingState(target.Add(c.b), target)
			a.BlendHint = CylindricalPosition
			b.BlendHint = CylindricalPosition

			got := Lerp(a, b, 0.5)
			pivot := got.RawPosition.Sub(target)
			flat := mgl32.Vec3{pivot.X(), 0, pivot.Z()}
			assert.InDelta(t, c.height, pivot.Y(), 1e-3)
			assert.InDelta(t, 10, flat.Len(), 1e-3)
			assertFinite(t, got)
		})
	}
}

func TestLerpSphericalPositionOppositeSides(t *testing.T) {
	target := mgl32.Vec3{}
	a := lookingState(mgl32.Vec3{-10, 0, 0}, target)
	b := lookingState(mgl32.Vec3{10, 0, 0}, target)
	a.BlendHint = SphericalPosition
	b.BlendHint = SphericalPosition

	for _, w := range []float32{0.1, 0.5, 0.9} {
		got := Lerp(a, b, w)
		assertFinite(t, got)
		assert.InDelta(t, 10, got.RawPosition.Len(), 1e-3)
		// orbits around up rather than over the top
		assert.InDelta(t, 0, got.RawPosition.Y(), 1e-3)
		fwd := got.FinalOrientation().Rotate(common.WorldForward)
		assert.True(t, fwd.ApproxEqualThreshold(got.RawPosition.Mul(-0.1), 1e-3), "forward %v", fwd)
	}
}

func TestLerpNoOrientationWinsOverIgnoreLookAt(t *testing.T) {
	a := lookingState(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	b := lookingState(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{})
	a.BlendHint = NoOrientation | IgnoreLookAtTarget

	got := Lerp(a, b, 0.3)
	assert.Equal(t, b.RawOrientation, got.RawOrientation)
	assert.False(t, got.HasLookAt)
}

func assertFinite(t *testing.T, s CameraState) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(float64(s.RawPosition[i])), "position %v", s.RawPosition)
		assert.False(t, math.IsNaN(float64(s.RawOrientation.V[i])), "orientation %v", s.RawOrientation)
	}
	assert.False(t, math.IsNaN(float64(s.RawOrientation.W)), "orientation %v", s.RawOrientation)
}

func TestLerpCorrections(t *testing.T) {
	a := NewCameraState()
	b := NewCameraState()
	b.PositionCorrection = mgl32.Vec3{0, 4, 0}
	got := Lerp(a, b, 0.5)
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, got.PositionCorrection)
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, got.FinalPosition())
}

func TestParseBlendHints(t *testing.T) {
	hints, err := ParseBlendHints([]string{"spherical_position", " Ignore_Look_At "})
	assert.NoError(t, err)
	assert.Equal(t, SphericalPosition|IgnoreLookAtTarget, hints)
	assert.True(t, hints.Has(IgnoreLookAtTarget))
	assert.False(t, hints.Has(NoLens))

	_, err = ParseBlendHints([]string{"sideways"})
	assert.Error(t, err)
}

func TestParseLensMode(t *testing.T) {
	mode, err := ParseLensMode("ortho")
	assert.NoError(t, err)
	assert.Equal(t, LensOrthographic, mode)
	mode, err = ParseLensMode("")
	assert.NoError(t, err)
	assert.Equal(t, LensPerspective, mode)
	_, err = ParseLensMode("fisheye")
	assert.Error(t, err)
}
