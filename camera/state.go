package camera

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/common"
)

// BlendHints change how a state takes part in interpolation.
type BlendHints uint32

const (
	// NoPosition means this state's position is not blended; the other side's is used.
	NoPosition BlendHints = 1 << iota
	// NoOrientation means this state's orientation is not blended. It wins over
	// IgnoreLookAtTarget: the other side's raw orientation is used unchanged.
	NoOrientation
	// NoLens means this state's lens is not blended.
	NoLens
	// SphericalPosition blends position around the look-at target on a sphere.
	SphericalPosition
	// CylindricalPosition blends position around the look-at target's up axis.
	CylindricalPosition
	// IgnoreLookAtTarget slerps raw orientations instead of tracking a blended look-at point.
	IgnoreLookAtTarget

	NoTransform = NoPosition | NoOrientation
)

func (h BlendHints) Has(flag BlendHints) bool {
	return h&flag != 0
}

type LensMode int

const (
	LensPerspective LensMode = iota
	LensOrthographic
	LensPhysical
)

// LensSettings describes the projection of a camera.
type LensSettings struct {
	FieldOfView      float32
	OrthographicSize float32
	NearClipPlane    float32
	FarClipPlane     float32
	Dutch            float32
	FocusDistance    float32
	LensShift        mgl32.Vec2
	Mode             LensMode
}

func DefaultLens() LensSettings {
	return LensSettings{
		FieldOfView:      40,
		OrthographicSize: 10,
		NearClipPlane:    0.1,
		FarClipPlane:     5000,
		FocusDistance:    10,
	}
}

// LerpLens interpolates lens values; Mode snaps to b at t >= 0.5.
func LerpLens(a, b LensSettings, t float32) LensSettings {
	out := LensSettings{
		FieldOfView:      common.Lerp(a.FieldOfView, b.FieldOfView, t),
		OrthographicSize: common.Lerp(a.OrthographicSize, b.OrthographicSize, t),
		NearClipPlane:    common.Lerp(a.NearClipPlane, b.NearClipPlane, t),
		FarClipPlane:     common.Lerp(a.FarClipPlane, b.FarClipPlane, t),
		Dutch:            common.Lerp(a.Dutch, b.Dutch, t),
		FocusDistance:    common.Lerp(a.FocusDistance, b.FocusDistance, t),
		LensShift:        common.LerpVec2(a.LensShift, b.LensShift, t),
		Mode:             a.Mode,
	}
	if t >= 0.5 {
		out.Mode = b.Mode
	}
	return out
}

// CameraState is the output of a virtual camera for one frame.
type CameraState struct {
	Lens LensSettings

	ReferenceUp mgl32.Vec3
	// ReferenceLookAt is meaningful only when HasLookAt is set.
	ReferenceLookAt mgl32.Vec3
	HasLookAt       bool

	RawPosition    mgl32.Vec3
	RawOrientation mgl32.Quat

	PositionCorrection    mgl32.Vec3
	OrientationCorrection mgl32.Quat

	BlendHint BlendHints
}

// NewCameraState returns the default state: no look-at target, identity
// orientation and corrections.
func NewCameraState() CameraState {
	return CameraState{
		Lens:                  DefaultLens(),
		ReferenceUp:           common.WorldUp,
		RawOrientation:        mgl32.QuatIdent(),
		OrientationCorrection: mgl32.QuatIdent(),
	}
}

// FinalPosition is the raw position with its correction applied.
func (s CameraState) FinalPosition() mgl32.Vec3 {
	return s.RawPosition.Add(s.PositionCorrection)
}

// FinalOrientation is the raw orientation with its correction and dutch applied.
func (s CameraState) FinalOrientation() mgl32.Quat {
	q := orIdentity(s.RawOrientation).Mul(orIdentity(s.OrientationCorrection))
	if s.Lens.Dutch != 0 {
		q = q.Mul(mgl32.QuatRotate(mgl32.DegToRad(s.Lens.Dutch), mgl32.Vec3{0, 0, 1}))
	}
	return q.Normalize()
}

// Forward is the final viewing direction.
func (s CameraState) Forward() mgl32.Vec3 {
	return s.FinalOrientation().Rotate(common.WorldForward)
}

func orIdentity(q mgl32.Quat) mgl32.Quat {
	if q.W == 0 && q.V == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return q
}

func upOf(s CameraState) mgl32.Vec3 {
	if s.ReferenceUp.Len() < common.Epsilon {
		return common.WorldUp
	}
	return s.ReferenceUp
}

// Lerp blends a toward b by t. Lerp(a, b, 0) is a and Lerp(a, b, 1) is b
// exactly, and Lerp(a, a, t) is a.
func Lerp(a, b CameraState, t float32) CameraState {
	if t <= 0 || a == b {
		return a
	}
	if t >= 1 {
		return b
	}

	var s CameraState
	s.BlendHint = a.BlendHint & b.BlendHint & (NoPosition | NoOrientation | NoLens)

	s.Lens = blendLens(a, b, t)
	s.ReferenceUp = common.SlerpVec3(upOf(a), upOf(b), common.WorldForward, t).Normalize()
	s.PositionCorrection = common.LerpVec3(a.PositionCorrection, b.PositionCorrection, t)
	s.OrientationCorrection = mgl32.QuatSlerp(orIdentity(a.OrientationCorrection), orIdentity(b.OrientationCorrection), t)

	useLookAt := a.HasLookAt && b.HasLookAt &&
		!a.BlendHint.Has(IgnoreLookAtTarget) && !b.BlendHint.Has(IgnoreLookAtTarget)
	if useLookAt {
		s.ReferenceLookAt = common.LerpVec3(a.ReferenceLookAt, b.ReferenceLookAt, t)
		s.HasLookAt = true
	}

	s.RawPosition = blendPosition(a, b, s, t)
	s.RawOrientation = blendOrientation(a, b, s, t)
	return s
}

func blendLens(a, b CameraState, t float32) LensSettings {
	switch {
	case a.BlendHint.Has(NoLens) && !b.BlendHint.Has(NoLens):
		return b.Lens
	case b.BlendHint.Has(NoLens) && !a.BlendHint.Has(NoLens):
		return a.Lens
	}
	return LerpLens(a.Lens, b.Lens, t)
}

func blendPosition(a, b, s CameraState, t float32) mgl32.Vec3 {
	switch {
	case a.BlendHint.Has(NoPosition) && !b.BlendHint.Has(NoPosition):
		return b.RawPosition
	case b.BlendHint.Has(NoPosition) && !a.BlendHint.Has(NoPosition):
		return a.RawPosition
	}
	if s.HasLookAt {
		pivotA := a.RawPosition.Sub(a.ReferenceLookAt)
		pivotB := b.RawPosition.Sub(b.ReferenceLookAt)
		switch {
		case a.BlendHint.Has(SphericalPosition) && b.BlendHint.Has(SphericalPosition):
			return s.ReferenceLookAt.Add(common.SlerpVec3(pivotA, pivotB, s.ReferenceUp, t))
		case a.BlendHint.Has(CylindricalPosition) && b.BlendHint.Has(CylindricalPosition):
			up := s.ReferenceUp
			flatA := common.ProjectOnPlane(pivotA, up)
			flatB := common.ProjectOnPlane(pivotB, up)
			height := common.Lerp(pivotA.Dot(up), pivotB.Dot(up), t)
			return s.ReferenceLookAt.Add(common.SlerpVec3(flatA, flatB, up, t)).Add(up.Mul(height))
		}
	}
	return common.LerpVec3(a.RawPosition, b.RawPosition, t)
}

func blendOrientation(a, b, s CameraState, t float32) mgl32.Quat {
	qa, qb := orIdentity(a.RawOrientation), orIdentity(b.RawOrientation)
	switch {
	case a.BlendHint.Has(NoOrientation) && !b.BlendHint.Has(NoOrientation):
		return qb
	case b.BlendHint.Has(NoOrientation) && !a.BlendHint.Has(NoOrientation):
		return qa
	}
	if !s.HasLookAt {
		return mgl32.QuatSlerp(qa, qb, t)
	}

	dir := s.ReferenceLookAt.Sub(s.RawPosition)
	dirA := a.ReferenceLookAt.Sub(a.RawPosition)
	dirB := b.ReferenceLookAt.Sub(b.RawPosition)
	if dir.Len() < common.Epsilon || dirA.Len() < common.Epsilon || dirB.Len() < common.Epsilon {
		return mgl32.QuatSlerp(qa, qb, t)
	}

	// Keep each side's framing of its target and aim the blend at the blended target.
	offsetA := common.LookRotation(dirA, upOf(a)).Inverse().Mul(qa)
	offsetB := common.LookRotation(dirB, upOf(b)).Inverse().Mul(qb)
	offset := mgl32.QuatSlerp(offsetA.Normalize(), offsetB.Normalize(), t)
	return common.LookRotation(dir, s.ReferenceUp).Mul(offset).Normalize()
}

var blendHintNames = map[string]BlendHints{
	"no_position":           NoPosition,
	"no_orientation":        NoOrientation,
	"no_transform":          NoTransform,
	"no_lens":               NoLens,
	"spherical_position":    SphericalPosition,
	"cylindrical_position":  CylindricalPosition,
	"ignore_look_at":        IgnoreLookAtTarget,
	"ignore_look_at_target": IgnoreLookAtTarget,
}

// ParseBlendHints combines hint names such as "spherical_position".
func ParseBlendHints(names []string) (BlendHints, error) {
	var hints BlendHints
	for _, name := range names {
		h, ok := blendHintNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("camera: unknown blend hint %q", name)
		}
		hints |= h
	}
	return hints, nil
}

// ParseLensMode accepts "perspective", "orthographic" or "physical"; empty is perspective.
func ParseLensMode(name string) (LensMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "perspective":
		return LensPerspective, nil
	case "orthographic", "ortho":
		return LensOrthographic, nil
	case "physical":
		return LensPhysical, nil
	}
	return LensPerspective, fmt.Errorf("camera: unknown lens mode %q", name)
}
