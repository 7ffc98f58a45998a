package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon below which directions and durations are treated as zero.
const Epsilon = 1e-4

var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldForward = mgl32.Vec3{0, 0, -1}
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

func LerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return mgl32.Vec2{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t)}
}

// SlerpVec3 rotates a toward b on the unit sphere and lerps the length.
// Parallel or zero inputs fall back to a plain lerp. Opposite inputs have no
// unique great circle, so they rotate about axis.
func SlerpVec3(a, b, axis mgl32.Vec3, t float32) mgl32.Vec3 {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return LerpVec3(a, b, t)
	}
	na, nb := a.Mul(1/la), b.Mul(1/lb)
	dot := mgl32.Clamp(na.Dot(nb), -1, 1)
	if dot > 1-Epsilon {
		return LerpVec3(a, b, t)
	}
	var rel mgl32.Vec3
	if dot < -1+Epsilon {
		rel = Perpendicular(na, axis)
	} else {
		rel = nb.Sub(na.Mul(dot)).Normalize()
	}
	theta := float32(math.Acos(float64(dot))) * t
	dir := na.Mul(float32(math.Cos(float64(theta)))).Add(rel.Mul(float32(math.Sin(float64(theta)))))
	return dir.Mul(Lerp(la, lb, t))
}

// Perpendicular returns a unit vector perpendicular to v, and to axis when
// axis is not parallel to v.
func Perpendicular(v, axis mgl32.Vec3) mgl32.Vec3 {
	for _, c := range []mgl32.Vec3{axis, {1, 0, 0}, {0, 0, 1}} {
		if r := c.Cross(v); r.Len() > Epsilon {
			return r.Normalize()
		}
	}
	return mgl32.Vec3{0, 1, 0}
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	l := n.Len()
	if l < Epsilon {
		return v
	}
	n = n.Mul(1 / l)
	return v.Sub(n.Mul(v.Dot(n)))
}

// LookRotation returns the rotation taking WorldForward to forward with the
// camera's up as close to up as possible. A zero forward yields identity.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	if forward.Len() < Epsilon {
		return mgl32.QuatIdent()
	}
	f := forward.Normalize()
	r := f.Cross(up)
	if r.Len() < Epsilon {
		// looking straight along up
		return mgl32.QuatBetweenVectors(WorldForward, f)
	}
	r = r.Normalize()
	u := r.Cross(f)
	back := f.Mul(-1)
	m := mgl32.Mat4FromCols(r.Vec4(0), u.Vec4(0), back.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(m).Normalize()
}
