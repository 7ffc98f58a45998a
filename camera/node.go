package camera

import (
	"fmt"
	"strings"

	"github.com/milk9111/camrig/common"
)

// blendNode is either a leafNode or a mixNode.
type blendNode interface {
	isBlendNode()
}

// leafNode is a single live camera.
type leafNode struct {
	cam Camera
}

// mixNode blends from an outgoing node into a newly activated camera. Only
// from nests; to is always a plain camera.
type mixNode struct {
	from    blendNode
	to      Camera
	def     BlendDefinition
	elapsed float32
	// interrupted is set once another blend took this node as its from. An
	// interrupted node never reports BlendFinished, even if pruning makes it
	// the root again.
	interrupted bool
}

func (*leafNode) isBlendNode() {}
func (*mixNode) isBlendNode()  {}

func (m *mixNode) progress() float32 {
	d := m.def.BlendTime()
	if d <= 0 {
		return 1
	}
	return common.Clamp01(m.elapsed / d)
}

func (m *mixNode) complete() bool {
	return m.elapsed >= m.def.BlendTime()
}

// evaluate returns the blended state of n.
func evaluate(n blendNode) CameraState {
	switch n := n.(type) {
	case *leafNode:
		return n.cam.State()
	case *mixNode:
		return Lerp(evaluate(n.from), n.to.State(), n.def.Weight(n.progress()))
	}
	return NewCameraState()
}

// advance moves n and every nested node forward by dt. A negative dt
// finishes every blend.
func advance(n blendNode, dt float32) {
	m, ok := n.(*mixNode)
	if !ok {
		return
	}
	if dt < 0 {
		m.elapsed = m.def.BlendTime()
	} else {
		m.elapsed += dt
	}
	advance(m.from, dt)
}

// collapseComplete replaces every complete mixNode in n with a leaf of its
// incoming camera. Used for nodes below the root, which were interrupted.
func collapseComplete(n blendNode) blendNode {
	m, ok := n.(*mixNode)
	if !ok {
		return n
	}
	if m.complete() {
		return &leafNode{cam: m.to}
	}
	m.from = collapseComplete(m.from)
	return m
}

// prune drops cameras that are no longer valid, collapsing each blend toward
// whichever side is still valid. Returns nil when nothing valid remains.
func prune(n blendNode) blendNode {
	switch n := n.(type) {
	case *leafNode:
		if !isValid(n.cam) {
			return nil
		}
		return n
	case *mixNode:
		from := prune(n.from)
		if !isValid(n.to) {
			return from
		}
		if from == nil {
			return &leafNode{cam: n.to}
		}
		n.from = from
		return n
	}
	return nil
}

// activeOf is the camera the node is resolving toward.
func activeOf(n blendNode) Camera {
	switch n := n.(type) {
	case *leafNode:
		return n.cam
	case *mixNode:
		return n.to
	}
	return nil
}

// appendLive appends every camera in n, deepest outgoing first, without duplicates.
func appendLive(dst []Camera, n blendNode) []Camera {
	switch n := n.(type) {
	case *leafNode:
		if !containsCamera(dst, n.cam) {
			dst = append(dst, n.cam)
		}
	case *mixNode:
		dst = appendLive(dst, n.from)
		if !containsCamera(dst, n.to) {
			dst = append(dst, n.to)
		}
	}
	return dst
}

func nodeContains(n blendNode, cam Camera) bool {
	switch n := n.(type) {
	case *leafNode:
		return n.cam == cam
	case *mixNode:
		return n.to == cam || nodeContains(n.from, cam)
	}
	return false
}

func describe(sb *strings.Builder, n blendNode) {
	switch n := n.(type) {
	case *leafNode:
		sb.WriteString(cameraName(n.cam))
	case *mixNode:
		if _, nested := n.from.(*mixNode); nested {
			sb.WriteByte('(')
			describe(sb, n.from)
			sb.WriteByte(')')
		} else {
			describe(sb, n.from)
		}
		fmt.Fprintf(sb, " %d%% -> %s", int(n.progress()*100), cameraName(n.to))
	}
}
