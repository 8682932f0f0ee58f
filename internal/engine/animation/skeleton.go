// Package animation implements keyframed skeletal animation: a flat joint
// arena, a pose sampler and the joint-matrix palette fed to the skinned
// shader.
package animation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxJoints is the size of the joint-matrix palette in the skinned shader.
const MaxJoints = 50

// NoParent marks a root joint.
const NoParent = -1

// Joint is one bone of the skeleton. Joints live in a flat arena and refer
// to each other by index; Parent must always be a lower index than the joint
// itself so a single forward pass visits parents before children.
type Joint struct {
	Name   string
	Parent int
	// BindTransform is the joint's transform relative to its parent in the
	// bind pose.
	BindTransform mgl32.Mat4
	// InverseBind is the inverse of the joint's model-space bind transform,
	// computed once by NewSkeleton.
	InverseBind mgl32.Mat4
	// Animated is the joint's current model-space transform, updated by the
	// animator every frame.
	Animated mgl32.Mat4
}

// Skeleton is the joint arena plus the palette scratch buffer.
type Skeleton struct {
	Joints []Joint
}

// NewSkeleton validates the arena ordering and computes every joint's
// inverse bind transform in one parent-before-child pass.
func NewSkeleton(joints []Joint) (*Skeleton, error) {
	if len(joints) == 0 {
		return nil, fmt.Errorf("skeleton needs at least one joint")
	}
	if len(joints) > MaxJoints {
		return nil, fmt.Errorf("skeleton has %d joints, shader palette holds %d", len(joints), MaxJoints)
	}

	s := &Skeleton{Joints: make([]Joint, len(joints))}
	copy(s.Joints, joints)

	modelBind := make([]mgl32.Mat4, len(joints))
	for i := range s.Joints {
		j := &s.Joints[i]
		if j.Parent >= i {
			return nil, fmt.Errorf("joint %d (%s) has parent %d; parents must precede children", i, j.Name, j.Parent)
		}
		if j.Parent == NoParent {
			modelBind[i] = j.BindTransform
		} else {
			modelBind[i] = modelBind[j.Parent].Mul4(j.BindTransform)
		}
		j.InverseBind = modelBind[i].Inv()
		j.Animated = modelBind[i]
	}
	return s, nil
}

// ApplyPose converts per-joint local transforms into model-space animated
// transforms. locals must have one entry per joint, relative to the parent.
func (s *Skeleton) ApplyPose(locals []mgl32.Mat4) {
	for i := range s.Joints {
		j := &s.Joints[i]
		if j.Parent == NoParent {
			j.Animated = locals[i]
		} else {
			j.Animated = s.Joints[j.Parent].Animated.Mul4(locals[i])
		}
	}
}

// Palette fills out the shader joint matrices: animated transform times
// inverse bind per joint, identity in unused slots.
func (s *Skeleton) Palette() [MaxJoints]mgl32.Mat4 {
	var palette [MaxJoints]mgl32.Mat4
	for i := range palette {
		if i < len(s.Joints) {
			palette[i] = s.Joints[i].Animated.Mul4(s.Joints[i].InverseBind)
		} else {
			palette[i] = mgl32.Ident4()
		}
	}
	return palette
}
