package animation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// JointTransform is one joint's local pose in a keyframe, stored decomposed
// so interpolation stays well-behaved.
type JointTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Matrix rebuilds the local transform matrix.
func (jt JointTransform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(jt.Position.X(), jt.Position.Y(), jt.Position.Z()).
		Mul4(jt.Rotation.Normalize().Mat4())
}

// interpolate blends two joint poses: positions lerp, rotations slerp.
func interpolate(a, b JointTransform, t float32) JointTransform {
	return JointTransform{
		Position: a.Position.Mul(1 - t).Add(b.Position.Mul(t)),
		Rotation: mgl32.QuatSlerp(a.Rotation.Normalize(), b.Rotation.Normalize(), t),
	}
}

// Keyframe samples every joint's local pose at one point in time, in arena
// order.
type Keyframe struct {
	Time   float32 // seconds from animation start
	Joints []JointTransform
}

// Animation is an ordered keyframe sequence. Keyframes must be sorted by
// time and each must cover every skeleton joint.
type Animation struct {
	Name      string
	Length    float32 // seconds
	Keyframes []Keyframe
}

// Animator drives one skeleton through a looping animation.
type Animator struct {
	Skeleton  *Skeleton
	animation *Animation
	time      float32
	locals    []mgl32.Mat4
}

// NewAnimator validates the animation against the skeleton and returns an
// animator positioned at the first keyframe.
func NewAnimator(s *Skeleton, anim *Animation) (*Animator, error) {
	if len(anim.Keyframes) < 2 {
		return nil, fmt.Errorf("animation %q needs at least two keyframes", anim.Name)
	}
	for i, kf := range anim.Keyframes {
		if len(kf.Joints) != len(s.Joints) {
			return nil, fmt.Errorf("animation %q keyframe %d poses %d joints, skeleton has %d",
				anim.Name, i, len(kf.Joints), len(s.Joints))
		}
		if i > 0 && kf.Time < anim.Keyframes[i-1].Time {
			return nil, fmt.Errorf("animation %q keyframes out of order at %d", anim.Name, i)
		}
	}
	a := &Animator{
		Skeleton:  s,
		animation: anim,
		locals:    make([]mgl32.Mat4, len(s.Joints)),
	}
	a.applyAt(0)
	return a, nil
}

// Update advances the animation clock by dt seconds, wrapping at the
// animation length, and re-poses the skeleton.
func (a *Animator) Update(dt float32) {
	a.time += dt
	for a.time >= a.animation.Length {
		a.time -= a.animation.Length
	}
	a.applyAt(a.time)
}

func (a *Animator) applyAt(t float32) {
	prev, next := a.surroundingKeyframes(t)
	span := next.Time - prev.Time
	var progress float32
	if span > 0 {
		progress = (t - prev.Time) / span
	}
	for i := range a.locals {
		a.locals[i] = interpolate(prev.Joints[i], next.Joints[i], progress).Matrix()
	}
	a.Skeleton.ApplyPose(a.locals)
}

// surroundingKeyframes finds the keyframe pair bracketing time t. Before the
// first keyframe both ends are the first; past the last, both are the last.
func (a *Animator) surroundingKeyframes(t float32) (prev, next Keyframe) {
	frames := a.animation.Keyframes
	prev, next = frames[0], frames[0]
	for _, kf := range frames[1:] {
		next = kf
		if kf.Time > t {
			return prev, next
		}
		prev = kf
	}
	return prev, next
}
