package animation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// twoBoneSkeleton is a root at the origin with one child offset +2 on Y.
func twoBoneSkeleton(t *testing.T) *Skeleton {
	t.Helper()
	s, err := NewSkeleton([]Joint{
		{Name: "root", Parent: NoParent, BindTransform: mgl32.Ident4()},
		{Name: "arm", Parent: 0, BindTransform: mgl32.Translate3D(0, 2, 0)},
	})
	if err != nil {
		t.Fatalf("building skeleton: %v", err)
	}
	return s
}

func TestNewSkeletonRejectsBadParentOrder(t *testing.T) {
	_, err := NewSkeleton([]Joint{
		{Name: "a", Parent: 1, BindTransform: mgl32.Ident4()},
		{Name: "b", Parent: NoParent, BindTransform: mgl32.Ident4()},
	})
	if err == nil {
		t.Fatal("expected error for child preceding parent")
	}
}

func TestNewSkeletonRejectsPaletteOverflow(t *testing.T) {
	joints := make([]Joint, MaxJoints+1)
	for i := range joints {
		joints[i] = Joint{Parent: i - 1, BindTransform: mgl32.Ident4()}
	}
	if _, err := NewSkeleton(joints); err == nil {
		t.Fatal("expected error for too many joints")
	}
}

func TestBindPosePaletteIsIdentity(t *testing.T) {
	s := twoBoneSkeleton(t)
	palette := s.Palette()
	for i := 0; i < len(s.Joints); i++ {
		if !palette[i].ApproxEqualThreshold(mgl32.Ident4(), 1e-5) {
			t.Errorf("joint %d bind-pose palette entry is not identity:\n%v", i, palette[i])
		}
	}
	for i := len(s.Joints); i < MaxJoints; i++ {
		if palette[i] != mgl32.Ident4() {
			t.Errorf("unused slot %d must be identity", i)
		}
	}
}

func TestApplyPosePropagatesParentTransform(t *testing.T) {
	s := twoBoneSkeleton(t)
	locals := []mgl32.Mat4{
		mgl32.Translate3D(5, 0, 0),
		mgl32.Translate3D(0, 2, 0),
	}
	s.ApplyPose(locals)

	armPos := s.Joints[1].Animated.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	want := mgl32.Vec4{5, 2, 0, 1}
	for i := range want {
		if !mgl32.FloatEqualThreshold(armPos[i], want[i], 1e-5) {
			t.Fatalf("arm animated position %v, want %v", armPos, want)
		}
	}
}

func bindKeyframe(time float32) Keyframe {
	return Keyframe{
		Time: time,
		Joints: []JointTransform{
			{Rotation: mgl32.QuatIdent()},
			{Position: mgl32.Vec3{0, 2, 0}, Rotation: mgl32.QuatIdent()},
		},
	}
}

func TestAnimatorInterpolatesBetweenKeyframes(t *testing.T) {
	s := twoBoneSkeleton(t)
	start := bindKeyframe(0)
	end := bindKeyframe(1)
	end.Joints[0].Position = mgl32.Vec3{10, 0, 0}

	a, err := NewAnimator(s, &Animation{Name: "slide", Length: 1, Keyframes: []Keyframe{start, end}})
	if err != nil {
		t.Fatalf("building animator: %v", err)
	}

	a.Update(0.5)
	rootPos := s.Joints[0].Animated.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !mgl32.FloatEqualThreshold(rootPos.X(), 5, 1e-4) {
		t.Errorf("halfway root X = %v, want 5", rootPos.X())
	}
}

func TestAnimatorWrapsAtAnimationLength(t *testing.T) {
	s := twoBoneSkeleton(t)
	a, err := NewAnimator(s, &Animation{Name: "loop", Length: 1, Keyframes: []Keyframe{bindKeyframe(0), bindKeyframe(1)}})
	if err != nil {
		t.Fatalf("building animator: %v", err)
	}
	a.Update(2.75)
	if a.time < 0 || a.time >= 1 {
		t.Errorf("clock %v escaped [0, length)", a.time)
	}
}

func TestAnimatorRejectsJointCountMismatch(t *testing.T) {
	s := twoBoneSkeleton(t)
	bad := Keyframe{Time: 0, Joints: []JointTransform{{Rotation: mgl32.QuatIdent()}}}
	_, err := NewAnimator(s, &Animation{Name: "bad", Length: 1, Keyframes: []Keyframe{bad, bad}})
	if err == nil {
		t.Fatal("expected error for keyframe joint count mismatch")
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	a := JointTransform{Position: mgl32.Vec3{0, 0, 0}, Rotation: mgl32.QuatIdent()}
	b := JointTransform{Position: mgl32.Vec3{4, 0, 0}, Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})}

	if got := interpolate(a, b, 0); !got.Position.ApproxEqual(a.Position) {
		t.Errorf("t=0 position %v, want %v", got.Position, a.Position)
	}
	if got := interpolate(a, b, 1); !got.Position.ApproxEqual(b.Position) {
		t.Errorf("t=1 position %v, want %v", got.Position, b.Position)
	}
}
