package framebuffer

import "testing"

func TestGetMissingNamePanics(t *testing.T) {
	m := NewMap()
	defer func() {
		if recover() == nil {
			t.Error("expected panic looking up an unregistered framebuffer")
		}
	}()
	m.Get(ShadowMap)
}

func TestRegisterAndGet(t *testing.T) {
	m := NewMap()
	f := &Object{Width: 64, Height: 64}
	m.Register(Reflection, f)
	if got := m.Get(Reflection); got != f {
		t.Errorf("Get returned %p, want %p", got, f)
	}
}

func TestDoubleRegisterPanics(t *testing.T) {
	m := NewMap()
	m.Register(Refraction, &Object{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic registering the same name twice")
		}
	}()
	m.Register(Refraction, &Object{})
}
