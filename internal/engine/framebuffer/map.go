package framebuffer

import "fmt"

// The render passes address their targets by these fixed names. A pass
// asking for a name that was never registered is a wiring bug, not a
// runtime condition.
const (
	Reflection         = "ReflectionFBO"
	Refraction         = "RefractionFBO"
	ShadowMap          = "ShadowMapFBO"
	CameraMultisampled = "CameraMultisampledFBO"
)

// Map is the named framebuffer registry.
type Map struct {
	objects map[string]*Object
}

// NewMap returns an empty registry.
func NewMap() *Map {
	return &Map{objects: make(map[string]*Object)}
}

// Register adds a framebuffer under a name, replacing nothing: registering
// the same name twice panics.
func (m *Map) Register(name string, f *Object) {
	if _, exists := m.objects[name]; exists {
		panic(fmt.Sprintf("framebuffer %q registered twice", name))
	}
	m.objects[name] = f
}

// Get returns the framebuffer registered under name, panicking when it is
// missing.
func (m *Map) Get(name string) *Object {
	f, ok := m.objects[name]
	if !ok {
		panic(fmt.Sprintf("framebuffer %q not registered; render passes require it", name))
	}
	return f
}

// Destroy releases every registered framebuffer.
func (m *Map) Destroy() {
	for name, f := range m.objects {
		f.Destroy()
		delete(m.objects, name)
	}
}
