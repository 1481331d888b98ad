package glbackend

// Releaser is any GL-resident object with deterministic teardown.
type Releaser interface{ Release() }

// ResourceSet scopes GL resources to one owner (a scene instance). Everything
// tracked is released in reverse creation order exactly once; the set refuses
// new work after release so a disposed owner cannot leak fresh handles.
type ResourceSet struct {
	res      []Releaser
	released bool
}

func NewResourceSet() *ResourceSet { return &ResourceSet{} }

// Track registers r for release. No-op on a released set.
func (s *ResourceSet) Track(r Releaser) {
	if s.released || r == nil {
		return
	}
	s.res = append(s.res, r)
}

// Program compiles, links and tracks a shader program.
func (s *ResourceSet) Program(vsSrc, fsSrc string) (*Program, error) {
	p, err := NewProgram(vsSrc, fsSrc)
	if err != nil {
		return nil, err
	}
	s.Track(p)
	return p, nil
}

// Mesh uploads and tracks a mesh.
func (s *ResourceSet) Mesh(verts []float32, indices []uint32, stride int, attribs []VertexAttrib, mode uint32) *Mesh {
	m := NewMesh(verts, indices, stride, attribs, mode)
	s.Track(m)
	return m
}

// Release tears everything down in reverse order. Subsequent calls no-op.
func (s *ResourceSet) Release() {
	if s.released {
		return
	}
	s.released = true
	for i := len(s.res) - 1; i >= 0; i-- {
		s.res[i].Release()
	}
	s.res = nil
}

func (s *ResourceSet) Released() bool { return s.released }
