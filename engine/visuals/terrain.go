package visuals

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	glbackend "github.com/belisario-afk/dwdw-sub001/engine/gfx/gl"
	"github.com/belisario-afk/dwdw-sub001/engine/palette"
	"github.com/belisario-afk/dwdw-sub001/engine/scene"
)

// terrainGridSize is fixed; the variant has no macro bound.
const terrainGridSize = 256

// Terrain displaces a 256x256 grid in the vertex shader: height is a 2D
// sine/cosine composition of position and time, color a lerp by height.
type Terrain struct {
	res  *glbackend.ResourceSet
	prog *glbackend.Program
	grid *glbackend.Mesh

	t   float64
	pal palette.Palette
}

func (s *Terrain) Name() string { return "Terrain" }

// terrainVertices lays an n x n grid over [-1,1]^2 in the xz plane (y comes
// from the shader).
func terrainVertices(n int) []float32 {
	verts := make([]float32, 0, n*n*2)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			verts = append(verts,
				float32(x)/float32(n-1)*2-1,
				float32(z)/float32(n-1)*2-1,
			)
		}
	}
	return verts
}

// terrainIndices triangulates the grid, two triangles per cell.
func terrainIndices(n int) []uint32 {
	inds := make([]uint32, 0, (n-1)*(n-1)*6)
	for z := 0; z < n-1; z++ {
		for x := 0; x < n-1; x++ {
			i := uint32(z*n + x)
			inds = append(inds,
				i, i+uint32(n), i+1,
				i+1, i+uint32(n), i+uint32(n)+1,
			)
		}
	}
	return inds
}

func (s *Terrain) Init(b *scene.BuildContext) error {
	s.res = glbackend.NewResourceSet()
	prog, err := s.res.Program(terrainVS, terrainFS)
	if err != nil {
		s.res.Release()
		return err
	}
	s.prog = prog
	s.grid = s.res.Mesh(
		terrainVertices(terrainGridSize),
		terrainIndices(terrainGridSize),
		2*4,
		[]glbackend.VertexAttrib{{Location: 0, Size: 2, Offset: 0}},
		gl.TRIANGLES,
	)
	s.pal = b.Env.Palette()
	return nil
}

func (s *Terrain) Update(dt float64, env scene.Env) {
	s.t += dt * timeScale(env)
	s.pal = env.Palette()
}

func (s *Terrain) Render(f *scene.Frame) {
	low, high := s.pal.Dominant, s.pal.Secondary

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)

	s.prog.Use()
	s.prog.SetMat4("uVP", f.Camera.VP())
	s.prog.SetFloat("uTime", float32(s.t))
	s.prog.SetFloat("uWeight", f.Weight)
	s.prog.SetFloat("uIntensity", float32(f.Env.Macro("intensity", 0.7)))
	s.prog.SetVec3("uColorLow", low[0], low[1], low[2])
	s.prog.SetVec3("uColorHigh", high[0], high[1], high[2])
	s.grid.Draw()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
}

func (s *Terrain) SetPalette(p palette.Palette) { s.pal = p }

func (s *Terrain) Dispose() {
	if s.res != nil {
		s.res.Release()
	}
}

const terrainVS = `
#version 330 core
layout(location=0) in vec2 aGrid;

uniform mat4 uVP;
uniform float uTime;
uniform float uIntensity;

out float vHeight;

void main() {
    vec2 p = aGrid * 4.0;
    float h = 0.0;
    h += 0.30 * sin(p.x * 1.3 + uTime * 0.70);
    h += 0.25 * cos(p.y * 1.7 + uTime * 0.55);
    h += 0.15 * sin((p.x + p.y) * 2.3 - uTime * 0.90);
    h += 0.10 * cos(p.x * 3.1) * sin(p.y * 2.9 + uTime * 0.40);
    h *= 0.5 + uIntensity;
    vHeight = h;
    gl_Position = uVP * vec4(aGrid.x * 4.0, h - 1.0, aGrid.y * 4.0 - 2.0, 1.0);
}
`

const terrainFS = `
#version 330 core
in float vHeight;

uniform float uWeight;
uniform vec3 uColorLow;
uniform vec3 uColorHigh;

out vec4 FragColor;

void main() {
    float t = clamp(vHeight * 0.7 + 0.5, 0.0, 1.0);
    vec3 col = mix(uColorLow, uColorHigh, t);
    FragColor = vec4(col, uWeight);
}
`
