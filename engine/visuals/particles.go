package visuals

import (
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"

	glbackend "github.com/belisario-afk/dwdw-sub001/engine/gfx/gl"
	"github.com/belisario-afk/dwdw-sub001/engine/palette"
	"github.com/belisario-afk/dwdw-sub001/engine/scene"
)

const minParticles = 10000

// Particles draws N point sprites whose positions are domain-warped
// sinusoids of a per-point seed. Additive blending, radial alpha falloff.
type Particles struct {
	res  *glbackend.ResourceSet
	prog *glbackend.Program
	mesh *glbackend.Mesh // owned outside res: rebuilt when the count macro moves

	t     float64
	count int
	pal   palette.Palette
}

func (s *Particles) Name() string { return "Particles" }

// particleCount derives the sprite count from the particleMillions macro.
func particleCount(millions float64) int {
	n := int(millions * 1e6)
	if n < minParticles {
		n = minParticles
	}
	return n
}

// particleSeeds produces one deterministic pseudo-random seed per point.
func particleSeeds(n int) []float32 {
	seeds := make([]float32, n)
	for i := range seeds {
		// fract(sin(i)*43758.5453), the classic shader hash, computed once
		// on the CPU so the buffer is stable across frames.
		v := math.Sin(float64(i)+1) * 43758.5453
		seeds[i] = float32(v - math.Floor(v))
	}
	return seeds
}

func (s *Particles) Init(b *scene.BuildContext) error {
	s.res = glbackend.NewResourceSet()
	prog, err := s.res.Program(particlesVS, particlesFS)
	if err != nil {
		s.res.Release()
		return err
	}
	s.prog = prog
	s.pal = b.Env.Palette()
	s.rebuild(particleCount(b.Env.Macro("particleMillions", 0.5)))
	return nil
}

func (s *Particles) rebuild(count int) {
	if s.mesh != nil {
		s.mesh.Release()
	}
	s.count = count
	s.mesh = glbackend.NewMesh(particleSeeds(count), nil, 1*4, []glbackend.VertexAttrib{
		{Location: 0, Size: 1, Offset: 0},
	}, gl.POINTS)
}

func (s *Particles) Update(dt float64, env scene.Env) {
	s.t += dt * timeScale(env)
	s.pal = env.Palette()
	if want := particleCount(env.Macro("particleMillions", 0.5)); want != s.count {
		s.rebuild(want)
	}
}

func (s *Particles) Render(f *scene.Frame) {
	a := s.pal.Dominant
	b := s.pal.Secondary

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE) // additive
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	s.prog.Use()
	s.prog.SetMat4("uVP", f.Camera.VP())
	s.prog.SetFloat("uTime", float32(s.t))
	s.prog.SetFloat("uWeight", f.Weight)
	s.prog.SetFloat("uIntensity", flashLimit(f.Env, float32(f.Env.Macro("intensity", 0.7))))
	s.prog.SetVec3("uColorA", a[0], a[1], a[2])
	s.prog.SetVec3("uColorB", b[0], b[1], b[2])
	s.mesh.Draw()

	gl.Disable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.BLEND)
}

func (s *Particles) SetPalette(p palette.Palette) { s.pal = p }

// OnPhrase nudges the animation clock so the field visibly re-seeds on bar
// boundaries.
func (s *Particles) OnPhrase(bar int, tempo float64) {
	s.t += float64(bar%4) * 0.1
}

func (s *Particles) Dispose() {
	if s.mesh != nil {
		s.mesh.Release()
		s.mesh = nil
	}
	if s.res != nil {
		s.res.Release()
	}
}

const particlesVS = `
#version 330 core
layout(location=0) in float aSeed;

uniform mat4 uVP;
uniform float uTime;
uniform float uIntensity;

out float vSeed;

vec3 warp(float seed, float t) {
    float a = seed * 6.28318530718;
    float r = 0.5 + 1.5 * fract(seed * 13.7);
    vec3 p = vec3(
        cos(a * 3.0 + t * 0.31) * r,
        sin(a * 5.0 + t * 0.23) * r * 0.75,
        sin(a * 2.0 - t * 0.17) * r
    );
    // domain warp: feed the position back through a second sinusoid
    p += 0.35 * vec3(
        sin(p.y * 2.7 + t * 0.5),
        sin(p.z * 3.1 + t * 0.4),
        sin(p.x * 2.3 + t * 0.6)
    );
    return p;
}

void main() {
    vSeed = aSeed;
    vec3 pos = warp(aSeed, uTime);
    gl_Position = uVP * vec4(pos, 1.0);
    float size = 2.0 + 6.0 * uIntensity * fract(aSeed * 7.31);
    gl_PointSize = size / max(gl_Position.w, 0.1);
}
`

const particlesFS = `
#version 330 core
in float vSeed;

uniform float uWeight;
uniform vec3 uColorA;
uniform vec3 uColorB;

out vec4 FragColor;

void main() {
    vec2 d = gl_PointCoord - vec2(0.5);
    float r2 = dot(d, d);
    if (r2 > 0.25) discard;
    float falloff = 1.0 - smoothstep(0.0, 0.25, r2); // radial alpha
    vec3 col = mix(uColorA, uColorB, fract(vSeed * 7.0));
    FragColor = vec4(col, falloff * uWeight);
}
`
