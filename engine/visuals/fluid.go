package visuals

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	glbackend "github.com/belisario-afk/dwdw-sub001/engine/gfx/gl"
	"github.com/belisario-afk/dwdw-sub001/engine/palette"
	"github.com/belisario-afk/dwdw-sub001/engine/scene"
)

const maxFluidIters = 128

// Fluid covers the surface with a domain-warped noise field accumulated over
// an iteration loop bounded by the fluidIters macro.
type Fluid struct {
	res  *glbackend.ResourceSet
	prog *glbackend.Program
	quad *glbackend.Mesh

	t     float64
	iters int32
	pal   palette.Palette
}

func (s *Fluid) Name() string { return "Fluid" }

func (s *Fluid) Init(b *scene.BuildContext) error {
	s.res = glbackend.NewResourceSet()
	prog, err := s.res.Program(fullscreenVS, fluidFS)
	if err != nil {
		s.res.Release()
		return err
	}
	s.prog = prog
	s.quad = glbackend.NewFullscreenQuad()
	s.res.Track(s.quad)
	s.pal = b.Env.Palette()
	s.iters = iterCap(b.Env.Macro("fluidIters", 35), 1, maxFluidIters)
	return nil
}

func (s *Fluid) Update(dt float64, env scene.Env) {
	s.t += dt * timeScale(env)
	s.pal = env.Palette()
	s.iters = iterCap(env.Macro("fluidIters", 35), 1, maxFluidIters)
}

func (s *Fluid) Render(f *scene.Frame) {
	a, b, c := s.pal.Dominant, s.pal.Secondary, s.pal.Color(3)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	s.prog.Use()
	s.prog.SetFloat("uTime", float32(s.t))
	s.prog.SetFloat("uWeight", f.Weight)
	s.prog.SetVec2("uRes", float32(f.Width), float32(f.Height))
	s.prog.SetInt("uIters", s.iters)
	s.prog.SetFloat("uGlow", flashLimit(f.Env, float32(f.Env.Post().Bloom)))
	s.prog.SetVec3("uColorA", a[0], a[1], a[2])
	s.prog.SetVec3("uColorB", b[0], b[1], b[2])
	s.prog.SetVec3("uColorC", c[0], c[1], c[2])
	s.quad.Draw()

	gl.Disable(gl.BLEND)
}

func (s *Fluid) SetPalette(p palette.Palette) { s.pal = p }

func (s *Fluid) Dispose() {
	if s.res != nil {
		s.res.Release()
	}
}

// fullscreenVS is shared by every quad-covering scene.
const fullscreenVS = `
#version 330 core
layout(location=0) in vec2 aPos;
out vec2 vUV;
void main() {
    vUV = aPos * 0.5 + 0.5;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const fluidFS = `
#version 330 core
in vec2 vUV;

uniform float uTime;
uniform float uWeight;
uniform vec2 uRes;
uniform int uIters;
uniform float uGlow;
uniform vec3 uColorA;
uniform vec3 uColorB;
uniform vec3 uColorC;

out vec4 FragColor;

float hash(vec2 p) {
    return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453);
}

float noise(vec2 p) {
    vec2 i = floor(p);
    vec2 f = fract(p);
    f = f * f * (3.0 - 2.0 * f);
    return mix(
        mix(hash(i), hash(i + vec2(1, 0)), f.x),
        mix(hash(i + vec2(0, 1)), hash(i + vec2(1, 1)), f.x),
        f.y);
}

void main() {
    vec2 uv = vUV;
    uv.x *= uRes.x / max(uRes.y, 1.0);

    vec2 p = uv * 3.0;
    float acc = 0.0;
    float amp = 0.5;
    for (int i = 0; i < 128; i++) {
        if (i >= uIters) break;
        // warp the domain by the field itself
        p += 0.12 * vec2(
            noise(p + vec2(uTime * 0.13, 0.0)) - 0.5,
            noise(p + vec2(0.0, uTime * 0.11)) - 0.5);
        acc += amp * noise(p + uTime * 0.05);
        amp *= 0.93;
    }
    acc = acc / max(float(uIters) * 0.12, 1.0);

    vec3 col = mix(uColorA, uColorB, smoothstep(0.2, 0.8, acc));
    col = mix(col, uColorC, acc * acc * uGlow);
    FragColor = vec4(col, uWeight);
}
`
