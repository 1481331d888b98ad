package visuals

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	glbackend "github.com/belisario-afk/dwdw-sub001/engine/gfx/gl"
	"github.com/belisario-afk/dwdw-sub001/engine/palette"
	"github.com/belisario-afk/dwdw-sub001/engine/scene"
)

const maxRaymarchSteps = 1024

// Tunnel raymarches each pixel along a moving camera axis against an implicit
// distance field; glow accumulates from proximity to the field's zero set.
type Tunnel struct {
	res  *glbackend.ResourceSet
	prog *glbackend.Program
	quad *glbackend.Mesh

	t     float64
	steps int32
	pal   palette.Palette
}

func (s *Tunnel) Name() string { return "Tunnel" }

func (s *Tunnel) Init(b *scene.BuildContext) error {
	s.res = glbackend.NewResourceSet()
	prog, err := s.res.Program(fullscreenVS, tunnelFS)
	if err != nil {
		s.res.Release()
		return err
	}
	s.prog = prog
	s.quad = glbackend.NewFullscreenQuad()
	s.res.Track(s.quad)
	s.pal = b.Env.Palette()
	s.steps = iterCap(b.Env.Macro("raymarchSteps", 512), 16, maxRaymarchSteps)
	return nil
}

func (s *Tunnel) Update(dt float64, env scene.Env) {
	s.t += dt * timeScale(env)
	s.pal = env.Palette()
	s.steps = iterCap(env.Macro("raymarchSteps", 512), 16, maxRaymarchSteps)
}

func (s *Tunnel) Render(f *scene.Frame) {
	a, b := s.pal.Dominant, s.pal.Color(5)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	s.prog.Use()
	s.prog.SetFloat("uTime", float32(s.t))
	s.prog.SetFloat("uWeight", f.Weight)
	s.prog.SetVec2("uRes", float32(f.Width), float32(f.Height))
	s.prog.SetInt("uSteps", s.steps)
	s.prog.SetFloat("uGlow", flashLimit(f.Env, float32(f.Env.Post().Bloom)))
	s.prog.SetVec3("uColorA", a[0], a[1], a[2])
	s.prog.SetVec3("uColorB", b[0], b[1], b[2])
	s.quad.Draw()

	gl.Disable(gl.BLEND)
}

func (s *Tunnel) SetPalette(p palette.Palette) { s.pal = p }

// OnPhrase kicks the camera forward on bar boundaries.
func (s *Tunnel) OnPhrase(bar int, tempo float64) {
	if tempo > 0 {
		s.t += 240 / tempo * 0.05
	}
}

func (s *Tunnel) Dispose() {
	if s.res != nil {
		s.res.Release()
	}
}

const tunnelFS = `
#version 330 core
in vec2 vUV;

uniform float uTime;
uniform float uWeight;
uniform vec2 uRes;
uniform int uSteps;
uniform float uGlow;
uniform vec3 uColorA;
uniform vec3 uColorB;

out vec4 FragColor;

// signed distance to a twisting tube around the z axis
float field(vec3 p) {
    vec2 off = vec2(
        sin(p.z * 0.5 + uTime * 0.7),
        cos(p.z * 0.4 + uTime * 0.5)) * 0.6;
    float tube = 1.2 - length(p.xy - off);
    float ribs = 0.08 * sin(p.z * 6.0 - uTime * 2.0);
    return tube + ribs;
}

void main() {
    vec2 uv = vUV * 2.0 - 1.0;
    uv.x *= uRes.x / max(uRes.y, 1.0);

    vec3 ro = vec3(0.0, 0.0, uTime * 1.5); // camera slides down the axis
    vec3 rd = normalize(vec3(uv, 1.4));

    float glow = 0.0;
    float t = 0.0;
    for (int i = 0; i < 1024; i++) {
        if (i >= uSteps) break;
        vec3 p = ro + rd * t;
        float d = field(p);
        glow += uGlow * 0.8 / (1.0 + 40.0 * d * d); // proximity to the zero set
        t += max(abs(d) * 0.35, 0.02);
        if (t > 40.0) break;
    }
    glow /= max(float(uSteps) * 0.02, 1.0);

    vec3 col = uColorA * glow + uColorB * glow * glow;
    FragColor = vec4(col, uWeight);
}
`
