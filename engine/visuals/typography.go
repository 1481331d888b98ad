package visuals

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/belisario-afk/dwdw-sub001/engine/colors"
	glbackend "github.com/belisario-afk/dwdw-sub001/engine/gfx/gl"
	"github.com/belisario-afk/dwdw-sub001/engine/palette"
	"github.com/belisario-afk/dwdw-sub001/engine/scene"
)

// Typography renders an animated horizontal band whose thickness and position
// breathe with time and the intensity/weight macros.
type Typography struct {
	res  *glbackend.ResourceSet
	prog *glbackend.Program
	quad *glbackend.Mesh

	t    float64
	beat float64 // decaying phrase pulse
	pal  palette.Palette
}

func (s *Typography) Name() string { return "Typography" }

func (s *Typography) Init(b *scene.BuildContext) error {
	s.res = glbackend.NewResourceSet()
	prog, err := s.res.Program(fullscreenVS, typographyFS)
	if err != nil {
		s.res.Release()
		return err
	}
	s.prog = prog
	s.quad = glbackend.NewFullscreenQuad()
	s.res.Track(s.quad)
	s.pal = b.Env.Palette()
	return nil
}

func (s *Typography) Update(dt float64, env scene.Env) {
	s.t += dt * timeScale(env)
	s.pal = env.Palette()
	if s.beat > 0 {
		s.beat -= dt * 2
		if s.beat < 0 {
			s.beat = 0
		}
	}
}

func (s *Typography) Render(f *scene.Frame) {
	band, bg := s.pal.Secondary, s.pal.Dominant
	if f.Env.Accessibility().HighContrast {
		band = colors.White
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	s.prog.Use()
	s.prog.SetFloat("uTime", float32(s.t))
	s.prog.SetFloat("uWeight", f.Weight)
	s.prog.SetFloat("uIntensity", flashLimit(f.Env, float32(f.Env.Macro("intensity", 0.7))))
	s.prog.SetFloat("uBandWeight", float32(f.Env.Macro("weight", 0.6)))
	s.prog.SetFloat("uBeat", float32(s.beat))
	s.prog.SetVec3("uBand", band[0], band[1], band[2])
	s.prog.SetVec3("uBG", bg[0], bg[1], bg[2])
	s.quad.Draw()

	gl.Disable(gl.BLEND)
}

func (s *Typography) SetPalette(p palette.Palette) { s.pal = p }

// OnPhrase pulses the band on every bar.
func (s *Typography) OnPhrase(bar int, tempo float64) { s.beat = 1 }

func (s *Typography) Dispose() {
	if s.res != nil {
		s.res.Release()
	}
}

const typographyFS = `
#version 330 core
in vec2 vUV;

uniform float uTime;
uniform float uWeight;
uniform float uIntensity;
uniform float uBandWeight;
uniform float uBeat;
uniform vec3 uBand;
uniform vec3 uBG;

out vec4 FragColor;

void main() {
    // band center drifts, thickness breathes
    float center = 0.5 + 0.18 * sin(uTime * 0.6);
    float thick = 0.06 + 0.10 * uBandWeight * (0.6 + 0.4 * sin(uTime * 1.7))
                + 0.08 * uBeat;
    thick *= 0.5 + uIntensity;

    float d = abs(vUV.y - center);
    float band = 1.0 - smoothstep(thick * 0.6, thick, d);
    // faint scanline texture inside the band
    band *= 0.85 + 0.15 * sin(vUV.x * 140.0 + uTime * 3.0);

    vec3 col = mix(uBG * 0.25, uBand, band);
    FragColor = vec4(col, uWeight);
}
`
