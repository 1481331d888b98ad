package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/belisario-afk/dwdw-sub001/engine/assets"
	"github.com/belisario-afk/dwdw-sub001/engine/colors"
	"github.com/belisario-afk/dwdw-sub001/engine/core"
	glbackend "github.com/belisario-afk/dwdw-sub001/engine/gfx/gl"
	"github.com/belisario-afk/dwdw-sub001/engine/palette"
	"github.com/belisario-afk/dwdw-sub001/engine/platform"
	"github.com/belisario-afk/dwdw-sub001/engine/scene"
	"github.com/belisario-afk/dwdw-sub001/engine/visuals"
)

// App hosts the Director inside the engine loop: it bridges window events,
// the demo phrase ticker and asynchronous palette results onto the render
// thread.
type App struct {
	cfg      Config
	director *scene.Director
	req      *palette.Requester

	// palette results hop threads through here; drained at frame start
	palettes chan palette.Palette

	barAccum float64
	bar      int

	fpsFrames int
}

func (a *App) OnStart(e *core.Engine) error {
	w, h := e.Window.FramebufferSize()
	a.director = scene.NewDirector(visuals.DefaultRegistry(), w, h)
	a.palettes = make(chan palette.Palette, 1)
	a.req = palette.NewRequester()

	a.director.SetQuality(scene.QualityPatch{
		Scale:     &a.cfg.QualityScale,
		Antialias: &a.cfg.Antialias,
	})
	a.director.SetPost(scene.PostPatch{Bloom: &a.cfg.Bloom})
	a.director.SetAccessibility(scene.AccessibilityPatch{
		ReducedMotion: &a.cfg.ReducedMotion,
		EpilepsySafe:  &a.cfg.EpilepsySafe,
	})
	for k, v := range a.cfg.Macros {
		a.director.SetMacro(k, v)
	}

	if err := a.director.LoadScene(a.cfg.Scene); err != nil {
		return err
	}
	glbackend.Viewport(w, h)

	sx, _ := e.Window.ContentScale()
	log.Printf("scene %s loaded, effective pixel ratio %.2f",
		a.cfg.Scene, a.director.EffectivePixelRatio(float64(sx)))

	switch {
	case a.cfg.ArtworkURL == "":
	case !strings.HasPrefix(a.cfg.ArtworkURL, "http://") && !strings.HasPrefix(a.cfg.ArtworkURL, "https://"):
		// Local file: decode and extract synchronously before the first frame.
		img, err := assets.LoadArtwork(a.cfg.ArtworkURL)
		if err != nil {
			log.Printf("artwork load failed, keeping fallback palette: %v", err)
			break
		}
		p, err := palette.FromImage(img, palette.DefaultK)
		if err != nil {
			log.Printf("palette extraction failed, keeping fallback palette: %v", err)
			break
		}
		a.director.SetPalette(p)
	default:
		a.req.RequestLatest(context.Background(), a.cfg.ArtworkURL,
			func(p palette.Palette) {
				select {
				case a.palettes <- p:
				default:
				}
			},
			func(err error) {
				// Fallback palette is already in place; just report.
				log.Printf("palette extraction failed: %v", err)
			})
	}

	e.Clock.OnFPS(func(fps float64) {
		a.fpsFrames++
		if a.fpsFrames%60 == 0 {
			e.Window.SetTitle(fmt.Sprintf("%s — %s — %.0f fps", a.cfg.Title, a.director.PrimaryName(), fps))
		}
	})
	return nil
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	// Apply the freshest extraction result, if one landed.
	select {
	case p := <-a.palettes:
		a.director.SetPalette(p)
	default:
	}

	a.tickPhrase(dt)
	a.director.Update(dt)
}

func (a *App) OnRender(e *core.Engine) {
	// Backdrop is a deep shade of the dominant color.
	c := colors.Lerp(colors.Black, a.director.Palette().Dominant, 0.12)
	glbackend.Clear(c[0], c[1], c[2], 1)
	a.director.Render()
}

// tickPhrase stands in for an external beat tracker, emitting one phrase
// event per bar at the configured tempo.
func (a *App) tickPhrase(dt float64) {
	barDur := 60 / a.cfg.Phrase.Tempo * float64(a.cfg.Phrase.BeatsPerBar)
	a.barAccum += dt
	for a.barAccum >= barDur {
		a.barAccum -= barDur
		a.bar++
		a.director.OnPhrase(a.bar, a.cfg.Phrase.Tempo)
	}
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch v := ev.(type) {
	case core.EventResize:
		if v.W < 1 || v.H < 1 {
			return
		}
		glbackend.Viewport(v.W, v.H)
		a.director.Resize(v.W, v.H)
	case core.EventContentScale:
		log.Printf("content scale %.2f, effective pixel ratio %.2f",
			v.X, a.director.EffectivePixelRatio(float64(v.X)))
	case core.EventKey:
		if !v.Down {
			return
		}
		a.onKey(e, v.Key)
	}
}

func (a *App) onKey(e *core.Engine, k core.Key) {
	switch k {
	case core.KeyEscape:
		e.Window.RequestClose()
	case core.KeySpace:
		a.crossfade(a.director.NextSceneName())
	case core.Key1, core.Key2, core.Key3, core.Key4, core.Key5:
		a.crossfade(scene.Order[int(k-core.Key1)])
	}
}

func (a *App) crossfade(name string) {
	err := a.director.CrossfadeTo(name, a.cfg.CrossfadeSeconds)
	switch {
	case errors.Is(err, scene.ErrTransitionActive):
		log.Printf("crossfade to %s ignored: %v", name, err)
	case err != nil:
		log.Printf("crossfade to %s failed: %v", name, err)
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	a.director.Close()
}

func main() {
	configPath := flag.String("config", "", "path to TOML config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	app := &App{cfg: cfg}
	coreCfg := core.Config{
		Title:   cfg.Title,
		Width:   cfg.Width,
		Height:  cfg.Height,
		VSync:   cfg.VSync,
		Samples: cfg.Antialias,
	}
	newWindow := func(c core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(c, nil)
	}
	if err := core.Run(app, coreCfg, newWindow); err != nil {
		log.Fatal(err)
	}
}
