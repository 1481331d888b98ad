package core

import (
	"log"
	"runtime"
	"time"
)

// Run wires the platform window and executes the main loop. The loop is
// cooperatively scheduled on the calling goroutine; all update and render work
// happens synchronously inside a frame.
func Run(app App, cfg Config, newWindow func(Config) (Window, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	eng := &Engine{Window: win, Clock: NewClock(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		app.OnEvent(eng, ev)
	})

	if err := app.OnStart(eng); err != nil {
		return err
	}

	tick := appTicker{app: app, eng: eng}
	for !win.ShouldClose() {
		win.PollEvents()
		eng.Clock.Tick(time.Now(), tick)
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}

// appTicker adapts App to the Clock's Ticker.
type appTicker struct {
	app App
	eng *Engine
}

func (t appTicker) Update(dt float64) { t.app.OnUpdate(t.eng, dt) }
func (t appTicker) Render()           { t.app.OnRender(t.eng) }
