package core

import "time"

// App defines the hooks the host application implements.
type App interface {
	OnStart(e *Engine) error
	OnUpdate(e *Engine, dt float64) // once per frame, before rendering
	OnRender(e *Engine)             // draws the frame
	OnEvent(e *Engine, ev Event)    // input/window events
	OnShutdown(e *Engine)           // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	Clock  *Clock
	start  time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	ContentScale() (float32, float32)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Event model (sealed set).
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventContentScale struct{ X, Y float32 }

func (EventContentScale) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	Key1
	Key2
	Key3
	Key4
	Key5
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Config for the engine run.
type Config struct {
	Title   string
	Width   int
	Height  int
	VSync   bool
	Samples int // MSAA sample count, 0 = off
}
