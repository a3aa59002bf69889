// Package debugui provides an immediate-mode debug overlay for flyre
// applications using Dear ImGui. It shows the entities of the running state
// and the frame statistics of the app while the debug setting is on.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flyre/app"
	debugui_ebiten "github.com/plus3/flyre/debugui/ebiten"
)

// ImguiItem holds a Dear ImGui render function drawn every overlay frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

var _ app.Overlay = (*Overlay)(nil)

// Overlay implements app.Overlay with the entity browser, the entity
// inspector, the kind viewer and the performance stats windows.
type Overlay struct {
	InputState ImguiInputState
	// AlwaysVisible shows the windows even when the debug setting is off.
	AlwaysVisible bool

	backend   *debugui_ebiten.ImguiBackend
	items     []ImguiItem
	browser   *EntityBrowserComponent
	inspector *EntityInspectorComponent
	kinds     *KindViewerComponent
	perf      *PerformanceStatsComponent
	timer     *FrameTimer
}

func NewOverlay(backend *debugui_ebiten.ImguiBackend) *Overlay {
	return &Overlay{
		backend:   backend,
		browser:   NewEntityBrowserComponent(100),
		inspector: NewEntityInspectorComponent(),
		kinds:     NewKindViewerComponent(),
		perf:      NewPerformanceStatsComponent(120),
		timer:     NewFrameTimer(),
	}
}

// Add draws item after the built-in windows.
func (o *Overlay) Add(item ImguiItem) {
	o.items = append(o.items, item)
}

// Update builds the ImGui frame for the top state of a.
func (o *Overlay) Update(a *app.App) {
	o.backend.BeginFrame()
	defer o.backend.EndFrame()

	o.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	o.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	dt := o.timer.GetDeltaTime()
	if !o.AlwaysVisible && (a.Settings == nil || !a.Settings.Debug) {
		return
	}
	st := a.Stack().Top()
	if st == nil {
		return
	}

	o.perf.Render(a.GetStats(), dt)
	if kind, ok := o.kinds.Render(st); ok {
		o.browser.FilterKind(kind)
	}
	o.browser.Render(st)
	o.inspector.Render(st, o.browser.GetSelectedEntity())

	for _, item := range o.items {
		item.Render()
	}
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(w, h int) {
	o.backend.Layout(w, h)
}
