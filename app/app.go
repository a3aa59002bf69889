// Package app drives a world.Stack frame by frame, either inside an ebiten
// window or headless on a ticker.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/input"
	"github.com/plus3/flyre/settings"
	"github.com/plus3/flyre/vec"
	"github.com/plus3/flyre/world"
)

const (
	DefaultTPS    = 60
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// ErrStackEmpty is returned once the last state left the stack.
var ErrStackEmpty = errors.New("state stack is empty")

// Overlay draws on top of the presented frame, outside of the simulation.
type Overlay interface {
	Update(a *App)
	Draw(screen *ebiten.Image)
	Layout(w, h int)
}

type Option func(*App)

func WithTitle(title string) Option {
	return func(a *App) { a.title = title }
}

func WithSize(w, h int) Option {
	return func(a *App) { a.width, a.height = w, h }
}

// WithResizable lets the window be resized. The logical screen follows the
// window size and states are told about the change.
func WithResizable() Option {
	return func(a *App) { a.resizable = true }
}

func WithTPS(tps int) Option {
	return func(a *App) { a.tps = tps }
}

// WithSettings saves s to store when the app closes.
func WithSettings(s *settings.Settings, store settings.Store) Option {
	return func(a *App) {
		a.Settings = s
		a.store = store
	}
}

func WithOverlay(o Overlay) Option {
	return func(a *App) { a.overlay = o }
}

// WithEvents feeds headless runs with scripted events.
func WithEvents(source func(frame int64) []input.Event) Option {
	return func(a *App) { a.events = source }
}

// WithSurface sets what headless runs draw onto.
func WithSurface(s gfx.Surface) Option {
	return func(a *App) { a.surface = s }
}

// App runs the top state of a stack once per frame: input, logic, draw, then
// the transition the state asked for.
type App struct {
	Settings *settings.Settings

	stack     *world.Stack
	poller    *input.Poller
	canvas    *gfx.Canvas
	surface   gfx.Surface
	overlay   Overlay
	store     settings.Store
	events    func(frame int64) []input.Event
	stats     *frameStats
	title     string
	width     int
	height    int
	resizable bool
	tps       int
}

// New resumes initial as the first state of the application.
func New(initial *world.State, opts ...Option) (*App, error) {
	a := &App{
		title:  "flyre",
		width:  DefaultWidth,
		height: DefaultHeight,
		tps:    DefaultTPS,
		stats:  newFrameStats(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Settings == nil && initial != nil {
		a.Settings = initial.Settings
	}

	stack, err := world.NewStack(initial)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.stack = stack
	return a, nil
}

// Stack returns the states of the application.
func (a *App) Stack() *world.Stack {
	return a.stack
}

// Size is the logical screen size.
func (a *App) Size() vec.Vec2 {
	return vec.V(float64(a.width), float64(a.height))
}

// Frame runs one frame of the top state with the given events and draws it
// onto s.
func (a *App) Frame(events []input.Event, s gfx.Surface) error {
	top := a.stack.Top()
	if top == nil {
		return ErrStackEmpty
	}

	a.stats.time(PhaseInput, func() { top.HandleInput(events) })
	a.stats.time(PhaseLogic, top.Logic)
	a.stats.time(PhaseDraw, func() { top.Draw(s) })

	var err error
	a.stats.time(PhaseApply, func() { err = a.stack.Apply() })
	a.stats.frames++
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if !a.stack.Running() {
		return ErrStackEmpty
	}
	return nil
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.canvas == nil {
		a.canvas = gfx.NewCanvas(ebiten.NewImage(a.width, a.height))
	}
	if a.poller == nil {
		a.poller = input.NewPoller()
	}
	if a.overlay != nil {
		a.overlay.Update(a)
	}

	err := a.Frame(a.poller.Poll(), a.canvas)
	if errors.Is(err, ErrStackEmpty) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	if a.canvas != nil {
		a.canvas.Present(screen)
	}
	if a.overlay != nil {
		a.overlay.Draw(screen)
	}
}

// Layout implements ebiten.Game.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.resizable && (outsideWidth != a.width || outsideHeight != a.height) {
		a.resize(outsideWidth, outsideHeight)
	}
	if a.overlay != nil {
		a.overlay.Layout(a.width, a.height)
	}
	return a.width, a.height
}

func (a *App) resize(w, h int) {
	old := a.Size()
	a.width, a.height = w, h
	if a.canvas != nil {
		a.canvas.Target().Deallocate()
		a.canvas = gfx.NewCanvas(ebiten.NewImage(w, h))
	}
	for _, st := range a.stack.States() {
		st.Resize(old, a.Size())
	}
}

// RunGame opens the window and runs the application until the stack is
// empty or the window is closed.
func (a *App) RunGame() error {
	ebiten.SetWindowTitle(a.title)
	ebiten.SetWindowSize(a.width, a.height)
	ebiten.SetTPS(a.tps)
	ebiten.SetWindowClosingHandled(true)
	if a.resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	log.Printf("[App] Starting %s (%dx%d @ %d TPS)", a.title, a.width, a.height, a.tps)
	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

// Run executes frames at the given interval without a window until the
// context is cancelled or the stack is empty. An empty stack returns
// ErrStackEmpty.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	if a.surface == nil {
		a.surface = &gfx.Recorder{W: float64(a.width), H: float64(a.height)}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.Frame(a.nextEvents(), a.surface); err != nil {
				return err
			}
		}
	}
}

// Step runs n frames back to back without a window.
func (a *App) Step(n int) error {
	if a.surface == nil {
		a.surface = &gfx.Recorder{W: float64(a.width), H: float64(a.height)}
	}
	for range n {
		if err := a.Frame(a.nextEvents(), a.surface); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) nextEvents() []input.Event {
	if a.events == nil {
		return nil
	}
	return a.events(a.stats.frames)
}

// GetStats returns statistics about frame execution.
func (a *App) GetStats() *Stats {
	stats := a.stats.snapshot()
	stats.States = a.stack.Len()
	if top := a.stack.Top(); top != nil {
		stats.Entities = top.Len()
		stats.Particles = top.Particles.Len()
	}
	return stats
}

// Close saves the settings.
func (a *App) Close() error {
	if a.store == nil || a.Settings == nil {
		return nil
	}
	if err := settings.Save(a.store, a.Settings); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	log.Printf("[App] Settings saved")
	return nil
}
