// Command particles is an interactive showcase of the particle system.
//
// Click to throw a burst of bouncing circles, press space to pause the
// fountains, F11 to open the debug overlay and escape to quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/flyre/app"
	"github.com/plus3/flyre/debugui"
	debugui_ebiten "github.com/plus3/flyre/debugui/ebiten"
	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/input"
	"github.com/plus3/flyre/particle"
	"github.com/plus3/flyre/settings"
	"github.com/plus3/flyre/vec"
	"github.com/plus3/flyre/world"
)

const (
	screenWidth  = 1300
	screenHeight = 800
)

var greetings = []string{
	"Ahlan", "Zdrasti", "Nǐ hǎo", "Hallo", "Goede dag", "Hello", "Salut",
	"Bonjour", "Dia dhuit", "Guten tag", "Yasou", "Shalom", "Namaste",
	"Ciao", "Salve", "Konnichiwa", "Anyoung", "Hej", "Cześć", "Olá",
	"Privet", "Hola", "Habari", "Merhaba", "Xin chào", "Shwmae", "Sawubona",
}

func gauss(rng *rand.Rand, mean, stddev float64) float64 {
	return rng.NormFloat64()*stddev + mean
}

func cursor() vec.Vec2 {
	x, y := ebiten.CursorPosition()
	return vec.V(float64(x), float64(y))
}

// stream makes particles cross the screen from left to right at height y.
func stream(rng *rand.Rand, y float64) func(b *particle.Builder) {
	return func(b *particle.Builder) {
		b.At(vec.V(-20, gauss(rng, y, 10)), 0).
			Velocity(gauss(rng, 8, 1), 0).
			Sized(10).
			Living(120).
			AnimShrink().
			AnimFade()
	}
}

func fountains(st *world.State, texts *gfx.TextCache) []*particle.Fountain {
	screen := vec.R(0, 0, screenWidth, screenHeight)
	return []*particle.Fountain{
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Polygon(5, 2, gfx.MustNamed("#00a590")).Apply(stream(rng, 50)).Build()
		}, 1),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Circle(gfx.MustNamed("#c09540")).Apply(stream(rng, 150)).Build()
		}, 1),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Polygon(6, 1, gfx.MustNamed("#a400a5")).Apply(stream(rng, 250)).Build()
		}, 1),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Square(gfx.MustNamed("white")).Apply(stream(rng, 350)).HSV(gauss(rng, 250, 15), 0.8, 0.8).Build()
		}, 1),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Polygon(3+rng.IntN(3), 1, gfx.MustNamed("white")).
				At(vec.V(rng.Float64()*screenWidth, screenHeight+10), gauss(rng, -90, 5)).
				Velocity(gauss(rng, 3, 0.5), 0).
				HSV(gauss(rng, float64(st.Timer)/5, 8), 1, gauss(rng, 0.9, 0.05)).
				InnerRotation(0, gauss(rng, 0, 2)).
				AnimFade().
				AnimShrink().
				Build()
		}, 15),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Shard(2, 5, gfx.MustNamed("black")).
				At(vec.V(screenWidth, 0), 90+rng.Float64()*90).
				Velocity(gauss(rng, 10, 2), 0).
				Living(30).
				Sized(gauss(rng, 15, 2)).
				AnimShrink().
				Build()
		}, 0.4),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Circle(gfx.MustNamed("white")).
				At(cursor(), gauss(rng, 90, 10)).
				Velocity(gauss(rng, 3, 0.5), 0).
				AnimFade().
				Build()
		}, 2),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Square(gfx.MustNamed("white")).
				At(vec.RandomInRect(rng, screen), 0).
				Velocity(0, 0).
				Living(100+rng.IntN(81)).
				Sized(1+rng.Float64()*3).
				AnimBlink(0.5, 2).
				Build()
		}, 1),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Line(100, 2, gfx.MustNamed("#fff397")).
				At(vec.RandomInRect(rng, screen), 30).
				Living(60).
				Velocity(gauss(rng, 12, 1), 0).
				AnimBlink(0.5, 2).
				Build()
		}, 0.02),
		particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			word := greetings[rng.IntN(len(greetings))]
			return particle.Text(texts, word, gfx.MustNamed("white")).
				At(cursor().Add(vec.V(gauss(rng, 0, 30), -30)), -90).
				Velocity(gauss(rng, 1, 0.2), 0).
				Sized(30).
				AnimFade().
				Build()
		}, 0.02),
	}
}

// burst throws 200 bouncing circles from pos.
func burst(st *world.State, pos vec.Vec2) {
	rng := st.Rand()
	for range 200 {
		angle := rng.Float64() * 360
		st.Particles.Add(particle.Circle(gfx.MustNamed("white")).
			At(pos, angle).
			Velocity(gauss(rng, 10, 0.5), 0).
			HSV(angle, 1, 1).
			AnimShrink().
			AnimBounceRect(vec.R(0, 0, screenWidth, screenHeight)).
			Build())
	}
}

// hud shows the frame rate and particle count and reacts to the mouse.
func hud(texts *gfx.TextCache, all []*particle.Fountain) *world.Kind {
	paused := false
	return &world.Kind{
		Name: "hud",
		Update: func(e *world.Entity) {
			if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
				burst(e.State(), cursor())
			}
		},
		Draw: func(e *world.Entity, s gfx.Surface) {
			label := fmt.Sprintf("FPS: %.2f  Particles: %d", ebiten.ActualFPS(), e.State().Particles.Len())
			img := texts.Render(label, gfx.MustNamed("white"))
			w, h := img.Size()
			s.Blit(img, e.Pos.Add(vec.V(float64(w)/2, float64(h)/2)), 255)
		},
		Inputs: func(e *world.Entity) *input.Inputs {
			in := input.NewInputs()
			pause := input.NewButton(input.Key(ebiten.KeySpace))
			pause.OnPress(func(*input.Button) {
				paused = !paused
				for _, f := range all {
					if paused {
						e.State().Particles.RemoveFountain(f)
					} else {
						e.State().Particles.AddFountain(f)
					}
				}
			})
			in.MustSet("pause", pause)
			return in
		},
	}
}

func main() {
	debug := flag.Bool("debug", false, "Attach the Dear ImGui overlay.")
	flag.Parse()

	var store settings.Store
	if m, err := settings.Open("flyre-particles"); err != nil {
		log.Printf("[Main] Warning: %v", err)
	} else {
		store = m
	}
	prefs := settings.Load(store)

	texts := gfx.NewTextCache(nil, 0)
	var all []*particle.Fountain
	st := world.NewState(
		world.WithName("particles"),
		world.WithSettings(prefs),
		world.WithBackground(gfx.MustNamed("#282832")),
		world.WithHooks(world.Hooks{Setup: func(st *world.State) {
			all = fountains(st, texts)
			for _, f := range all {
				st.Particles.AddFountain(f)
			}
			label := world.NewEntity(hud(texts, all), vec.V(5, 5), vec.Vec2{})
			label.Z = 1
			st.Add(label)
		}}),
	)

	opts := []app.Option{
		app.WithTitle("flyre particles"),
		app.WithSize(screenWidth, screenHeight),
	}
	if store != nil {
		opts = append(opts, app.WithSettings(prefs, store))
	}
	if *debug {
		backend := debugui_ebiten.NewImguiBackend("flyre particles", screenWidth, screenHeight)
		opts = append(opts, app.WithOverlay(debugui.NewOverlay(backend)))
	}

	a, err := app.New(st, opts...)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	if err := a.RunGame(); err != nil {
		log.Fatal(err)
	}
}
