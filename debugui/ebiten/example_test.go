package ebiten_test

import (
	"log"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flyre/app"
	"github.com/plus3/flyre/debugui"
	debugui_ebiten "github.com/plus3/flyre/debugui/ebiten"
	"github.com/plus3/flyre/world"
)

func Example() {
	// Create the ImGui backend and its window
	backend := debugui_ebiten.NewImguiBackend("flyre debug", 1280, 720)

	overlay := debugui.NewOverlay(backend)
	overlay.Add(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from flyre!")
			imgui.End()
		},
	})

	// The overlay shows up once debug mode is toggled with F11
	st := world.NewState(world.WithName("sandbox"))
	a, err := app.New(st, app.WithOverlay(overlay), app.WithSize(1280, 720))
	if err != nil {
		log.Fatal(err)
	}

	if err := a.RunGame(); err != nil {
		log.Fatal(err)
	}
}
