package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/flyre/app"
	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/particle"
	"github.com/plus3/flyre/script"
	"github.com/plus3/flyre/vec"
	"github.com/plus3/flyre/world"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

var bounds = vec.R(0, 0, screenWidth, screenHeight)

type counters struct {
	deaths int64
}

// newDrifter makes an entity that bounces around the screen and dies after
// a random number of frames, replacing itself with a new one and a burst of
// particles.
func newDrifter(rng *rand.Rand, kind *world.Kind, churn int) *world.Entity {
	e := world.NewEntity(kind, vec.RandomInRect(rng, bounds), vec.V(6, 6))
	e.Vel = vec.Polar(1+rng.Float64()*3, rng.Float64()*360)
	e.Z = rng.IntN(3) - 1

	lifetime := churn/2 + rng.IntN(churn+1)
	e.Do(func(y *script.Yield) {
		y.Wait(lifetime)
		e.MarkDead()
	})
	return e
}

func drifterKind(churn int, c *counters) *world.Kind {
	kind := &world.Kind{Name: "drifter"}
	kind.Update = func(e *world.Entity) {
		if e.Pos.X < bounds.Left() || e.Pos.X > bounds.Right() {
			e.Vel.X = -e.Vel.X
		}
		if e.Pos.Y < bounds.Top() || e.Pos.Y > bounds.Bottom() {
			e.Vel.Y = -e.Vel.Y
		}
	}
	kind.Draw = func(e *world.Entity, s gfx.Surface) {
		s.FillCircle(e.Center(), e.Size.X/2, colornames.Orange)
	}
	kind.OnDeath = func(e *world.Entity, st *world.State) {
		c.deaths++
		for range 8 {
			st.Particles.Add(particle.Shard(2, 1, colornames.Gold).
				At(e.Center(), st.Rand().Float64()*360).
				Velocity(2+st.Rand().Float64()*2, 0).
				Living(20).
				AnimFade().
				Build())
		}
		st.Add(newDrifter(st.Rand(), kind, churn))
	}
	return kind
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	fountainCount := flag.Int("fountains", 20, "The number of particle fountains.")
	fountainRate := flag.Float64("fountain-rate", 2.5, "Particles spawned per fountain per frame.")
	churn := flag.Int("churn", 120, "Average entity lifetime, in frames.")
	seed := flag.Uint64("seed", 1, "Random seed of the simulation.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting flyre stress test...")

	// 1. Setup the state and the app
	rng := rand.New(rand.NewPCG(*seed, *seed))
	c := &counters{}
	kind := drifterKind(max(*churn, 1), c)

	st := world.NewState(
		world.WithName("stress"),
		world.WithRand(rng),
		world.WithBackgroundCycle(world.DefaultCycleFrames, colornames.Midnightblue, colornames.Darkslategray),
	)

	// 2. Populate the state with initial entities and fountains
	log.Printf("Populating state with %d entities...\n", *entityCount)
	for range *entityCount {
		st.Add(newDrifter(rng, kind, max(*churn, 1)))
	}
	for range *fountainCount {
		origin := vec.RandomInRect(rng, bounds)
		st.Particles.AddFountain(particle.NewFountain(func(rng *rand.Rand) *particle.Particle {
			return particle.Circle(colornames.Lightskyblue).
				At(origin, -90+rng.Float64()*60-30).
				Velocity(1+rng.Float64()*2, 0).
				ConstantForce(vec.V(0, 0.05)).
				Sized(3).
				Living(60).
				AnimShrink().
				Build()
		}, *fountainRate))
	}
	log.Println("Population complete.")

	surface := &gfx.Recorder{W: screenWidth, H: screenHeight}
	a, err := app.New(st, app.WithSurface(surface), app.WithSize(screenWidth, screenHeight))
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Fountains:      *fountainCount,
		FountainRate:   *fountainRate,
		Seed:           *seed,
		ChurnInterval:  *churn,
		GCPauseMetrics: *gcPauseMetrics,
		FrameTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			err := a.Step(1)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			if errors.Is(err, app.ErrStackEmpty) {
				break Loop
			}
			if err != nil {
				log.Fatalf("Frame failed: %v", err)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := a.GetStats()
	report.TotalFrames = stats.Frames
	report.Phases = stats.Phases
	report.FinalEntities = st.Len()
	report.FinalParticles = st.Particles.Len()
	report.Spawned = st.Particles.Spawned()
	report.Deaths = c.deaths
	report.DrawCalls = surface.Counts

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
