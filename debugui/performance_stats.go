package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/flyre/app"
)

func NewPerformanceStatsComponent(historyFrames int) *PerformanceStatsComponent {
	return &PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		phaseHistory:  make(map[string][]float32),
		frameIndex:    0,
	}
}

// record stores one frame of samples in the ring buffers.
func (ps *PerformanceStatsComponent) record(stats *app.Stats, deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	for _, phase := range stats.Phases {
		history, ok := ps.phaseHistory[phase.Name]
		if !ok {
			history = make([]float32, ps.historyFrames)
			ps.phaseHistory[phase.Name] = history
		}
		history[ps.frameIndex] = float32(phase.LastDuration.Seconds() * 1000.0)
	}
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

func (ps *PerformanceStatsComponent) averageFrameTime() float32 {
	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	return avgFrameTime / float32(ps.historyFrames)
}

// ordered returns history with the oldest sample first.
func (ps *PerformanceStatsComponent) ordered(history []float32) []float32 {
	samples := make([]float32, ps.historyFrames)
	copy(samples, history[ps.frameIndex:])
	copy(samples[ps.historyFrames-ps.frameIndex:], history[:ps.frameIndex])
	return samples
}

func (ps *PerformanceStatsComponent) Render(stats *app.Stats, deltaTime float32) {
	ps.record(stats, deltaTime)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("States: %d", stats.States))
	imgui.Text(fmt.Sprintf("Entities: %d", stats.Entities))
	imgui.Text(fmt.Sprintf("Particles: %d", stats.Particles))

	avgFrameTime := ps.averageFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	imgui.Text(fmt.Sprintf("Avg Simulation Time: %.3f ms", float64(stats.FrameTime())/float64(time.Millisecond)))

	imgui.Separator()
	if imgui.BeginTabBar("PerfTabs") {
		if imgui.BeginTabItem("Frame Time") {
			imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))
			imgui.EndTabItem()
		}

		if imgui.BeginTabItem("Phases") {
			if implot.BeginPlotV("Phase Latency", imgui.NewVec2(-1, 200), 0) {
				implot.SetupAxesV("Frame", "Time (ms)", 0, implot.AxisFlagsAutoFit)
				for _, phase := range stats.Phases {
					samples := ps.ordered(ps.phaseHistory[phase.Name])
					implot.PlotLineFloatPtrInt(phase.Name, &samples[0], int32(len(samples)))
				}
				implot.EndPlot()
			}
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	if imgui.TreeNodeStr("Phase Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PhaseStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Phase")
			imgui.TableSetupColumn("Min")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, phase := range stats.Phases {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(phase.Name)
				imgui.TableNextColumn()
				imgui.Text(phase.MinDuration.String())
				imgui.TableNextColumn()
				imgui.Text(phase.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(phase.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
