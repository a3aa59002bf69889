package app

import "time"

// Phase is one step of a frame.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseLogic
	PhaseDraw
	PhaseApply
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseLogic:
		return "logic"
	case PhaseDraw:
		return "draw"
	case PhaseApply:
		return "apply"
	default:
		return "unknown"
	}
}

// Stats provides statistics about frame execution.
type Stats struct {
	Frames    int64
	Entities  int
	Particles int
	States    int
	Phases    []PhaseStats
}

// PhaseStats provides execution statistics for a single frame phase.
type PhaseStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type frameStats struct {
	frames int64
	phases [phaseCount]phaseStatsInternal
}

func newFrameStats() *frameStats {
	fs := &frameStats{}
	for i := range fs.phases {
		fs.phases[i].minDuration = time.Duration(1<<63 - 1)
	}
	return fs
}

// time runs fn and accounts its duration to p.
func (fs *frameStats) time(p Phase, fn func()) {
	start := time.Now()
	fn()
	duration := time.Since(start)

	stats := &fs.phases[p]
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

func (fs *frameStats) snapshot() *Stats {
	stats := &Stats{
		Frames: fs.frames,
		Phases: make([]PhaseStats, phaseCount),
	}

	for i, internal := range fs.phases {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Phases[i] = PhaseStats{
			Name:           Phase(i).String(),
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}
	return stats
}

// FrameTime is the total average time of a frame.
func (s *Stats) FrameTime() time.Duration {
	var total time.Duration
	for _, p := range s.Phases {
		total += p.AvgDuration
	}
	return total
}
