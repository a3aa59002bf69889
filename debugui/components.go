package debugui

import (
	"github.com/plus3/flyre/world"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   world.EntityID
	filterText         string
	filterKind         string
	maxEntitiesPerPage int
	currentPage        int
}

type EntityInspectorComponent struct {
	selectedEntityId world.EntityID
}

type KindViewerComponent struct {
	cache        *KindViewerCache
	selectedKind string
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	phaseHistory  map[string][]float32
	frameIndex    int
}
