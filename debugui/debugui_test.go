package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/flyre/app"
	"github.com/plus3/flyre/vec"
	"github.com/plus3/flyre/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ship   = &world.Kind{Name: "ship"}
	rock   = &world.Kind{Name: "rock"}
	bullet = &world.Kind{Name: "bullet"}
)

func populatedState() *world.State {
	st := world.NewState()
	for i, k := range []*world.Kind{rock, ship, rock, bullet, rock} {
		e := world.NewEntity(k, vec.V(float64(10*i), 0), vec.V(4, 4))
		e.Z = -i
		st.Add(e)
	}
	return st
}

func TestSummarizeKinds(t *testing.T) {
	st := populatedState()
	for e := range st.All(world.OfKind(ship)) {
		e.DoLater(5, func() {})
	}

	kinds := summarizeKinds(st, nil)
	assert.Equal(t, []KindInfo{
		{Name: "rock", EntityCount: 3},
		{Name: "ship", EntityCount: 1, ScriptCount: 1},
		{Name: "bullet", EntityCount: 1},
	}, kinds)

	kv := NewKindViewerComponent()
	kv.rebuildCache(st)
	assert.Equal(t, "rock", kv.cache.kinds[0].Name, "sorted by entity count, largest first")
}

func TestEntityBrowserCache(t *testing.T) {
	st := populatedState()
	eb := NewEntityBrowserComponent(2)

	eb.rebuildCacheIfNeeded(st)
	require.Len(t, eb.cache.entities, 5)
	assert.Equal(t, world.EntityID(1), eb.cache.entities[0].ID)

	eb.cache.sortColumn = 2
	eb.sortEntities()
	assert.Equal(t, -4, eb.cache.entities[0].Z)

	eb.filterText = "ro"
	assert.Len(t, eb.getFilteredEntities(), 3)

	eb.filterText = ""
	eb.FilterKind("bullet")
	filtered := eb.getFilteredEntities()
	require.Len(t, filtered, 1)
	assert.Equal(t, "bullet", filtered[0].Kind)

	first, _ := st.Get(1)
	first.MarkDead()
	st.Logic()
	eb.FilterKind("")
	eb.rebuildCacheIfNeeded(st)
	assert.Len(t, eb.cache.entities, 4, "the cache follows the logic passes")
}

type payload struct {
	HP     int
	Name   string
	Target *vec.Vec2
	OnHit  func()
	hidden bool
}

func TestReflectionCache(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.GetFields(reflect.TypeOf(payload{}))

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"HP", "Name", "Target"}, names)
	assert.True(t, fields[0].Editable)
	assert.True(t, fields[2].IsPointer)
	assert.False(t, fields[2].Editable)
	assert.Equal(t, reflect.TypeOf(vec.Vec2{}), fields[2].Type)

	again := rc.GetFields(reflect.TypeOf(payload{}))
	assert.Same(t, &fields[0], &again[0], "fields are cached per type")

	entityFields := rc.GetFields(reflect.TypeOf(world.Entity{}))
	assert.NotEmpty(t, entityFields)
	for _, f := range entityFields {
		assert.NotEqual(t, reflect.Func, f.Type.Kind())
	}
}

func TestPerformanceHistory(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)
	stats := &app.Stats{Phases: []app.PhaseStats{{Name: "logic", LastDuration: 2 * time.Millisecond}}}

	for i := range 5 {
		ps.record(stats, float32(i+1)/1000)
	}
	assert.InDelta(t, (5+2+3+4)/4.0, ps.averageFrameTime(), 1e-4)
	assert.InDeltaSlice(t, []float32{2, 3, 4, 5}, ps.ordered(ps.frameHistory), 1e-4)
	assert.InDelta(t, 2.0, ps.phaseHistory["logic"][0], 1e-4)
}
