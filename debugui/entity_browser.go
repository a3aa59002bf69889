package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flyre/world"
)

type EntityInfo struct {
	ID      world.EntityID
	Kind    string
	Z       int
	X, Y    float64
	Scripts int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	state         *world.State
	timer         int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) *EntityBrowserComponent {
	return &EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
			timer:         -1,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(st *world.State) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(st)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterKind = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Z")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Scripts")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.getFilteredEntities()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Kind)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.Z))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f, %.0f", entity.X, entity.Y))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.Scripts))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.getFilteredEntities()

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		eb.currentPage = min(eb.currentPage, totalPages-1)
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// rebuildCacheIfNeeded refreshes the rows once per logic pass of st.
func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(st *world.State) {
	if eb.cache.state != st || eb.cache.timer != st.Timer || eb.cache.entities == nil {
		eb.rebuildCache(st)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(st *world.State) {
	eb.cache.state = st
	eb.cache.timer = st.Timer
	eb.cache.entities = make([]EntityInfo, 0, st.Len())

	for e := range st.All() {
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:      e.ID(),
			Kind:    e.Kind.String(),
			Z:       e.Z,
			X:       e.Pos.X,
			Y:       e.Pos.Y,
			Scripts: e.Scripts(),
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = a.Kind < b.Kind
		case 2:
			less = a.Z < b.Z
		case 3:
			less = a.Y < b.Y || (a.Y == b.Y && a.X < b.X)
		case 4:
			less = a.Scripts < b.Scripts
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterKind == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterKind != "" && entity.Kind != eb.filterKind {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			kindStr := strings.ToLower(entity.Kind)

			if !strings.Contains(idStr, filterLower) && !strings.Contains(kindStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// FilterKind restricts the browser to one kind, as picked in the kind viewer.
func (eb *EntityBrowserComponent) FilterKind(kind string) {
	eb.filterKind = kind
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) GetSelectedEntity() world.EntityID {
	return eb.selectedEntityId
}
