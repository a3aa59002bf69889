package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flyre/world"
)

type KindInfo struct {
	Name        string
	EntityCount int
	ScriptCount int
}

type KindViewerCache struct {
	kinds         []KindInfo
	sortColumn    int
	sortAscending bool
}

func NewKindViewerComponent() *KindViewerComponent {
	return &KindViewerComponent{
		cache: &KindViewerCache{
			sortColumn:    1,
			sortAscending: false,
		},
	}
}

// Render lists the kinds of the live entities. It returns the kind clicked
// this frame, if any.
func (kv *KindViewerComponent) Render(st *world.State) (string, bool) {
	if !imgui.BeginV("Kind Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return "", false
	}

	kv.rebuildCache(st)

	maxEntityCount := 0
	for _, kind := range kv.cache.kinds {
		maxEntityCount = max(maxEntityCount, kind.EntityCount)
	}

	var clicked string
	var ok bool

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("KindTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableSetupColumn("Scripts")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			kv.cache.sortColumn = int(spec.ColumnIndex())
			kv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			kv.sortKinds()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, kind := range kv.cache.kinds {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(kind.Name, kv.selectedKind == kind.Name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				kv.selectedKind = kind.Name
				clicked, ok = kind.Name, true
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", kind.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(kind.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", kind.ScriptCount))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked, ok
}

func (kv *KindViewerComponent) rebuildCache(st *world.State) {
	kv.cache.kinds = summarizeKinds(st, kv.cache.kinds[:0])
	kv.sortKinds()
}

// summarizeKinds counts the live entities and their scripts per kind name,
// in order of first appearance.
func summarizeKinds(st *world.State, dst []KindInfo) []KindInfo {
	index := make(map[string]int)
	for e := range st.All() {
		name := e.Kind.String()
		i, ok := index[name]
		if !ok {
			i = len(dst)
			index[name] = i
			dst = append(dst, KindInfo{Name: name})
		}
		dst[i].EntityCount++
		dst[i].ScriptCount += e.Scripts()
	}
	return dst
}

func (kv *KindViewerComponent) sortKinds() {
	sort.SliceStable(kv.cache.kinds, func(i, j int) bool {
		a, b := kv.cache.kinds[i], kv.cache.kinds[j]
		var less bool

		switch kv.cache.sortColumn {
		case 0:
			less = a.Name < b.Name
		case 2:
			less = a.ScriptCount < b.ScriptCount
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !kv.cache.sortAscending {
			return !less
		}
		return less
	})
}
