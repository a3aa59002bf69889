package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flyre/world"
)

func NewEntityInspectorComponent() *EntityInspectorComponent {
	return &EntityInspectorComponent{}
}

func (ei *EntityInspectorComponent) Render(st *world.State, selectedEntityId world.EntityID) {
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ei.selectedEntityId = selectedEntityId

	if ei.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	e, ok := st.Get(ei.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d is gone", ei.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.ID()))
	imgui.Text(fmt.Sprintf("Kind: %v", e.Kind))
	imgui.Text(fmt.Sprintf("Scripts: %d", e.Scripts()))
	if e.Alive() && imgui.Button("Kill") {
		e.MarkDead()
	}
	imgui.Separator()

	val := reflect.ValueOf(e).Elem()
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		if field.Name == "Kind" {
			continue
		}
		renderField(field.Name, val.Field(field.Index), field)
	}

	imgui.End()
}

// renderField draws one value, with an input widget when it can be set.
// Edits are written straight into the entity.
func renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		elem := val.Elem()
		renderField(name, elem, FieldInfo{Name: name, Type: elem.Type(), Editable: field.Editable})
		return
	}

	editable := field.Editable && val.CanSet()

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && editable {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && editable && v >= 0 {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && editable {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && editable {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && editable {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				nf.Editable = nf.Editable && field.Editable
				renderField(nf.Name, val.Field(nf.Index), nf)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
