package reflectx

import (
	"reflect"
	"slices"
)

// Methods returns the sorted names of the methods that can be located on v: the exported
// methods declared at every level of its embedding hierarchy and the registered shims.
func Methods(v any) []string {
	var names []string
	for _, level := range Chain(reflect.TypeOf(v)) {
		for _, m := range declaredMethods(level.Type) {
			names = append(names, m.Name)
		}
		for _, s := range shimsOf(level.Type) {
			names = append(names, s.name)
		}
	}

	slices.Sort(names)
	return slices.Compact(names)
}

// Fields returns the sorted names of the fields that can be located on v, whatever their
// visibility, embedded fields included.
func Fields(v any) []string {
	var names []string
	for _, level := range Chain(reflect.TypeOf(v)) {
		if level.Type.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < level.Type.NumField(); i++ {
			names = append(names, level.Type.Field(i).Name)
		}
	}

	slices.Sort(names)
	return slices.Compact(names)
}
