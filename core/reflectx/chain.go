package reflectx

import (
	"reflect"
	"runtime"
	"slices"
)

// Level is one entry of a declaring-type chain: a type reachable from the root type through
// embedded fields, together with the field index path leading to it.
type Level struct {
	Type     reflect.Type // the embedded type, pointer-dereferenced
	Owner    reflect.Type // the concrete type the chain was built for
	Index    []int        // field index path from the root struct, empty for the root
	Depth    int          // number of embedding steps from the root
	Exported bool         // false when the path crosses an unexported embedded field
}

// Root reports whether the level is the concrete type itself.
func (l *Level) Root() bool {
	return len(l.Index) == 0
}

// Chain returns the declaring-type chain of t: t itself first, followed by every type it
// embeds, breadth-first and in declaration order. This is the order in which Go promotes
// fields and methods, so the first level declaring a name is the one Go itself would pick.
// Pointers are dereferenced; a type reachable twice (through pointer cycles) is listed once.
// Go has no universal base type, so the chain simply ends at types that embed nothing.
func Chain(t reflect.Type) []*Level {
	t = indirectType(t)
	if t == nil {
		return nil
	}

	chain := []*Level{{Type: t, Owner: t, Exported: true}}
	seen := map[reflect.Type]struct{}{t: {}}

	for i := 0; i < len(chain); i++ {
		level := chain[i]
		if level.Type.Kind() != reflect.Struct {
			continue
		}

		for j := 0; j < level.Type.NumField(); j++ {
			field := level.Type.Field(j)
			if !field.Anonymous {
				continue
			}

			ft := indirectType(field.Type)
			if _, ok := seen[ft]; ok {
				continue
			}
			seen[ft] = struct{}{}

			chain = append(chain, &Level{
				Type:     ft,
				Owner:    t,
				Index:    append(slices.Clone(level.Index), j),
				Depth:    level.Depth + 1,
				Exported: level.Exported && field.IsExported(),
			})
		}
	}

	return chain
}

// Supertype returns the direct supertype of t: the type of its first embedded field,
// pointer-dereferenced. It returns false when t is not a struct or embeds nothing.
func Supertype(t reflect.Type) (reflect.Type, bool) {
	t = indirectType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, false
	}

	for i := 0; i < t.NumField(); i++ {
		if field := t.Field(i); field.Anonymous {
			return indirectType(field.Type), true
		}
	}

	return nil, false
}

// declaredMethods lists the exported methods declared by the level type itself, leaving out
// methods promoted from embedded types. Overrides of embedded methods are kept.
func declaredMethods(t reflect.Type) []reflect.Method {
	var (
		embedded = embeddedMethodNames(t)
		out      []reflect.Method
	)

	if t.Kind() == reflect.Interface {
		for i := 0; i < t.NumMethod(); i++ {
			out = append(out, t.Method(i))
		}
		return out
	}

	ptr := reflect.PointerTo(t)
	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		if _, ok := embedded[m.Name]; ok && !declaredOn(t, m.Name) {
			continue
		}
		out = append(out, m)
	}

	return out
}

// embeddedMethodNames collects the method names promoted into t by its embedded fields.
func embeddedMethodNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{})
	if t.Kind() != reflect.Struct {
		return names
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}

		ft := field.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}
		for j := 0; j < ft.NumMethod(); j++ {
			names[ft.Method(j).Name] = struct{}{}
		}
	}

	return names
}

// declaredOn tells an override from a promoted method. Both appear in the method set of t, but
// a promoted method is a compiler generated wrapper while an override has real source code.
func declaredOn(t reflect.Type, name string) bool {
	if m, ok := t.MethodByName(name); ok && !generated(m) {
		return true
	}
	if m, ok := reflect.PointerTo(t).MethodByName(name); ok && !generated(m) {
		return true
	}
	return false
}

func generated(m reflect.Method) bool {
	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return true
	}

	file, _ := fn.FileLine(fn.Entry())
	return file == "<autogenerated>"
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
