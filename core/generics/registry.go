package generics

import (
	"reflect"
	"sync"
)

// The runtime name of an instantiated generic type spells its type arguments out as source
// text, "Container[int]" or "Container[github.com/acme/shop.Order]". The registry maps that text
// back to types.
var registry = struct {
	sync.RWMutex
	byName map[string]reflect.Type
}{byName: make(map[string]reflect.Type)}

func init() {
	Register(
		reflect.TypeFor[bool](),
		reflect.TypeFor[string](),
		reflect.TypeFor[int](),
		reflect.TypeFor[int8](),
		reflect.TypeFor[int16](),
		reflect.TypeFor[int32](),
		reflect.TypeFor[int64](),
		reflect.TypeFor[uint](),
		reflect.TypeFor[uint8](),
		reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](),
		reflect.TypeFor[uintptr](),
		reflect.TypeFor[float32](),
		reflect.TypeFor[float64](),
		reflect.TypeFor[complex64](),
		reflect.TypeFor[complex128](),
		reflect.TypeFor[error](),
		reflect.TypeFor[any](),
	)

	registerAlias("byte", reflect.TypeFor[byte]())
	registerAlias("rune", reflect.TypeFor[rune]())
	registerAlias("any", reflect.TypeFor[any]())
}

// Register makes types resolvable as type arguments. Predeclared types are registered already;
// named types of other packages have to be registered before they can be extracted.
func Register(types ...reflect.Type) {
	registry.Lock()
	defer registry.Unlock()

	for _, t := range types {
		if t == nil {
			continue
		}
		for _, name := range names(t) {
			registry.byName[name] = t
		}
	}
}

// Lookup returns the registered type spelled name.
func Lookup(name string) (reflect.Type, bool) {
	registry.RLock()
	defer registry.RUnlock()

	t, ok := registry.byName[name]
	return t, ok
}

func registerAlias(name string, t reflect.Type) {
	registry.Lock()
	defer registry.Unlock()

	registry.byName[name] = t
}

// names lists the spellings of t: the import path qualified one used in runtime type names and
// the package qualified one printed by reflect.
func names(t reflect.Type) []string {
	out := []string{t.String()}
	if t.PkgPath() != "" && t.Name() != "" {
		out = append(out, t.PkgPath()+"."+t.Name())
	}
	return out
}
