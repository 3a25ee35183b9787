package reflectx

import (
	"reflect"
)

// LocateField walks the declaring-type chain of instance and returns the field called name
// declared closest to the concrete type, made accessible. It returns nil if no level declares
// such a field, including when instance is nil or not a struct.
func LocateField(instance any, name string) *FieldDescriptor {
	for _, level := range Chain(reflect.TypeOf(instance)) {
		if level.Type.Kind() != reflect.Struct {
			continue
		}

		for i := 0; i < level.Type.NumField(); i++ {
			if level.Type.Field(i).Name != name {
				continue
			}

			f := newFieldDescriptor(level, i)
			EnsureAccessible(f)
			return f
		}
	}

	return nil
}

// LocateMethod walks the declaring-type chain of instance and returns the method called name
// whose parameter types, receiver excluded, are exactly params. The returned descriptor is
// accessible. It returns nil if no level declares a matching method.
//
// A located method is meant to be kept by callers that invoke it repeatedly; lookups are
// not cached.
func LocateMethod(instance any, name string, params ...reflect.Type) *MethodDescriptor {
	return locateMethod(instance, name, func(m *MethodDescriptor) bool {
		return m.matches(params)
	})
}

// LocateMethodByName is like LocateMethod but ignores the parameter types. When a level has
// several candidates, which only happens with shims, the first one registered wins.
func LocateMethodByName(instance any, name string) *MethodDescriptor {
	return locateMethod(instance, name, func(*MethodDescriptor) bool {
		return true
	})
}

func locateMethod(instance any, name string, match func(*MethodDescriptor) bool) *MethodDescriptor {
	for _, level := range Chain(reflect.TypeOf(instance)) {
		if m := levelMethod(level, name, match); m != nil {
			EnsureAccessible(m)
			return m
		}
	}

	return nil
}

// levelMethod looks for name among the methods declared exactly at level: the exported ones
// reflect can see first, then the registered shims.
func levelMethod(level *Level, name string, match func(*MethodDescriptor) bool) *MethodDescriptor {
	for _, m := range declaredMethods(level.Type) {
		if m.Name != name {
			continue
		}
		if d := newMethodDescriptor(level, m); match(d) {
			return d
		}
	}

	for _, s := range shimsOf(level.Type) {
		if s.name != name {
			continue
		}
		if d := newShimDescriptor(level, s); match(d) {
			return d
		}
	}

	return nil
}
