package reflectx

import (
	"reflect"

	"github.com/anoideaopen/introspect/core/stringsx"
)

// Accessor name prefixes. The lower-case form is tried first, the exported Go form second.
const (
	getterPrefix         = "get"
	setterPrefix         = "set"
	exportedGetterPrefix = "Get"
	exportedSetterPrefix = "Set"
)

// InvokeGetter calls the getter of property on instance: a method without parameters named
// "get" followed by the capitalized property name, or, when no level declares one, the exported
// form "Get...". It fails with a MemberResolutionError if neither exists.
func InvokeGetter(instance any, property string) (any, error) {
	name := stringsx.AccessorName(getterPrefix, property)

	m := LocateMethod(instance, name)
	if m == nil {
		m = LocateMethod(instance, stringsx.AccessorName(exportedGetterPrefix, property))
	}
	if m == nil {
		return nil, newResolutionError(KindMethod, name, instance)
	}

	return InvokeMethod(instance, m)
}

// InvokeSetter calls the setter of property on instance with value as its only argument. The
// setter is located by name only ("set..." then "Set..."), its parameter types are not checked
// before the call.
func InvokeSetter(instance any, property string, value any) error {
	name := stringsx.AccessorName(setterPrefix, property)

	m := LocateMethodByName(instance, name)
	if m == nil {
		m = LocateMethodByName(instance, stringsx.AccessorName(exportedSetterPrefix, property))
	}
	if m == nil {
		return newResolutionError(KindMethod, name, instance)
	}

	_, err := InvokeMethod(instance, m, value)
	return err
}

// GetFieldValue reads the field called name directly, whatever its visibility and without going
// through a getter. The error matches both ErrMemberNotFound and ErrIllegalArgument when no
// level of the hierarchy declares the field.
func GetFieldValue(instance any, name string) (any, error) {
	f := LocateField(instance, name)
	if f == nil {
		return nil, newResolutionError(KindField, name, instance)
	}

	return ReadField(instance, f)
}

// SetFieldValue writes the field called name directly, whatever its visibility and without
// going through a setter. instance must be a pointer.
func SetFieldValue(instance any, name string, value any) error {
	f := LocateField(instance, name)
	if f == nil {
		return newResolutionError(KindField, name, instance)
	}

	return WriteField(instance, f, value)
}

// InvokeMethodBySignature locates the method called name with exactly the given parameter types
// and calls it once. Callers invoking the same method repeatedly should keep the descriptor
// returned by LocateMethod instead.
func InvokeMethodBySignature(instance any, name string, params []reflect.Type, args ...any) (any, error) {
	m := LocateMethod(instance, name, params...)
	if m == nil {
		return nil, newResolutionError(KindMethod, name, instance)
	}

	return InvokeMethod(instance, m, args...)
}

// InvokeMethodByName locates the method called name, whatever its parameters, and calls it once.
func InvokeMethodByName(instance any, name string, args ...any) (any, error) {
	m := LocateMethodByName(instance, name)
	if m == nil {
		return nil, newResolutionError(KindMethod, name, instance)
	}

	return InvokeMethod(instance, m, args...)
}
