package reflectx

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/introspect/core/logger"
)

var errorType = reflect.TypeFor[error]()

// nilDescriptor names the member of a resolution error caused by a nil descriptor, typically
// the unchecked result of a failed lookup whose searched name is no longer known.
const nilDescriptor = "<nil descriptor>"

// ReadField returns the current value of the field f of instance. f must have been located on
// instance or on a value of the same type.
//
// A descriptor that was never unlocked cannot be produced by LocateField; if one shows up anyway
// the access failure is logged and a nil value is returned without error.
func ReadField(instance any, f *FieldDescriptor) (any, error) {
	if f == nil {
		return nil, newResolutionError(KindField, nilDescriptor, instance)
	}

	if !granted(f) {
		logger.Logger().WithField("member", f.String()).Error("impossible access failure: field is not accessible")
		return nil, nil
	}

	root, err := targetValue(instance, f.Declaring.Owner, f.String(), false)
	if err != nil {
		return nil, err
	}

	fv, err := walk(root, f.Index, !f.Exported(), f.String())
	if err != nil {
		return nil, err
	}

	return fv.Interface(), nil
}

// WriteField sets the field f of instance to value. instance must be a non-nil pointer so that
// the write is visible to the caller; value must be assignable to the field type, nil standing
// for the zero value of nillable types.
func WriteField(instance any, f *FieldDescriptor, value any) error {
	if f == nil {
		return newResolutionError(KindField, nilDescriptor, instance)
	}

	if !granted(f) {
		logger.Logger().WithField("member", f.String()).Error("impossible access failure: field is not accessible")
		return nil
	}

	root, err := targetValue(instance, f.Declaring.Owner, f.String(), true)
	if err != nil {
		return err
	}

	fv, err := walk(root, f.Index, !f.Exported(), f.String())
	if err != nil {
		return err
	}

	v, err := assignable(value, f.Type)
	if err != nil {
		return invalidInvocation(f.String(), "cannot assign value", err)
	}

	if !fv.CanSet() {
		return invalidInvocation(f.String(), "field cannot be set", nil)
	}
	fv.Set(v)

	return nil
}

// InvokeMethod calls m on instance with args.
//
// An instance passed by value is copied: a method with a pointer receiver stored inside that copy
// is rejected, as Go rejects it on a non-addressable value.
//
// The outcome is normalized as follows: no results gives nil, one result gives that value and
// several give a []any. A trailing error result is not part of the outcome: when it is non-nil it
// is returned as is, so that callers see exactly the error produced by the method. A panic raised
// by the method with an error value is returned the same way.
func InvokeMethod(instance any, m *MethodDescriptor, args ...any) (any, error) {
	if m == nil {
		return nil, newResolutionError(KindMethod, nilDescriptor, instance)
	}

	member := m.String()
	if !granted(m) {
		return nil, invalidInvocation(member, "access denied", nil)
	}

	root, err := targetValue(instance, m.Declaring.Owner, member, false)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(instance).Kind() != reflect.Pointer && needsAddress(m) {
		return nil, invalidInvocation(member, "pointer receiver on a target passed by value, pass a pointer", nil)
	}

	recv, err := walk(root, m.Declaring.Index, !m.Exported(), member)
	if err != nil {
		return nil, err
	}
	if recv, err = deref(recv, member); err != nil {
		return nil, err
	}

	in, spread, err := arguments(m, args)
	if err != nil {
		return nil, err
	}

	var fn reflect.Value
	switch {
	case m.shim != nil:
		fn = m.shim.fn
		if m.shim.pointer {
			recv = recv.Addr()
		}
		in = append([]reflect.Value{recv}, in...)
	case recv.Kind() == reflect.Interface:
		fn = recv.MethodByName(m.Name)
	default:
		fn = m.method.Func
		in = append([]reflect.Value{recv.Addr()}, in...)
	}

	out, err := call(fn, in, spread, member)
	if err != nil {
		return nil, err
	}

	return results(out, m.Out)
}

// needsAddress reports whether m has a pointer receiver stored in the root value itself, that is
// reached from the root without crossing a pointer or an interface.
func needsAddress(m *MethodDescriptor) bool {
	switch {
	case m.shim != nil:
		if !m.shim.pointer {
			return false
		}
	case m.Declaring.Type.Kind() == reflect.Interface:
		return false
	default:
		if _, ok := m.Declaring.Type.MethodByName(m.Name); ok {
			return false
		}
	}

	t := m.Declaring.Owner
	for _, i := range m.Declaring.Index {
		ft := t.Field(i).Type
		if ft.Kind() == reflect.Pointer || ft.Kind() == reflect.Interface {
			return false
		}
		t = ft
	}

	return true
}

// callFunction is the runtime name of call, the frame panics of reflect itself unwind to.
const callFunction = "github.com/anoideaopen/introspect/core/reflectx.call"

func call(fn reflect.Value, in []reflect.Value, spread bool, member string) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, normalizePanic(member, r, raisedByCallee())
		}
	}()

	if spread {
		return fn.CallSlice(in), nil
	}
	return fn.Call(in), nil
}

func results(out []reflect.Value, types []reflect.Type) (any, error) {
	if n := len(types); n > 0 && types[n-1] == errorType {
		if errValue := out[n-1]; !errValue.IsNil() {
			return nil, errValue.Interface().(error) //nolint:forcetypeassert
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		values := make([]any, len(out))
		for i, v := range out {
			values[i] = v.Interface()
		}
		return values, nil
	}
}

// arguments converts args to the parameter types of m. spread is set when the last argument
// is a slice passed as the variadic parameter as a whole.
func arguments(m *MethodDescriptor, args []any) (in []reflect.Value, spread bool, err error) {
	n := len(m.In)
	if m.Variadic {
		if len(args) < n-1 {
			return nil, false, invalidInvocation(m.String(), "wrong number of arguments",
				fmt.Errorf("%w: found %d but expected at least %d", ErrIncorrectArgumentCount, len(args), n-1))
		}
	} else if len(args) != n {
		return nil, false, invalidInvocation(m.String(), "wrong number of arguments",
			fmt.Errorf("%w: found %d but expected %d", ErrIncorrectArgumentCount, len(args), n))
	}

	if m.Variadic && len(args) == n {
		if rest, err := assignable(args[n-1], m.In[n-1]); err == nil && args[n-1] != nil {
			in = make([]reflect.Value, 0, n)
			for i := 0; i < n-1; i++ {
				arg, err := assignable(args[i], m.In[i])
				if err != nil {
					return nil, false, invalidInvocation(m.String(), fmt.Sprintf("argument %d", i), err)
				}
				in = append(in, arg)
			}
			return append(in, rest), true, nil
		}
	}

	in = make([]reflect.Value, 0, len(args))
	for i, arg := range args {
		t := parameterType(m, i)
		v, err := assignable(arg, t)
		if err != nil {
			return nil, false, invalidInvocation(m.String(), fmt.Sprintf("argument %d", i), err)
		}
		in = append(in, v)
	}

	return in, false, nil
}

func parameterType(m *MethodDescriptor, i int) reflect.Type {
	last := len(m.In) - 1
	if m.Variadic && i >= last {
		return m.In[last].Elem()
	}
	return m.In[i]
}

// assignable returns value as a reflect.Value of type t. nil stands for the zero value of
// pointers, interfaces, maps, slices, channels and functions.
func assignable(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil for type '%s'", ErrInvalidArgumentValue, t)
		}
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: '%s' is not assignable to '%s'", ErrInvalidArgumentValue, v.Type(), t)
	}

	return v, nil
}

// targetValue returns the addressable value instance points to, checking that it is of the type
// the member was located on. A value passed directly is copied, which is only good for reads
// and value receiver calls.
func targetValue(instance any, owner reflect.Type, member string, write bool) (reflect.Value, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() {
		return reflect.Value{}, invalidInvocation(member, "nil target", nil)
	}

	if t := indirectType(v.Type()); t != owner {
		return reflect.Value{}, invalidInvocation(member, fmt.Sprintf("target of type '%s' does not declare the member", t), nil)
	}

	if v.Kind() != reflect.Pointer {
		if write {
			return reflect.Value{}, invalidInvocation(member, "target is not addressable, pass a pointer", nil)
		}

		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		return cp, nil
	}

	return deref(v, member)
}

// walk follows the field index path from v, unlocking every step when needed.
func walk(v reflect.Value, index []int, unlocked bool, member string) (reflect.Value, error) {
	for _, i := range index {
		var err error
		if v, err = deref(v, member); err != nil {
			return reflect.Value{}, err
		}
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, invalidInvocation(member, fmt.Sprintf("'%s' is not a struct", v.Type()), nil)
		}

		v = v.Field(i)
		if unlocked {
			v = unlock(v)
		}
	}

	return v, nil
}

func deref(v reflect.Value, member string) (reflect.Value, error) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, invalidInvocation(member, fmt.Sprintf("nil pointer of type '%s' on the path", v.Type()), nil)
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Interface && v.IsNil() {
		return reflect.Value{}, invalidInvocation(member, fmt.Sprintf("nil interface '%s' on the path", v.Type()), nil)
	}

	return v, nil
}

// IsCalleeError reports whether err is neither a resolution nor a mechanism failure, that is
// an error produced by the invoked method itself.
func IsCalleeError(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrMemberNotFound) &&
		!errors.Is(err, ErrInvalidInvocation) &&
		!errors.Is(err, ErrUnexpected)
}
