package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrShimAlreadyRegistered is returned when a shim is registered twice for the same type and name.
	ErrShimAlreadyRegistered = errors.New("shim has already been registered")

	// ErrInvalidShim is returned when a shim is not a function taking the receiver first.
	ErrInvalidShim = errors.New("invalid shim")
)

// shim is a function standing in for an unexported method. Unexported methods are invisible to
// reflect, so they can only be reached through functions produced at compile time, typically
// method expressions such as (*T).name emitted by shimgen.
type shim struct {
	name    string
	fn      reflect.Value
	pointer bool // the receiver parameter is *T rather than T
}

var shims = struct {
	sync.RWMutex
	byType map[reflect.Type][]*shim
}{byType: make(map[reflect.Type][]*shim)}

// RegisterMethod registers fn as the implementation of the method called name declared on
// receiver. fn must be a function whose first parameter is receiver or a pointer to it:
//
//	func init() {
//	    _ = reflectx.RegisterMethod(reflect.TypeFor[Account](), "withdraw", (*Account).withdraw)
//	}
//
// Shims take part in method lookups at the level of the receiver type, after the exported
// methods that level declares.
func RegisterMethod(receiver reflect.Type, name string, fn any) error {
	receiver = indirectType(receiver)
	if receiver == nil || name == "" {
		return fmt.Errorf("%w: empty receiver or name", ErrInvalidShim)
	}

	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fmt.Errorf("%w: %s.%s: %T is not a function", ErrInvalidShim, receiver, name, fn)
	}

	ft := fv.Type()
	if ft.NumIn() == 0 {
		return fmt.Errorf("%w: %s.%s: no receiver parameter", ErrInvalidShim, receiver, name)
	}

	s := &shim{name: name, fn: fv}
	switch first := ft.In(0); {
	case first == receiver:
	case first.Kind() == reflect.Pointer && first.Elem() == receiver:
		s.pointer = true
	default:
		return fmt.Errorf("%w: %s.%s: first parameter %s is not the receiver", ErrInvalidShim, receiver, name, first)
	}

	shims.Lock()
	defer shims.Unlock()

	for _, registered := range shims.byType[receiver] {
		if registered.name == name {
			return fmt.Errorf("%w: %s.%s", ErrShimAlreadyRegistered, receiver, name)
		}
	}
	shims.byType[receiver] = append(shims.byType[receiver], s)

	return nil
}

// MustRegisterMethod is like RegisterMethod but panics on error. Generated code uses it.
func MustRegisterMethod(receiver reflect.Type, name string, fn any) {
	if err := RegisterMethod(receiver, name, fn); err != nil {
		panic(err)
	}
}

func shimsOf(t reflect.Type) []*shim {
	shims.RLock()
	defer shims.RUnlock()

	return shims.byType[t]
}
