// Package generics reads the type arguments a struct binds to the generic type it embeds first,
// its direct supertype:
//
//	type Container[T any] struct {
//	    items []T
//	}
//
//	type Box struct {
//	    Container[int]
//	}
//
//	generics.FirstTypeArgument(reflect.TypeFor[Box]()) // int
//
// Go keeps no type parameter metadata at run time beyond the name of the instantiated type.
// Arguments are therefore taken from the TypeArguments method when the supertype has one, and
// otherwise parsed from that name and looked up among the registered types.
//
// Extraction never fails. When an argument cannot be determined the Unknown sentinel is returned
// and a warning is logged.
package generics

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/introspect/core/logger"
	"github.com/anoideaopen/introspect/core/reflectx"
	"github.com/sirupsen/logrus"
)

// Unknown is returned when a type argument cannot be determined.
var Unknown = reflect.TypeFor[any]()

// ErrProviderPanic is logged when a TypeArguments method panics.
var ErrProviderPanic = errors.New("type argument provider panicked")

// Provider is implemented by generic types that report their own type arguments.
//
//	type Container[T any] struct{}
//
//	func (Container[T]) TypeArguments() []reflect.Type {
//	    return []reflect.Type{reflect.TypeFor[T]()}
//	}
type Provider interface {
	TypeArguments() []reflect.Type
}

var providerType = reflect.TypeFor[Provider]()

// FirstTypeArgument returns the first type argument bound to the direct supertype of t.
func FirstTypeArgument(t reflect.Type) reflect.Type {
	return TypeArgument(t, 0)
}

// TypeArgument returns the type argument at index bound to the direct supertype of t, the type
// of its first embedded field. Only that supertype is inspected, not the whole hierarchy.
func TypeArgument(t reflect.Type, index int) reflect.Type {
	log := logger.Logger().WithFields(logrus.Fields{
		"type":  typeName(t),
		"index": index,
	})

	super, ok := reflectx.Supertype(t)
	if !ok {
		log.Warn("type has no supertype, type argument is unknown")
		return Unknown
	}
	log = log.WithField("supertype", super.String())

	if args, ok, err := provided(super); ok {
		if err != nil {
			log.WithError(err).Warn("type argument provider failed")
			return Unknown
		}
		if index < 0 || index >= len(args) {
			log.Warnf("type argument index out of range [0, %d)", len(args))
			return Unknown
		}
		if args[index] == nil {
			log.Warn("supertype provides no type for the argument")
			return Unknown
		}
		return args[index]
	}

	args, ok := typeArguments(super.Name())
	if !ok {
		log.Warn("supertype is not an instantiated generic type")
		return Unknown
	}
	if index < 0 || index >= len(args) {
		log.Warnf("type argument index out of range [0, %d)", len(args))
		return Unknown
	}

	arg, ok := resolve(args[index])
	if !ok {
		log.WithField("argument", args[index]).Warn("type argument is not a registered type")
		return Unknown
	}

	return arg
}

// provided asks super for its type arguments when it implements Provider. The provider is called
// on a zero value; a panic it raises is returned as err.
func provided(super reflect.Type) (args []reflect.Type, ok bool, err error) {
	var p Provider
	switch {
	case super.Kind() == reflect.Interface:
		return nil, false, nil
	case super.Implements(providerType):
		p = reflect.Zero(super).Interface().(Provider) //nolint:forcetypeassert
	case reflect.PointerTo(super).Implements(providerType):
		p = reflect.New(super).Interface().(Provider) //nolint:forcetypeassert
	default:
		return nil, false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			args, err = nil, fmt.Errorf("%w: %v", ErrProviderPanic, r)
		}
	}()

	return p.TypeArguments(), true, nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
