// Package proxy maps the types of generated wrappers back to the types they wrap.
//
// A generated proxy embeds the type it stands for as its first field:
//
//	type RealService__Proxy struct {
//	    RealService
//	    calls int
//	}
//
// Whether a type is such a wrapper is decided by detectors. NameMarker matches a marker in the
// type name, MarkerInterface matches types implementing Proxy, and any predicate can be plugged
// in with DetectorFunc.
package proxy

import (
	"reflect"
	"sync"

	"github.com/anoideaopen/introspect/core/logger"
	"github.com/anoideaopen/introspect/core/reflectx"
	"github.com/anoideaopen/introspect/core/stringsx"
	"github.com/anoideaopen/introspect/internal/config"
)

// Proxy is implemented by wrapper types that declare themselves as proxies.
type Proxy interface {
	ProxyTarget()
}

var proxyType = reflect.TypeFor[Proxy]()

// Detector tells whether a type is a generated wrapper of another type.
type Detector interface {
	IsProxy(t reflect.Type) bool
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(t reflect.Type) bool

func (f DetectorFunc) IsProxy(t reflect.Type) bool {
	return f(t)
}

// NameMarker returns a Detector matching types whose name contains one of markers.
func NameMarker(markers ...string) Detector {
	return DetectorFunc(func(t reflect.Type) bool {
		return stringsx.ContainsAny(t.Name(), markers...)
	})
}

// MarkerInterface returns a Detector matching types implementing Proxy, with a value or a
// pointer receiver.
func MarkerInterface() Detector {
	return DetectorFunc(func(t reflect.Type) bool {
		if t.Kind() == reflect.Interface {
			return false
		}
		return t.Implements(proxyType) || reflect.PointerTo(t).Implements(proxyType)
	})
}

// Unwrapper resolves proxy types with a set of detectors.
type Unwrapper struct {
	detectors []Detector
}

// New creates an Unwrapper. A type is a proxy when any of detectors matches it.
func New(detectors ...Detector) *Unwrapper {
	return &Unwrapper{detectors: detectors}
}

// IsProxy reports whether one of the detectors matches t, pointers dereferenced.
func (u *Unwrapper) IsProxy(t reflect.Type) bool {
	base, _ := indirect(t)
	if base == nil {
		return false
	}

	for _, d := range u.detectors {
		if d.IsProxy(base) {
			return true
		}
	}
	return false
}

// RealType returns the type instance was declared with: the wrapped type when the concrete type
// of instance is a proxy, the concrete type otherwise. It returns nil for a nil instance.
func (u *Unwrapper) RealType(instance any) reflect.Type {
	if instance == nil {
		return nil
	}
	return u.Unwrap(reflect.TypeOf(instance))
}

// Unwrap returns the type wrapped by t when t is a proxy with an embedded field, keeping the
// pointer indirection of t: a *RealService__Proxy gives a *RealService. Any other type is
// returned unchanged.
func (u *Unwrapper) Unwrap(t reflect.Type) reflect.Type {
	if !u.IsProxy(t) {
		return t
	}

	base, depth := indirect(t)
	super, ok := reflectx.Supertype(base)
	if !ok {
		logger.Logger().WithField("type", t.String()).Warn("proxy type embeds nothing, leaving it as is")
		return t
	}

	for range depth {
		super = reflect.PointerTo(super)
	}

	logger.Logger().WithField("type", t.String()).Debugf("proxy unwrapped to %s", super)
	return super
}

var (
	defaultUnwrapper *Unwrapper
	defaultOnce      sync.Once
)

// Default returns the Unwrapper used by ResolveRealType: it detects the name marker set in the
// INTROSPECT_PROXY_MARKER environment variable ("__" by default) and the Proxy interface.
func Default() *Unwrapper {
	defaultOnce.Do(func() {
		defaultUnwrapper = New(NameMarker(config.FromEnv().ProxyMarker), MarkerInterface())
	})
	return defaultUnwrapper
}

// ResolveRealType is Default().RealType(instance).
func ResolveRealType(instance any) reflect.Type {
	return Default().RealType(instance)
}

func indirect(t reflect.Type) (reflect.Type, int) {
	depth := 0
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
		depth++
	}
	return t, depth
}
