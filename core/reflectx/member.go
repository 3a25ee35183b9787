package reflectx

import (
	"fmt"
	"reflect"
	"slices"
	"sync/atomic"
)

// Member is a located field or method.
type Member interface {
	// MemberName returns the name the member was located by.
	MemberName() string
	// DeclaringLevel returns the level of the chain that declares the member.
	DeclaringLevel() *Level
	// Exported reports whether the member can be used without the accessibility override.
	Exported() bool
	// Accessible reports whether the override has been applied.
	Accessible() bool

	accessFlag() *atomic.Bool
}

// FieldDescriptor identifies a struct field and the type that declares it.
type FieldDescriptor struct {
	Name      string
	Type      reflect.Type
	Declaring *Level
	Index     []int // full index path from the root struct, the declaring level path included

	exported   bool
	accessible atomic.Bool
}

func newFieldDescriptor(level *Level, index int) *FieldDescriptor {
	sf := level.Type.Field(index)
	return &FieldDescriptor{
		Name:      sf.Name,
		Type:      sf.Type,
		Declaring: level,
		Index:     append(slices.Clone(level.Index), index),
		exported:  level.Exported && sf.IsExported(),
	}
}

func (f *FieldDescriptor) MemberName() string { return f.Name }
func (f *FieldDescriptor) DeclaringLevel() *Level { return f.Declaring }
func (f *FieldDescriptor) Exported() bool { return f != nil && f.exported }
func (f *FieldDescriptor) Accessible() bool { return f != nil && f.accessible.Load() }
func (f *FieldDescriptor) accessFlag() *atomic.Bool {
	if f == nil {
		return nil
	}
	return &f.accessible
}

func (f *FieldDescriptor) String() string {
	return fmt.Sprintf("%s.%s", f.Declaring.Type, f.Name)
}

// MethodDescriptor identifies a method, or a registered shim standing in for an unexported
// method, and the type that declares it.
type MethodDescriptor struct {
	Name      string
	Declaring *Level
	In        []reflect.Type // parameter types, receiver excluded
	Out       []reflect.Type
	Variadic  bool

	method     reflect.Method // zero when shim is set
	shim       *shim
	exported   bool
	accessible atomic.Bool
}

func newMethodDescriptor(level *Level, m reflect.Method) *MethodDescriptor {
	// Methods of interface types carry no receiver in their signature.
	skip := 1
	if level.Type.Kind() == reflect.Interface {
		skip = 0
	}

	in, out, variadic := signature(m.Type, skip)
	return &MethodDescriptor{
		Name:      m.Name,
		Declaring: level,
		In:        in,
		Out:       out,
		Variadic:  variadic,
		method:    m,
		exported:  level.Exported,
	}
}

func newShimDescriptor(level *Level, s *shim) *MethodDescriptor {
	in, out, variadic := signature(s.fn.Type(), 1)
	return &MethodDescriptor{
		Name:      s.name,
		Declaring: level,
		In:        in,
		Out:       out,
		Variadic:  variadic,
		shim:      s,
	}
}

func (m *MethodDescriptor) MemberName() string { return m.Name }
func (m *MethodDescriptor) DeclaringLevel() *Level { return m.Declaring }
func (m *MethodDescriptor) Exported() bool { return m != nil && m.exported }
func (m *MethodDescriptor) Accessible() bool { return m != nil && m.accessible.Load() }
func (m *MethodDescriptor) accessFlag() *atomic.Bool {
	if m == nil {
		return nil
	}
	return &m.accessible
}

// Shim reports whether the method is served by a registered shim.
func (m *MethodDescriptor) Shim() bool {
	return m.shim != nil
}

func (m *MethodDescriptor) String() string {
	return fmt.Sprintf("%s.%s", m.Declaring.Type, m.Name)
}

// matches reports whether the parameter types are exactly params.
func (m *MethodDescriptor) matches(params []reflect.Type) bool {
	return slices.Equal(m.In, params)
}

func signature(ft reflect.Type, skip int) (in, out []reflect.Type, variadic bool) {
	in = make([]reflect.Type, 0, ft.NumIn()-skip)
	for i := skip; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}

	out = make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		out = append(out, ft.Out(i))
	}

	return in, out, ft.IsVariadic()
}
