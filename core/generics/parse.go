package generics

import (
	"reflect"
	"strconv"
	"strings"
)

// typeArguments returns the source text of the type arguments of the instantiated generic type
// name, or false when name has no type argument list.
func typeArguments(name string) ([]string, bool) {
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return nil, false
	}

	return splitTopLevel(name[open+1 : len(name)-1]), true
}

// splitTopLevel splits s on the commas that are not nested in brackets, braces or parentheses.
func splitTopLevel(s string) []string {
	var (
		out   []string
		depth int
		start int
	)

	for i, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	return append(out, strings.TrimSpace(s[start:]))
}

// resolve turns the source text of a type into a type, composing pointers, slices, arrays,
// maps and channels of registered types.
func resolve(expr string) (reflect.Type, bool) {
	expr = strings.TrimSpace(expr)
	if t, ok := Lookup(expr); ok {
		return t, true
	}

	switch {
	case strings.HasPrefix(expr, "*"):
		return compose(expr[1:], reflect.PointerTo)
	case strings.HasPrefix(expr, "[]"):
		return compose(expr[2:], reflect.SliceOf)
	case strings.HasPrefix(expr, "["):
		return resolveArray(expr)
	case strings.HasPrefix(expr, "map["):
		return resolveMap(expr)
	case strings.HasPrefix(expr, "<-chan "):
		return compose(expr[len("<-chan "):], chanOf(reflect.RecvDir))
	case strings.HasPrefix(expr, "chan<- "):
		return compose(expr[len("chan<- "):], chanOf(reflect.SendDir))
	case strings.HasPrefix(expr, "chan "):
		return compose(expr[len("chan "):], chanOf(reflect.BothDir))
	}

	return nil, false
}

func compose(elem string, of func(reflect.Type) reflect.Type) (reflect.Type, bool) {
	t, ok := resolve(elem)
	if !ok {
		return nil, false
	}
	return of(t), true
}

func chanOf(dir reflect.ChanDir) func(reflect.Type) reflect.Type {
	return func(t reflect.Type) reflect.Type {
		return reflect.ChanOf(dir, t)
	}
}

func resolveArray(expr string) (reflect.Type, bool) {
	closing := strings.IndexByte(expr, ']')
	if closing < 0 {
		return nil, false
	}

	n, err := strconv.Atoi(expr[1:closing])
	if err != nil || n < 0 {
		return nil, false
	}

	return compose(expr[closing+1:], func(t reflect.Type) reflect.Type {
		return reflect.ArrayOf(n, t)
	})
}

func resolveMap(expr string) (reflect.Type, bool) {
	closing := matchingBracket(expr, len("map"))
	if closing < 0 {
		return nil, false
	}

	key, ok := resolve(expr[len("map["):closing])
	if !ok || !key.Comparable() {
		return nil, false
	}

	elem, ok := resolve(expr[closing+1:])
	if !ok {
		return nil, false
	}

	return reflect.MapOf(key, elem), true
}

// matchingBracket returns the index of the bracket closing the one at open.
func matchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
