package shimgen

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"
)

var (
	ErrLoadPackage   = errors.New("failed to load package")
	ErrUnknownType   = errors.New("unknown type")
	ErrNothingToShim = errors.New("no unexported methods to register")
)

// Method is an unexported method to register.
type Method struct {
	Name    string
	Pointer bool // declared with a pointer receiver
}

// Type is a named type of the package and its unexported methods.
type Type struct {
	Name    string
	Methods []Method
}

// File is the content of a generated registration file.
type File struct {
	Package string
	Types   []Type
}

// Load type-checks the package in dir and collects the unexported methods of its named,
// non-generic types. When only is not empty, the types are restricted to those names and each
// of them must exist.
func Load(ctx context.Context, dir string, only []string) (*File, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedFiles,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadPackage, dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("%w: %s: found %d packages", ErrLoadPackage, dir, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadPackage, dir, pkg.Errors[0])
	}

	return Collect(pkg.Types, only)
}

// Collect builds the File of a type-checked package.
func Collect(pkg *types.Package, only []string) (*File, error) {
	scope := pkg.Scope()

	for _, name := range only {
		if _, ok := scope.Lookup(name).(*types.TypeName); !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownType, pkg.Path(), name)
		}
	}

	f := &File{Package: pkg.Name()}
	for _, name := range scope.Names() {
		if len(only) > 0 && !slices.Contains(only, name) {
			continue
		}

		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}

		named, ok := obj.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		if t := collectType(named); len(t.Methods) > 0 {
			f.Types = append(f.Types, t)
		}
	}

	if len(f.Types) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNothingToShim, pkg.Path())
	}

	return f, nil
}

func collectType(named *types.Named) Type {
	t := Type{Name: named.Obj().Name()}

	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		if fn.Exported() || fn.Name() == "_" {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Recv() == nil {
			continue
		}
		_, pointer := sig.Recv().Type().(*types.Pointer)

		t.Methods = append(t.Methods, Method{Name: fn.Name(), Pointer: pointer})
	}

	slices.SortFunc(t.Methods, func(a, b Method) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	return t
}
