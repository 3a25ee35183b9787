package reflectx

import (
	"fmt"
	"reflect"
)

// ValidateArguments resolves method through the embedding hierarchy of v and checks that args
// can be decoded into its parameters, the way Call would decode them. Decoded arguments
// implementing Validator are validated. Nothing is invoked.
func ValidateArguments(v any, method string, args ...string) error {
	m := LocateMethodByName(v, method)
	if m == nil {
		return newResolutionError(KindMethod, method, v)
	}

	_, err := decodeArguments(m, args)
	return err
}

// decodeArguments converts the string arguments of Call into the parameter types of m.
func decodeArguments(m *MethodDescriptor, args []string) ([]any, error) {
	n := len(m.In)
	if (!m.Variadic && len(args) != n) || (m.Variadic && len(args) < n-1) {
		return nil, fmt.Errorf(
			"%w: found %d but expected %d: validate %s",
			ErrIncorrectArgumentCount,
			len(args),
			n,
			m.Name,
		)
	}

	values := make([]any, len(args))
	for i, arg := range args {
		value, err := valueOf(arg, parameterType(m, i))
		if err != nil {
			return nil, fmt.Errorf("%w: validate %s, argument %d", err, m.Name, i)
		}

		if err := validate(value); err != nil {
			return nil, fmt.Errorf(
				"%w: '%s': validation failed: '%v': validate %s, argument %d",
				ErrInvalidArgumentValue,
				arg,
				err.Error(),
				m.Name,
				i,
			)
		}

		values[i] = value.Interface()
	}

	return values, nil
}

func validate(v reflect.Value) error {
	if validator, ok := v.Interface().(Validator); ok {
		return validator.Validate()
	}
	if v.CanAddr() {
		if validator, ok := v.Addr().Interface().(Validator); ok {
			return validator.Validate()
		}
	}
	return nil
}
