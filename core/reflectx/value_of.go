package reflectx

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// valueOf converts a string representation of an argument to a reflect.Value of the specified type.
//
// The function follows these steps:
//  1. Checks if the target type is a string or a pointer to a string and handles these cases directly.
//  2. Decodes the string with BytesDecoder if the type implements it.
//  3. Attempts to unmarshal the string as JSON if it is valid JSON, with protojson for proto messages.
//     Note that simple values such as numbers, booleans, and null are also valid JSON.
//  4. Attempts to unmarshal the string using the encoding.TextUnmarshaler interface if implemented.
//  5. Attempts to unmarshal the string as a binary proto.Message if implemented.
//  6. Attempts to unmarshal the string using the encoding.BinaryUnmarshaler interface if implemented.
//  7. Returns an error if none of the above methods succeed.
func valueOf(s string, t reflect.Type) (reflect.Value, error) {
	argRaw := []byte(s)
	argPointer := t.Kind() == reflect.Pointer

	var (
		argValue reflect.Value
		outValue reflect.Value
	)
	if argPointer {
		argValue = reflect.New(t.Elem())
		outValue = argValue
	} else {
		argValue = reflect.New(t)
		outValue = argValue.Elem()
	}

	switch {
	case t.Kind() == reflect.String:
		outValue.SetString(s)
		return outValue, nil
	case argPointer && t.Elem().Kind() == reflect.String:
		argValue.Elem().SetString(s)
		return outValue, nil
	}

	argInterface := argValue.Interface()

	if decoder, ok := argInterface.(BytesDecoder); ok {
		if err := decoder.DecodeFromBytes(argRaw); err != nil {
			return outValue, fmt.Errorf("%w: '%s': for type '%s': '%v'", ErrInvalidArgumentValue, s, t, err)
		}
		return outValue, nil
	}

	if json.Valid(argRaw) {
		var err error
		if protoMessage, ok := argInterface.(proto.Message); ok {
			err = protojson.Unmarshal(argRaw, protoMessage)
		} else {
			err = json.Unmarshal(argRaw, argInterface)
		}
		if err == nil {
			return outValue, nil
		}
	}

	if unmarshaler, ok := argInterface.(encoding.TextUnmarshaler); ok && utf8.ValidString(s) {
		if err := unmarshaler.UnmarshalText(argRaw); err == nil {
			return outValue, nil
		}
	}

	if protoMessage, ok := argInterface.(proto.Message); ok {
		if err := proto.Unmarshal(argRaw, protoMessage); err == nil {
			return outValue, nil
		}
	}

	if unmarshaler, ok := argInterface.(encoding.BinaryUnmarshaler); ok {
		if err := unmarshaler.UnmarshalBinary(argRaw); err == nil {
			return outValue, nil
		}
	}

	return outValue, fmt.Errorf("%w: '%s': for type '%s'", ErrInvalidArgumentValue, s, t.String())
}
