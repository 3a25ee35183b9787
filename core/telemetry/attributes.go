package telemetry

import (
	"reflect"

	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys set on invocation spans.
const (
	KeyMember        = attribute.Key("introspect.member")
	KeyDeclaringType = attribute.Key("introspect.declaring_type")
	KeyTargetType    = attribute.Key("introspect.target_type")
	KeyArgCount      = attribute.Key("introspect.arg_count")
	KeyShim          = attribute.Key("introspect.shim")
	KeyInvocationID  = attribute.Key("introspect.invocation_id")
)

func Member(name string) attribute.KeyValue {
	return KeyMember.String(name)
}

func DeclaringType(t reflect.Type) attribute.KeyValue {
	return KeyDeclaringType.String(typeString(t))
}

func TargetType(t reflect.Type) attribute.KeyValue {
	return KeyTargetType.String(typeString(t))
}

func ArgCount(n int) attribute.KeyValue {
	return KeyArgCount.Int(n)
}

func Shim(v bool) attribute.KeyValue {
	return KeyShim.Bool(v)
}

func InvocationID(id string) attribute.KeyValue {
	return KeyInvocationID.String(id)
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
