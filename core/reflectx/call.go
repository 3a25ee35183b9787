package reflectx

import (
	"context"
	"reflect"

	"github.com/anoideaopen/introspect/core/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// Call invokes the method called method on v, converting the string arguments into the
// parameter types of the method. The method is resolved through the embedding hierarchy of v,
// unexported methods with a registered shim included, and the call is normalized like InvokeMethod.
//
// Arguments are decoded with BytesDecoder, JSON (protojson for proto messages),
// encoding.TextUnmarshaler, binary proto and encoding.BinaryUnmarshaler, in that order; string
// parameters receive the argument verbatim. Decoded values implementing Validator are validated
// before the call.
//
// Every call is traced with a span named after the method, on the tracer provider installed
// globally through otel.SetTracerProvider.
//
// Example:
//
//	type Account struct {
//	    balance int64
//	}
//
//	func (a *Account) Deposit(amount int64) int64 {
//	    a.balance += amount
//	    return a.balance
//	}
//
//	func main() {
//	    acc := &Account{}
//	    out, err := reflectx.Call(context.Background(), acc, "Deposit", "100")
//	    if err != nil {
//	        log.Fatalf("Error invoking method: %v", err)
//	    }
//	    fmt.Println(out) // Output: 100
//	}
func Call(ctx context.Context, v any, method string, args ...string) (result any, err error) {
	_, span := telemetry.StartSpan(ctx, "reflectx.Call "+method,
		trace.WithAttributes(
			telemetry.Member(method),
			telemetry.TargetType(reflect.TypeOf(v)),
			telemetry.ArgCount(len(args)),
		),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	m := LocateMethodByName(v, method)
	if m == nil {
		return nil, newResolutionError(KindMethod, method, v)
	}
	span.SetAttributes(
		telemetry.DeclaringType(m.Declaring.Type),
		telemetry.Shim(m.Shim()),
	)

	values, err := decodeArguments(m, args)
	if err != nil {
		return nil, invalidInvocation(m.String(), "cannot decode arguments", err)
	}

	return InvokeMethod(v, m, values...)
}
