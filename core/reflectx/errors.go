package reflectx

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

// Error types.
var (
	// ErrMemberNotFound is returned when a field or method is not declared anywhere in the
	// embedding hierarchy of the target.
	ErrMemberNotFound = errors.New("member not found")

	// ErrIllegalArgument is matched by resolution failures of the field accessors, which treat
	// an unknown field name as an illegal argument of the call.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrInvalidInvocation is returned when the reflective mechanism itself rejects a call:
	// wrong argument shape, access denied, a nil embedded pointer on the path or a target
	// that cannot be written.
	ErrInvalidInvocation = errors.New("invalid invocation")

	// ErrUnexpected is returned for failures that fit no other kind.
	ErrUnexpected = errors.New("unexpected reflective failure")

	ErrIncorrectArgumentCount = errors.New("incorrect number of arguments")
	ErrInvalidArgumentValue   = errors.New("invalid argument value")
)

// MemberKind tells fields and methods apart in error messages.
type MemberKind int

const (
	KindField MemberKind = iota
	KindMethod
)

func (k MemberKind) String() string {
	if k == KindField {
		return "field"
	}
	return "method"
}

// MemberResolutionError reports a member name that could not be resolved on a target.
type MemberResolutionError struct {
	Kind   MemberKind
	Name   string
	Target string
}

func (e *MemberResolutionError) Error() string {
	return fmt.Sprintf("%v: could not find %s [%s] on target [%s]", ErrMemberNotFound, e.Kind, e.Name, e.Target)
}

// Is matches ErrMemberNotFound and, for fields, ErrIllegalArgument.
func (e *MemberResolutionError) Is(target error) bool {
	return target == ErrMemberNotFound || (target == ErrIllegalArgument && e.Kind == KindField)
}

func newResolutionError(kind MemberKind, name string, target any) error {
	return &MemberResolutionError{Kind: kind, Name: name, Target: describe(target)}
}

// InvalidInvocationError is returned when reflect refuses to perform an access or a call.
type InvalidInvocationError struct {
	Member string
	Reason string
	cause  error
}

func (e *InvalidInvocationError) Error() string {
	msg := fmt.Sprintf("%v: %s: %s", ErrInvalidInvocation, e.Member, e.Reason)
	if e.cause != nil {
		msg += fmt.Sprintf(": '%v'", e.cause)
	}
	return msg
}

func (e *InvalidInvocationError) Is(target error) bool {
	return target == ErrInvalidInvocation
}

func (e *InvalidInvocationError) Unwrap() error {
	return e.cause
}

func invalidInvocation(member, reason string, cause error) error {
	return &InvalidInvocationError{Member: member, Reason: reason, cause: cause}
}

// UnexpectedReflectiveError wraps a failure that is neither a mechanism nor a callee error.
type UnexpectedReflectiveError struct {
	Member string
	cause  error
}

func (e *UnexpectedReflectiveError) Error() string {
	return fmt.Sprintf("%v: %s: '%v'", ErrUnexpected, e.Member, e.cause)
}

func (e *UnexpectedReflectiveError) Is(target error) bool {
	return target == ErrUnexpected
}

func (e *UnexpectedReflectiveError) Unwrap() error {
	return e.cause
}

// PanicError carries a panic value that is not an error.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// normalizePanic classifies a value recovered while calling member. callee tells whether the
// panic was raised once the invoked code was running.
//
//   - a panic raised before, by reflect itself, is a failure of the mechanism and becomes an
//     InvalidInvocationError;
//   - an error raised by the callee is returned unchanged;
//   - anything else becomes an UnexpectedReflectiveError.
func normalizePanic(member string, recovered any, callee bool) error {
	if !callee {
		cause, ok := recovered.(error)
		if !ok {
			cause = PanicError{Value: recovered}
		}
		return invalidInvocation(member, "rejected by reflect", cause)
	}

	if err, ok := recovered.(error); ok {
		return err
	}

	return &UnexpectedReflectiveError{Member: member, cause: PanicError{Value: recovered}}
}

// raisedByCallee reports whether the panic being recovered by the calling deferred function left
// code outside the runtime and reflect packages before reaching call, that is whether the
// invoked code had started running. It must be called directly from that deferred function.
func raisedByCallee() bool {
	pcs := make([]uintptr, 32)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(2, pcs)])

	panicking := false
	for {
		f, more := frames.Next()
		switch {
		case f.Function == "runtime.gopanic":
			panicking = true
		case !panicking:
		case strings.HasPrefix(f.Function, "runtime."), strings.HasPrefix(f.Function, "reflect."):
		default:
			return f.Function != callFunction
		}
		if !more {
			return true
		}
	}
}

// describe renders the target of a failed lookup.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "<nil>"
	case proto.Message:
		return fmt.Sprintf("%T{%s}", v, prototext.MarshalOptions{}.Format(t))
	case fmt.Stringer:
		return fmt.Sprintf("%T(%s)", v, safeString(t))
	}
	return fmt.Sprintf("%T%+v", v, v)
}

func safeString(s fmt.Stringer) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("!panic(%v)", r)
		}
	}()
	return s.String()
}
