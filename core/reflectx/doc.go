// Package reflectx locates, unlocks and accesses fields and methods of Go values by name,
// whatever their visibility, climbing the embedding hierarchy of the value as needed.
//
// Hierarchy:
//
// Go has no inheritance, but embedding gives every struct a chain of "supertypes": the types of
// its embedded fields, their own embedded fields and so on. Chain returns that chain, the
// concrete type first, breadth-first and in declaration order, which is the order Go uses to
// promote fields and methods. Every member is reported against the level that declares it:
//
//	type Base struct {
//	    id string
//	}
//
//	func (b *Base) ID() string { return b.id }
//
//	type Account struct {
//	    Base
//	    balance int64
//	}
//
//	f := reflectx.LocateField(&Account{}, "id")  // f.Declaring.Type is Base
//	m := reflectx.LocateMethodByName(&Account{}, "ID") // m.Declaring.Type is Base
//
// Locating never fails: a name that no level declares gives nil.
//
// Accessibility:
//
// reflect refuses to read or write unexported fields and values reached through unexported
// embedded fields. Located members are unlocked with EnsureAccessible, which marks the
// descriptor so that ReadField, WriteField and InvokeMethod bypass that restriction for it.
// Nothing changes for code that does not go through the descriptor.
//
// Unexported methods are not visible to reflect at all. They can be made available by
// registering a shim, a method expression produced at compile time:
//
//	func init() {
//	    reflectx.MustRegisterMethod(reflect.TypeFor[Account](), "withdraw", (*Account).withdraw)
//	}
//
// The shimgen command generates such registrations for a whole package.
//
// Invocation:
//
// ReadField, WriteField and InvokeMethod perform the access with a located descriptor. The
// façade functions GetFieldValue, SetFieldValue, InvokeGetter, InvokeSetter,
// InvokeMethodByName and InvokeMethodBySignature locate and access in a single call. Call does
// the same with string arguments decoded into the parameter types, and Router keeps the
// descriptors of every method of a value for repeated calls.
//
// Error Handling:
//
// Failures are reported with a small taxonomy:
//
//   - ErrMemberNotFound (MemberResolutionError): the name is declared nowhere in the hierarchy.
//     Field lookups also match ErrIllegalArgument.
//   - ErrInvalidInvocation (InvalidInvocationError): reflect rejected the access or the call,
//     for instance because of a wrong argument count or type, a nil embedded pointer or a
//     target that is not a pointer when writing.
//   - errors produced by the invoked method, returned or raised with panic, are returned
//     unchanged; IsCalleeError tells them apart.
//   - ErrUnexpected (UnexpectedReflectiveError): anything else, such as a panic with a value
//     that is not an error, kept in a PanicError.
package reflectx
