package reflectx

import (
	"reflect"
	"unsafe"
)

// EnsureAccessible unlocks m for this package's accessors when it is unexported or reached
// through an unexported embedded field. Exported members are left alone, and a member already
// unlocked is not touched again, so the call is idempotent and safe to repeat concurrently.
//
// The override lives on the descriptor only. It changes nothing for other code, which keeps
// seeing the member with its declared visibility.
func EnsureAccessible(m Member) {
	if m == nil {
		return
	}

	flag := m.accessFlag()
	if flag == nil || m.Exported() || flag.Load() {
		return
	}
	flag.Store(true)
}

// unlock returns v with the read-only flag reflect puts on values obtained through unexported
// fields removed. v must be addressable.
func unlock(v reflect.Value) reflect.Value {
	if v.CanSet() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// granted reports whether the accessors may use m: exported members always, others once
// the override has been applied.
func granted(m Member) bool {
	return m.Exported() || m.Accessible()
}
