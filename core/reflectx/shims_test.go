package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func (c *counter) inc(by int) int {
	c.n += by
	return c.n
}

func (c counter) peek() int { return c.n }

func TestRegisterMethod(t *testing.T) {
	typ := reflect.TypeFor[counter]()

	require.NoError(t, RegisterMethod(typ, "inc", (*counter).inc))
	t.Cleanup(func() { unregisterMethod(typ, "inc") })

	require.NoError(t, RegisterMethod(reflect.PointerTo(typ), "peek", counter.peek))
	t.Cleanup(func() { unregisterMethod(typ, "peek") })

	c := &counter{}

	got, err := InvokeMethodByName(c, "inc", 2)
	require.NoError(t, err)
	require.Equal(t, 2, got)

	got, err = InvokeMethodByName(c, "peek")
	require.NoError(t, err)
	require.Equal(t, 2, got)

	m := LocateMethod(c, "inc", reflect.TypeFor[int]())
	require.NotNil(t, m)
	require.True(t, m.Shim())
	require.False(t, m.Exported())
	require.True(t, m.Accessible())
}

func TestRegisterMethodTwice(t *testing.T) {
	typ := reflect.TypeFor[counter]()

	require.NoError(t, RegisterMethod(typ, "inc", (*counter).inc))
	t.Cleanup(func() { unregisterMethod(typ, "inc") })

	require.ErrorIs(t, RegisterMethod(typ, "inc", (*counter).inc), ErrShimAlreadyRegistered)
	require.Panics(t, func() { MustRegisterMethod(typ, "inc", (*counter).inc) })
}

func TestRegisterInvalidMethod(t *testing.T) {
	typ := reflect.TypeFor[counter]()

	tests := []struct {
		name     string
		receiver reflect.Type
		method   string
		fn       any
	}{
		{"nil receiver", nil, "inc", (*counter).inc},
		{"empty name", typ, "", (*counter).inc},
		{"not a function", typ, "inc", 42},
		{"nil function", typ, "inc", (func(*counter))(nil)},
		{"no parameters", typ, "inc", func() {}},
		{"receiver of another type", typ, "inc", func(*Account) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, RegisterMethod(tt.receiver, tt.method, tt.fn), ErrInvalidShim)
		})
	}

	require.Empty(t, shimsOf(typ))
}
