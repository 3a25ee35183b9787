package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	chain := Chain(reflect.TypeFor[*Account]())
	require.Len(t, chain, 4)

	expected := []struct {
		typ      reflect.Type
		index    []int
		exported bool
	}{
		{reflect.TypeFor[Account](), nil, true},
		{reflect.TypeFor[Identity](), []int{0}, true},
		{reflect.TypeFor[ledger](), []int{1}, false},
		{reflect.TypeFor[Auditor](), []int{2}, true},
	}

	for i, want := range expected {
		level := chain[i]
		assert.Equal(t, want.typ, level.Type)
		assert.Equal(t, reflect.TypeFor[Account](), level.Owner)
		assert.Equal(t, len(want.index), len(level.Index))
		if len(want.index) > 0 {
			assert.Equal(t, want.index, level.Index)
		}
		assert.Equal(t, want.exported, level.Exported)
	}

	assert.True(t, chain[0].Root())
	assert.False(t, chain[1].Root())
}

func TestChainStopsOnCycles(t *testing.T) {
	chain := Chain(reflect.TypeFor[Node]())
	require.Len(t, chain, 1)
	require.Equal(t, reflect.TypeFor[Node](), chain[0].Type)
}

func TestChainOfNonStruct(t *testing.T) {
	require.Nil(t, Chain(nil))

	chain := Chain(reflect.TypeFor[int]())
	require.Len(t, chain, 1)
	require.Equal(t, reflect.TypeFor[int](), chain[0].Type)
}

func TestSupertype(t *testing.T) {
	super, ok := Supertype(reflect.TypeFor[*Account]())
	require.True(t, ok)
	require.Equal(t, reflect.TypeFor[Identity](), super)

	super, ok = Supertype(reflect.TypeFor[Wrapper]())
	require.True(t, ok)
	require.Equal(t, reflect.TypeFor[Identity](), super)

	_, ok = Supertype(reflect.TypeFor[Identity]())
	require.False(t, ok)

	_, ok = Supertype(reflect.TypeFor[string]())
	require.False(t, ok)
}

func TestDeclaredMethods(t *testing.T) {
	names := func(typ reflect.Type) []string {
		var out []string
		for _, m := range declaredMethods(typ) {
			out = append(out, m.Name)
		}
		return out
	}

	account := names(reflect.TypeFor[Account]())
	assert.Contains(t, account, "Describe", "overrides are declared by the embedding type")
	assert.Contains(t, account, "Deposit")
	assert.NotContains(t, account, "ID")
	assert.NotContains(t, account, "Entries")
	assert.NotContains(t, account, "Audit")

	assert.ElementsMatch(t, []string{"Describe", "ID"}, names(reflect.TypeFor[Identity]()))
	assert.ElementsMatch(t, []string{"Entries"}, names(reflect.TypeFor[ledger]()))
	assert.ElementsMatch(t, []string{"Audit"}, names(reflect.TypeFor[Auditor]()))
}
