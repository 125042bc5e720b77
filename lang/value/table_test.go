package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxvm/lox/lang/value"
)

func TestTableSetGetDelete(t *testing.T) {
	tab := value.NewTable()
	a := value.NewString("a")
	b := value.NewString("b")

	require.True(t, tab.Set(a, value.Number(1)))
	require.False(t, tab.Set(a, value.Number(2))) // overwrite, not new
	v, ok := tab.Get(a)
	require.True(t, ok)
	require.Equal(t, float64(2), v.AsNumber())

	_, ok = tab.Get(b)
	require.False(t, ok)

	require.True(t, tab.Set(b, value.Number(3)))
	require.True(t, tab.Delete(a))
	_, ok = tab.Get(a)
	require.False(t, ok)

	// b must still be reachable despite the tombstone left by deleting a.
	v, ok = tab.Get(b)
	require.True(t, ok)
	require.Equal(t, float64(3), v.AsNumber())

	require.False(t, tab.Delete(a)) // already gone
}

func TestTableGrowsAndSurvivesResize(t *testing.T) {
	tab := value.NewTable()
	keys := make([]*value.String, 0, 64)
	for i := 0; i < 64; i++ {
		k := value.NewString(string(rune('a' + (i % 26))) + string(rune('A'+(i/26))))
		keys = append(keys, k)
		tab.Set(k, value.Number(float64(i)))
	}
	for i, k := range keys {
		v, ok := tab.Get(k)
		require.True(t, ok)
		require.Equal(t, float64(i), v.AsNumber())
	}
}

func TestTableFindString(t *testing.T) {
	tab := value.NewTable()
	s := value.NewString("hello")
	tab.Set(s, value.Nil)

	found := tab.FindString("hello", value.HashString("hello"))
	require.Same(t, s, found)

	require.Nil(t, tab.FindString("goodbye", value.HashString("goodbye")))
}

func TestTableDeleteIfRemovesWeakReferences(t *testing.T) {
	tab := value.NewTable()
	kept := value.NewString("kept")
	dropped := value.NewString("dropped")
	tab.Set(kept, value.Nil)
	tab.Set(dropped, value.Nil)

	tab.DeleteIf(func(s *value.String) bool { return s == dropped })

	require.NotNil(t, tab.FindString("kept", value.HashString("kept")))
	require.Nil(t, tab.FindString("dropped", value.HashString("dropped")))
}

func TestTableEachVisitsLiveEntriesOnly(t *testing.T) {
	tab := value.NewTable()
	a, b := value.NewString("a"), value.NewString("b")
	tab.Set(a, value.Number(1))
	tab.Set(b, value.Number(2))
	tab.Delete(a)

	seen := map[string]float64{}
	tab.Each(func(e value.Entry) { seen[e.Key.Chars] = e.Value.AsNumber() })
	require.Equal(t, map[string]float64{"b": 2}, seen)
}
