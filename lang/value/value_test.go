package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxvm/lox/lang/value"
)

func TestTruthy(t *testing.T) {
	require.False(t, value.Truthy(value.Nil))
	require.False(t, value.Truthy(value.Bool(false)))
	require.True(t, value.Truthy(value.Bool(true)))
	require.True(t, value.Truthy(value.Number(0)))
	require.True(t, value.Truthy(value.Obj(value.NewString(""))))
}

func TestEqualByType(t *testing.T) {
	require.True(t, value.Equal(value.Nil, value.Nil))
	require.True(t, value.Equal(value.Bool(true), value.Bool(true)))
	require.False(t, value.Equal(value.Bool(true), value.Bool(false)))
	require.True(t, value.Equal(value.Number(1), value.Number(1)))
	require.False(t, value.Equal(value.Number(1), value.Bool(true)))

	nan := value.Number(math.NaN())
	require.False(t, value.Equal(nan, nan))

	s1 := value.Obj(value.NewString("x"))
	s2 := value.Obj(value.NewString("x"))
	require.False(t, value.Equal(s1, s2)) // distinct, uninterned allocations

	interned := value.Obj(s1.AsObject())
	require.True(t, value.Equal(s1, interned)) // same pointer
}

func TestValueString(t *testing.T) {
	require.Equal(t, "nil", value.Nil.String())
	require.Equal(t, "true", value.Bool(true).String())
	require.Equal(t, "7", value.Number(7).String())
	require.Equal(t, "3.14", value.Number(3.14).String())
}
