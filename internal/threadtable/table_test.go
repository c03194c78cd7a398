package threadtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateSkipsReservedMainID(t *testing.T) {
	tb := New[string](4)
	tb.Insert(0, "main")

	id, ok := tb.Allocate()
	require.True(t, ok)
	require.Equal(t, 1, id)
}

func TestAllocateReusesFreedIDs(t *testing.T) {
	tb := New[string](3)
	tb.Insert(0, "main")

	a, ok := tb.Allocate()
	require.True(t, ok)
	tb.Insert(a, "A")

	b, ok := tb.Allocate()
	require.True(t, ok)
	tb.Insert(b, "B")
	require.NotEqual(t, a, b)

	tb.Remove(a)
	c, ok := tb.Allocate()
	require.True(t, ok)
	require.Equal(t, a, c, "freed id should be reused before growing past capacity")
}

func TestAllocateFailsAtCapacity(t *testing.T) {
	tb := New[string](2)
	tb.Insert(0, "main")

	id, ok := tb.Allocate()
	require.True(t, ok)
	tb.Insert(id, "only worker slot")

	_, ok = tb.Allocate()
	require.False(t, ok, "capacity of 2 means exactly one non-main slot")
}

func TestContainsAndLen(t *testing.T) {
	tb := New[int](5)
	require.False(t, tb.Contains(0))
	tb.Insert(0, 100)
	require.True(t, tb.Contains(0))
	require.Equal(t, 1, tb.Len())
}
