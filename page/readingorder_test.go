package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleOrder() *ReadingOrder {
	return NewReadingOrder(&RegionRef{
		ID:   "root",
		Kind: RefOrdered,
		Children: []*RegionRef{
			{ID: "e2", Region: "b", Kind: RefRegion, Index: 2},
			{ID: "e0", Region: "a", Kind: RefRegion, Index: 0},
			{ID: "g1", Region: "grp", Kind: RefUnordered, Index: 1, Children: []*RegionRef{
				{ID: "e3", Region: "c", Kind: RefRegion},
				{ID: "e4", Region: "d", Kind: RefRegion},
			}},
		},
	})
}

func TestReadingOrderPositions(t *testing.T) {

	ro := sampleOrder()

	require.Equal(t, 5, ro.Len())
	require.Equal(t, map[string]int{"a": 0, "grp": 1, "c": 2, "d": 3, "b": 4}, ro.Positions())

	e, ok := ro.Lookup("c")
	require.True(t, ok)
	require.Equal(t, "e3", e.ID)
}

func TestRetarget(t *testing.T) {

	t.Run("rename", func(t *testing.T) {
		ro := sampleOrder()

		require.True(t, ro.Retarget("c", "new"))

		_, ok := ro.Lookup("c")
		require.False(t, ok)

		e, ok := ro.Lookup("new")
		require.True(t, ok)
		require.Equal(t, "e3", e.ID)
		require.Equal(t, 5, ro.Len())
	})

	t.Run("merge into existing", func(t *testing.T) {
		ro := sampleOrder()

		require.True(t, ro.Retarget("c", "new"))
		require.True(t, ro.Retarget("d", "new"))

		require.Equal(t, 4, ro.Len())

		grp, _ := ro.Lookup("grp")
		require.Len(t, grp.Children, 1)

		// exactly one entry references the replacement
		count := 0
		var visit func(e *RegionRef)
		visit = func(e *RegionRef) {
			if e.Region == "new" {
				count++
			}
			for _, c := range e.Children {
				visit(c)
			}
		}
		visit(ro.Root)
		require.Equal(t, 1, count)
	})

	t.Run("unreferenced", func(t *testing.T) {
		ro := sampleOrder()
		require.False(t, ro.Retarget("zzz", "new"))
		require.Equal(t, 5, ro.Len())
	})

	t.Run("group merge keeps children", func(t *testing.T) {
		ro := sampleOrder()

		require.True(t, ro.Retarget("grp", "a"))

		_, ok := ro.Lookup("grp")
		require.False(t, ok)
		require.Len(t, ro.Root.Children, 3)
		require.Empty(t, ro.Root.Children[1].Region)
		require.Len(t, ro.Root.Children[1].Children, 2)
	})
}

func TestReadingOrderRemoveAppend(t *testing.T) {

	ro := sampleOrder()

	require.True(t, ro.Remove("a"))
	require.False(t, ro.Remove("a"))
	require.Len(t, ro.Root.Children, 2)

	ro.Append("z")
	ro.Append("z")

	e, ok := ro.Lookup("z")
	require.True(t, ok)
	require.Equal(t, 3, e.Index)
	require.Equal(t, 4, ro.Positions()["z"])

	empty := NewReadingOrder(nil)
	empty.Append("x")
	require.Equal(t, map[string]int{"x": 0}, empty.Positions())
}
