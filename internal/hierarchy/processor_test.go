package hierarchy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// [1:[2:[4],3]]
const sample = `[{"id":1,"children":[{"id":2,"children":[{"id":4}]},{"id":3}]}]`

func TestInsertRoot(t *testing.T) {
	s, err := InsertRoot("", 10)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":10,"children":[]}]`, s)

	s, err = InsertRoot(s, 11)
	require.NoError(t, err)

	f, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 11}, f.Roots())

	_, err = InsertRoot(s, 10)
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = InsertRoot(`{broken`, 12)
	var malformed *MalformedHierarchyError
	assert.True(t, errors.As(err, &malformed))
}

func TestRemoveNode(t *testing.T) {
	remaining, removed, err := RemoveNode(sample, 2)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), removed.ID)
	require.Len(t, removed.Children, 1)
	assert.Equal(t, uint64(4), removed.Children[0].ID)

	f, err := Decode(remaining)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3}, f.Children(1))
	assert.False(t, f.Contains(4), "children must not be promoted")
}

func TestRemoveNode_NotFound(t *testing.T) {
	_, _, err := RemoveNode(sample, 42)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	var notFound *NodeNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, uint64(42), notFound.ID)
}

func TestCollectSubtreeIDs(t *testing.T) {
	ids, err := CollectSubtreeIDs(sample, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 4}, ids)
	assert.Equal(t, uint64(2), ids[0])

	ids, err = CollectSubtreeIDs(sample, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 4, 3}, ids)

	ids, err = CollectSubtreeIDs(sample, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3}, ids)

	_, err = CollectSubtreeIDs(sample, 99)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestReconcile_DropsUnknownAndPromotesKnownChildren(t *testing.T) {
	nodes, err := Reconcile(NewIDSet(1, 3, 4), sample)
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	root := nodes[0]
	assert.Equal(t, uint64(1), root.ID)
	require.Len(t, root.Children, 2)
	assert.Equal(t, uint64(4), root.Children[0].ID)
	assert.Equal(t, uint64(3), root.Children[1].ID)
}

func TestReconcile_MalformedIsNotSwallowed(t *testing.T) {
	_, err := Reconcile(NewIDSet(1), `[{"id":"one"}]`)
	var malformed *MalformedHierarchyError
	assert.True(t, errors.As(err, &malformed))
}

func TestFromFlatOrder(t *testing.T) {
	s, err := FromFlatOrder([]uint64{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":3,"children":[]},{"id":1,"children":[]},{"id":2,"children":[]}]`, s)

	_, err = FromFlatOrder([]uint64{1, 1})
	assert.ErrorIs(t, err, ErrDuplicateID)

	empty, err := FromFlatOrder(nil)
	require.NoError(t, err)
	assert.Equal(t, EmptyForest, empty)
}

func TestFromTree(t *testing.T) {
	s, err := FromTree([]*Node{{ID: 2, Children: []*Node{{ID: 1}}}})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2,"children":[{"id":1,"children":[]}]}]`, s)

	_, err = FromTree([]*Node{{ID: 2}, {ID: 0}})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestDetach_Delete(t *testing.T) {
	res, err := Detach(sample, 2, Delete())
	require.NoError(t, err)

	assert.Equal(t, []uint64{2, 4}, res.AffectedIDs)
	assert.Empty(t, res.Target)
	assert.Equal(t, `[{"id":1,"children":[{"id":3,"children":[]}]}]`, res.Source)
}

func TestDetach_Reparent(t *testing.T) {
	res, err := Detach(sample, 2, Reparent())
	require.NoError(t, err)

	assert.Equal(t, []uint64{2}, res.AffectedIDs)
	f, err := Decode(res.Source)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 3}, f.Children(1))
	parent, ok := f.Parent(4)
	require.True(t, ok)
	assert.Equal(t, uint64(1), parent)
}

func TestDetach_ReparentRoot(t *testing.T) {
	res, err := Detach(sample, 1, Reparent())
	require.NoError(t, err)

	f, err := Decode(res.Source)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3}, f.Roots())
	assert.Equal(t, []uint64{4}, f.Children(2))
}

func TestDetach_Transfer(t *testing.T) {
	res, err := Detach(sample, 2, Transfer(`[{"id":10}]`))
	require.NoError(t, err)

	src, err := Decode(res.Source)
	require.NoError(t, err)
	assert.False(t, src.Contains(2))
	assert.False(t, src.Contains(4))

	dst, err := Decode(res.Target)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 2}, dst.Roots())
	assert.Equal(t, []uint64{4}, dst.Children(2))
}

func TestDetach_TransferConflictLeavesNoResult(t *testing.T) {
	res, err := Detach(sample, 2, Transfer(`[{"id":4}]`))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Empty(t, res.Source)
}

func TestDetach_NotFound(t *testing.T) {
	_, err := Detach(sample, 8, Delete())
	assert.ErrorIs(t, err, ErrNodeNotFound)
}
