package dmerkle_test

import (
	"testing"

	"github.com/gordian-engine/dmerkle"
	"github.com/gordian-engine/dmerkle/dmerkletest"
	"github.com/stretchr/testify/require"
)

const testData = "The quick brown fox jumps over the lazy dog"

var pandaInputs = [][]byte{
	[]byte("Panda eats,"),
	[]byte("shoots,"),
	[]byte("and leaves."),
}

// newStringBuilder returns a builder using the transparent test hasher,
// retaining every input as its leaf data string.
func newStringBuilder() *dmerkle.Builder[[]byte, string, string] {
	return dmerkle.NewBuilder[[]byte, string, string](
		dmerkletest.TagHasher[string]{},
		dmerkle.ExtractFunc[[]byte, string](func(in []byte) string {
			return string(in)
		}),
	)
}

func newNoDataBuilder() *dmerkle.Builder[[]byte, string, struct{}] {
	return dmerkle.NewBuilder[[]byte, string, struct{}](
		dmerkletest.TagHasher[struct{}]{},
		dmerkle.NoData[[]byte]{},
	)
}

// chunks splits s into byte slices of at most size bytes,
// like the chunked input feeds in the shape tests.
func chunks(s string, size int) [][]byte {
	var out [][]byte
	for len(s) > size {
		out = append(out, []byte(s[:size]))
		s = s[size:]
	}
	return append(out, []byte(s))
}

func TestBuilder_Finish_empty(t *testing.T) {
	t.Parallel()

	b := newStringBuilder()

	tree, err := b.Finish()
	require.ErrorIs(t, err, dmerkle.ErrEmptyTree)
	require.Nil(t, tree)
}

func TestBuilder_Finish_singleLeafIsRootVerbatim(t *testing.T) {
	t.Parallel()

	b := newStringBuilder()
	b.PushLeaf([]byte("eats shoots"))

	tree, err := b.Finish()
	require.NoError(t, err)

	leaf, ok := tree.Root().(*dmerkle.Leaf[string, string])
	require.True(t, ok, "single pushed leaf must become the root unchanged")
	require.Equal(t, "eats shoots", leaf.Hash())
	require.Equal(t, "eats shoots", leaf.Data())
}

func TestBuilder_Finish_singleSubtreeIsRootVerbatim(t *testing.T) {
	t.Parallel()

	b := newStringBuilder()
	b.PushLeaf([]byte("eats shoots"))
	b.PushLeaf([]byte("and leaves"))
	subtree, err := b.Finish()
	require.NoError(t, err)

	b = newStringBuilder()
	b.PushTree(subtree)
	tree, err := b.Finish()
	require.NoError(t, err)

	// No extra hashing: the absorbed subtree's root is the new root.
	require.Equal(t, subtree.RootHash(), tree.RootHash())
	root, ok := tree.Root().(*dmerkle.Internal[string, string])
	require.True(t, ok)
	require.Equal(t, 2, root.NumChildren())
}

func TestBuilder_Finish_consumesPendingNodes(t *testing.T) {
	t.Parallel()

	b := newStringBuilder()
	b.PushLeaf([]byte("once"))

	_, err := b.Finish()
	require.NoError(t, err)

	_, err = b.Finish()
	require.ErrorIs(t, err, dmerkle.ErrEmptyTree)
}

func TestBuilder_joinTwoLeaves(t *testing.T) {
	t.Parallel()

	b := newStringBuilder()
	b.PushLeaf([]byte("eats shoots"))
	b.PushLeaf([]byte("and leaves"))

	tree, err := b.Finish()
	require.NoError(t, err)
	require.Equal(t, ">eats shoots>and leaves", tree.RootHash())

	root, ok := tree.Root().(*dmerkle.Internal[string, string])
	require.True(t, ok)
	require.Equal(t, 2, root.NumChildren())

	left, ok := root.ChildAt(0).(*dmerkle.Leaf[string, string])
	require.True(t, ok)
	require.Equal(t, "eats shoots", left.Hash())
	require.Equal(t, "eats shoots", left.Data())

	right, ok := root.ChildAt(1).(*dmerkle.Leaf[string, string])
	require.True(t, ok)
	require.Equal(t, "and leaves", right.Hash())
	require.Equal(t, "and leaves", right.Data())
}

func TestBuilder_stackedSubtrees(t *testing.T) {
	t.Parallel()

	b := newStringBuilder()
	b.PushLeaf([]byte("shoots,"))
	b.PushLeaf([]byte("and leaves."))
	subtree, err := b.Finish()
	require.NoError(t, err)

	b = newStringBuilder()
	b.PushLeaf([]byte("Panda eats,"))
	b.PushTree(subtree)
	tree, err := b.Finish()
	require.NoError(t, err)

	require.Equal(t, ">Panda eats,#(>shoots,>and leaves.)", tree.RootHash())

	root := tree.Root().(*dmerkle.Internal[string, string])
	inner, ok := root.ChildAt(1).(*dmerkle.Internal[string, string])
	require.True(t, ok)
	require.Equal(t, ">shoots,>and leaves.", inner.Hash())
}

func TestBuilder_arbitraryArity(t *testing.T) {
	t.Parallel()

	b := newStringBuilder()
	for _, in := range pandaInputs {
		b.PushLeaf(in)
	}

	tree, err := b.Finish()
	require.NoError(t, err)
	require.Equal(t, ">Panda eats,>shoots,>and leaves.", tree.RootHash())

	root := tree.Root().(*dmerkle.Internal[string, string])
	require.Equal(t, 3, root.NumChildren())
	for i, child := range root.Children().All() {
		leaf, ok := child.(*dmerkle.Leaf[string, string])
		require.True(t, ok)
		require.Equal(t, string(pandaInputs[i]), leaf.Data())
	}
}

func TestBuilder_ExtendLeaves(t *testing.T) {
	t.Parallel()

	one := newStringBuilder()
	for _, in := range pandaInputs {
		one.PushLeaf(in)
	}
	want, err := one.Finish()
	require.NoError(t, err)

	other := newStringBuilder()
	other.ExtendLeaves(pandaInputs)
	got, err := other.Finish()
	require.NoError(t, err)

	dmerkletest.RequireSameTree(t, want, got)
}

func TestBuilder_MakeLeaf(t *testing.T) {
	t.Parallel()

	tree := newStringBuilder().MakeLeaf([]byte("lone"))

	leaf, ok := tree.Root().(*dmerkle.Leaf[string, string])
	require.True(t, ok)
	require.Equal(t, "lone", leaf.Hash())
	require.Equal(t, "lone", leaf.Data())
}

func TestBuilder_CollectFrom(t *testing.T) {
	t.Parallel()

	t.Run("multiple trees become root children", func(t *testing.T) {
		t.Parallel()

		b := newStringBuilder()
		trees := make([]*dmerkle.Tree[string, string], len(pandaInputs))
		for i, in := range pandaInputs {
			trees[i] = b.MakeLeaf(in)
		}

		tree, err := b.CollectFrom(trees)
		require.NoError(t, err)
		require.Equal(t, ">Panda eats,>shoots,>and leaves.", tree.RootHash())
	})

	t.Run("single tree returned unchanged", func(t *testing.T) {
		t.Parallel()

		b := newStringBuilder()
		leaf := b.MakeLeaf([]byte("lone"))

		tree, err := b.CollectFrom([]*dmerkle.Tree[string, string]{leaf})
		require.NoError(t, err)
		require.Same(t, leaf, tree)
	})

	t.Run("no trees is an error", func(t *testing.T) {
		t.Parallel()

		_, err := newStringBuilder().CollectFrom(nil)
		require.ErrorIs(t, err, dmerkle.ErrEmptyTree)
	})
}

func TestBuilder_ownedLeafData(t *testing.T) {
	t.Parallel()

	b := dmerkle.NewBuilder[[]byte, string, []byte](
		dmerkletest.TagHasher[[]byte]{},
		dmerkle.Owned[[]byte]{},
	)
	b.PushLeaf([]byte{1, 2, 3, 4})

	tree, err := b.Finish()
	require.NoError(t, err)

	leaf := tree.Root().(*dmerkle.Leaf[string, []byte])
	require.Equal(t, []byte{1, 2, 3, 4}, leaf.Data())
}

func TestBuilder_derivedLeafData(t *testing.T) {
	t.Parallel()

	b := dmerkle.NewBuilder[[]byte, string, int](
		dmerkletest.TagHasher[int]{},
		dmerkle.ExtractFunc[[]byte, int](func(in []byte) int {
			return len(in)
		}),
	)
	tree := b.MakeLeaf([]byte{0, 1, 2, 3})

	leaf := tree.Root().(*dmerkle.Leaf[string, int])
	require.Equal(t, 4, leaf.Data())
}

func TestBuilder_noDataLeaves(t *testing.T) {
	t.Parallel()

	b := newNoDataBuilder()
	b.ExtendLeaves(chunks(testData, 15))

	tree, err := b.Finish()
	require.NoError(t, err)
	require.Equal(
		t, ">The quick brown> fox jumps over> the lazy dog",
		tree.RootHash(),
	)
}
