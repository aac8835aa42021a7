package dmerkletest

import (
	"testing"

	"github.com/gordian-engine/dmerkle"
	"github.com/stretchr/testify/require"
)

// TestHasherCompliance exercises the properties every
// [dmerkle.Hasher] over byte-slice input must uphold.
// Call it from a hasher package's tests with a factory
// returning fresh hasher instances.
//
// All checks go through trees built with the public builder API,
// so the suite works for any hash output type.
func TestHasherCompliance[H comparable](
	t *testing.T,
	f func() dmerkle.Hasher[[]byte, H, struct{}],
) {
	newBuilder := func() *dmerkle.Builder[[]byte, H, struct{}] {
		return dmerkle.NewBuilder(f(), dmerkle.NoData[[]byte]{})
	}

	t.Run("leaf hash is deterministic", func(t *testing.T) {
		t.Parallel()

		t1 := newBuilder().MakeLeaf([]byte("deterministic_data"))
		t2 := newBuilder().MakeLeaf([]byte("deterministic_data"))

		require.Equal(t, t1.RootHash(), t2.RootHash())
	})

	t.Run("leaf hash depends on input", func(t *testing.T) {
		t.Parallel()

		t1 := newBuilder().MakeLeaf([]byte("input_one"))
		t2 := newBuilder().MakeLeaf([]byte("input_two"))

		require.NotEqual(t, t1.RootHash(), t2.RootHash())
	})

	t.Run("node hash is deterministic", func(t *testing.T) {
		t.Parallel()

		build := func() H {
			b := newBuilder()
			b.PushLeaf([]byte("left"))
			b.PushLeaf([]byte("right"))
			tree, err := b.Finish()
			require.NoError(t, err)
			return tree.RootHash()
		}

		require.Equal(t, build(), build())
	})

	t.Run("node hash respects child order", func(t *testing.T) {
		t.Parallel()

		build := func(a, b string) H {
			bld := newBuilder()
			bld.PushLeaf([]byte(a))
			bld.PushLeaf([]byte(b))
			tree, err := bld.Finish()
			require.NoError(t, err)
			return tree.RootHash()
		}

		require.NotEqual(t, build("left", "right"), build("right", "left"))
	})

	t.Run("chain node hashes differently from its child", func(t *testing.T) {
		t.Parallel()

		// The complete shape over three elements produces a chain
		// node over the third leaf, exercising the single-child case.
		chained, err := newBuilder().BuildComplete([][]byte{
			[]byte("a"), []byte("b"), []byte("lone"),
		})
		require.NoError(t, err)

		root, ok := chained.Root().(*dmerkle.Internal[H, struct{}])
		require.True(t, ok)
		require.Equal(t, 2, root.NumChildren())

		chain, ok := root.ChildAt(1).(*dmerkle.Internal[H, struct{}])
		require.True(t, ok)
		require.Equal(t, 1, chain.NumChildren())

		require.NotEqual(t, chain.ChildAt(0).Hash(), chain.Hash())
	})

	t.Run("leaf and node roles are domain separated", func(t *testing.T) {
		t.Parallel()

		// The hash of a two-leaf node and the hash of a leaf whose
		// input happens to be related child material must not collide.
		b := newBuilder()
		b.PushLeaf([]byte("ab"))
		b.PushLeaf([]byte("cd"))
		node, err := b.Finish()
		require.NoError(t, err)

		leaf := newBuilder().MakeLeaf([]byte("abcd"))

		require.NotEqual(t, leaf.RootHash(), node.RootHash())
	})
}
