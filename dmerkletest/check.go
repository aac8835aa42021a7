package dmerkletest

import (
	"fmt"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/dmerkle"
	"github.com/stretchr/testify/require"
)

// RequireSameTree asserts that want and got are identical node for node:
// same structure, same node kinds, and same hash at every position.
// Leaf data is deliberately not compared,
// matching the trees' own identity contract.
func RequireSameTree[H comparable, T any](
	t *testing.T,
	want, got *dmerkle.Tree[H, T],
) {
	t.Helper()

	requireSameNode[H, T](t, want.Root(), got.Root(), "root")
}

func requireSameNode[H comparable, T any](
	t *testing.T,
	want, got dmerkle.Node[H, T],
	path string,
) {
	t.Helper()

	require.Equal(t, want.Hash(), got.Hash(), "hash mismatch at %s", path)

	switch w := want.(type) {
	case *dmerkle.Leaf[H, T]:
		require.IsType(t, w, got, "node kind mismatch at %s", path)
	case *dmerkle.Internal[H, T]:
		g, ok := got.(*dmerkle.Internal[H, T])
		require.True(t, ok, "node kind mismatch at %s", path)
		require.Equal(
			t, w.NumChildren(), g.NumChildren(),
			"child count mismatch at %s", path,
		)
		for i, wc := range w.Children().All() {
			requireSameNode[H, T](
				t, wc, g.ChildAt(i),
				fmt.Sprintf("%s/%d", path, i),
			)
		}
	}
}

// RequireLeafData asserts that an in-order traversal of the tree's
// leaves yields exactly the given data values in order.
// Every expected position must be visited exactly once;
// visited positions are tracked in a bitset
// so that duplicates and omissions are reported distinctly.
func RequireLeafData[H comparable, T comparable](
	t *testing.T,
	tree *dmerkle.Tree[H, T],
	want []T,
) {
	t.Helper()

	seen := bitset.New(uint(len(want)))
	next := 0
	walkLeaves(tree.Root(), func(l *dmerkle.Leaf[H, T]) {
		require.Less(t, next, len(want), "more leaves than expected")
		require.False(
			t, seen.Test(uint(next)),
			"leaf position %d visited twice", next,
		)
		seen.Set(uint(next))
		require.Equal(
			t, want[next], l.Data(),
			"leaf data mismatch at position %d", next,
		)
		next++
	})

	require.Equal(t, uint(len(want)), seen.Count(), "not all leaves visited")
}

// RequireUniformLeafDepth asserts that every leaf of the tree
// sits at the same depth, the defining property of complete trees.
func RequireUniformLeafDepth[H comparable, T any](
	t *testing.T,
	tree *dmerkle.Tree[H, T],
) {
	t.Helper()

	firstDepth := -1
	var walk func(n dmerkle.Node[H, T], depth int)
	walk = func(n dmerkle.Node[H, T], depth int) {
		switch node := n.(type) {
		case *dmerkle.Leaf[H, T]:
			if firstDepth < 0 {
				firstDepth = depth
				return
			}
			require.Equal(t, firstDepth, depth, "leaf depth differs")
		case *dmerkle.Internal[H, T]:
			for _, c := range node.Children().All() {
				walk(c, depth+1)
			}
		}
	}
	walk(tree.Root(), 0)
}

func walkLeaves[H, T any](
	n dmerkle.Node[H, T],
	visit func(*dmerkle.Leaf[H, T]),
) {
	switch node := n.(type) {
	case *dmerkle.Leaf[H, T]:
		visit(node)
	case *dmerkle.Internal[H, T]:
		for _, c := range node.Children().All() {
			walkLeaves(c, visit)
		}
	}
}
