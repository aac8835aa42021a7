package dmerkle

// Tree is a complete Merkle tree.
//
// A valid Tree always has a root node:
// either a single [*Leaf], or a hierarchy of [*Internal] nodes
// terminating in leaves.
// There is no empty tree value; building over empty input
// fails with [ErrEmptyTree] instead.
//
// Trees are immutable once built.
// The tree exclusively owns its node hierarchy:
// every child node belongs to exactly one parent,
// and nodes hold no back references.
type Tree[H, T any] struct {
	root Node[H, T]
}

// Root returns the root node of the tree.
func (t *Tree[H, T]) Root() Node[H, T] { return t.root }

// RootHash returns the hash of the root node.
func (t *Tree[H, T]) RootHash() H { return t.root.Hash() }

// Equal reports whether two trees have the same root hash.
//
// This is the identity contract for trees:
// assuming a collision-resistant hash function,
// equal root hashes imply equal content,
// so neither child structure nor leaf data is examined.
// In particular, two trees whose leaves carry different data
// but hash identically compare equal.
func Equal[H comparable, T any](a, b *Tree[H, T]) bool {
	return a.RootHash() == b.RootHash()
}

// EqualFunc is like [Equal] for hash types that are not comparable,
// such as byte slices; eq reports whether two hash values are equal.
func EqualFunc[H, T any](a, b *Tree[H, T], eq func(H, H) bool) bool {
	return eq(a.RootHash(), b.RootHash())
}
