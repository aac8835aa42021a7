package dmerkle

import (
	"fmt"
	"iter"
)

// Node is one node of a Merkle tree: either a [*Leaf] or an [*Internal].
// Node values are borrowed from under a [Tree] and are immutable;
// their hashes are computed once, during construction, and never change.
type Node[H, T any] interface {
	// Hash returns the node's hash value.
	Hash() H

	// sealed restricts implementations to this package,
	// which is what keeps zero-child internal nodes unrepresentable.
	sealed()
}

// Leaf is a node holding the hash of one input value,
// plus whatever data the tree's [ExtractData] policy
// retained from that input.
type Leaf[H, T any] struct {
	hash H
	data T
}

func (l *Leaf[H, T]) Hash() H { return l.hash }

// Data returns the leaf data extracted from the input value
// this leaf was built from.
// It is excluded from all equality comparisons.
func (l *Leaf[H, T]) Data() T { return l.data }

func (l *Leaf[H, T]) sealed() {}

// Internal is a node holding the hash of its ordered child nodes.
// An Internal always has at least one child;
// a single-child Internal is a chain node,
// used to keep uniform leaf depth in complete trees.
type Internal[H, T any] struct {
	hash     H
	children []Node[H, T]
}

func (n *Internal[H, T]) Hash() H { return n.hash }

// NumChildren returns the number of child nodes. It is always >= 1.
func (n *Internal[H, T]) NumChildren() int { return len(n.children) }

// ChildAt returns the child node at the given index.
//
// Requesting an index outside [0, NumChildren()) is a caller bug
// and panics.
func (n *Internal[H, T]) ChildAt(i int) Node[H, T] {
	if i < 0 || i >= len(n.children) {
		panic(fmt.Errorf(
			"BUG: child index %d out of range (node has %d children)",
			i, len(n.children),
		))
	}
	return n.children[i]
}

// Children returns a view over the node's child nodes,
// valid for the lifetime of the owning tree.
func (n *Internal[H, T]) Children() Children[H, T] {
	return Children[H, T]{nodes: n.children}
}

func (n *Internal[H, T]) sealed() {}

// Children is an ordered, read-only view of an internal node's children.
// The view borrows the nodes; iterating it never copies node payloads.
type Children[H, T any] struct {
	nodes []Node[H, T]
}

// Len returns the number of nodes in the view.
func (c Children[H, T]) Len() int { return len(c.nodes) }

// At returns the node at the given index.
//
// Requesting an index outside [0, Len()) is a caller bug and panics.
func (c Children[H, T]) At(i int) Node[H, T] {
	if i < 0 || i >= len(c.nodes) {
		panic(fmt.Errorf(
			"BUG: child index %d out of range (view has %d nodes)",
			i, len(c.nodes),
		))
	}
	return c.nodes[i]
}

// All returns an iterator over the nodes in order,
// paired with their indices.
// The iterator may be ranged over any number of times.
func (c Children[H, T]) All() iter.Seq2[int, Node[H, T]] {
	return func(yield func(int, Node[H, T]) bool) {
		for i, n := range c.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Backward returns an iterator over the nodes in reverse order,
// paired with their indices.
func (c Children[H, T]) Backward() iter.Seq2[int, Node[H, T]] {
	return func(yield func(int, Node[H, T]) bool) {
		for i := len(c.nodes) - 1; i >= 0; i-- {
			if !yield(i, c.nodes[i]) {
				return
			}
		}
	}
}
