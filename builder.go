package dmerkle

import (
	"fmt"
	"slices"
)

// Builder constructs Merkle trees sequentially.
//
// There are two ways to use a Builder.
// Incrementally: push leaves with [*Builder.PushLeaf] and
// previously built subtrees with [*Builder.PushTree],
// then call [*Builder.Finish] to assemble the pushed nodes
// into a tree.
// In bulk: call one of [*Builder.BuildBalanced], [*Builder.BuildFull],
// or [*Builder.BuildComplete] on a fresh Builder
// to build a binary tree of the corresponding shape
// out of a slice of input values.
//
// A Builder is not safe for concurrent use;
// for parallelized bulk construction see [ParallelBuilder].
type Builder[In, H, T any] struct {
	core[In, H, T]

	pending []Node[H, T]
}

// NewBuilder returns a Builder using the given hasher
// and leaf data extractor.
func NewBuilder[In, H, T any](
	h Hasher[In, H, T],
	x ExtractData[In, T],
) *Builder[In, H, T] {
	return &Builder[In, H, T]{
		core: core[In, H, T]{hasher: h, extract: x},

		// Two is the common case of joining a pair of subtrees.
		pending: make([]Node[H, T], 0, 2),
	}
}

// PushLeaf hashes the input value, extracts its leaf data,
// and appends the resulting leaf node to the pending node list.
func (b *Builder[In, H, T]) PushLeaf(in In) {
	b.pending = append(b.pending, b.makeLeafNode(in))
}

// PushTree appends the given tree's root node to the pending node list,
// absorbing a previously built subtree as one child of the tree
// under construction. No hashes are recomputed.
func (b *Builder[In, H, T]) PushTree(t *Tree[H, T]) {
	b.pending = append(b.pending, t.root)
}

// ExtendLeaves pushes a leaf node for every input value in order.
func (b *Builder[In, H, T]) ExtendLeaves(ins []In) {
	b.pending = slices.Grow(b.pending, len(ins))
	for _, in := range ins {
		b.pending = append(b.pending, b.makeLeafNode(in))
	}
}

// Finish consumes the builder and assembles the pushed nodes into a tree.
//
// A single pushed node becomes the root verbatim, with no extra hashing:
// a lone leaf or a lone absorbed subtree is returned unchanged.
// Two or more pushed nodes become the ordered children of a new root,
// hashed with the node hasher.
//
// If nothing was pushed, Finish returns [ErrEmptyTree].
func (b *Builder[In, H, T]) Finish() (*Tree[H, T], error) {
	nodes := b.pending
	b.pending = nil

	switch len(nodes) {
	case 0:
		return nil, ErrEmptyTree
	case 1:
		return &Tree[H, T]{root: nodes[0]}, nil
	default:
		return &Tree[H, T]{root: b.makeInternalNode(nodes)}, nil
	}
}

// MakeLeaf builds a tree consisting of a single leaf node
// from one input value.
// It does not touch the builder's pending node list.
func (b *Builder[In, H, T]) MakeLeaf(in In) *Tree[H, T] {
	return b.makeLeafTree(in)
}

// CollectFrom builds a tree whose root's children are
// the root nodes of the given trees, in order,
// producing an arbitrary-arity tree in one step.
//
// Like [*Builder.Finish], a single tree is returned unchanged,
// and zero trees fail with [ErrEmptyTree].
func (b *Builder[In, H, T]) CollectFrom(trees []*Tree[H, T]) (*Tree[H, T], error) {
	switch len(trees) {
	case 0:
		return nil, ErrEmptyTree
	case 1:
		return trees[0], nil
	default:
		nodes := make([]Node[H, T], len(trees))
		for i, t := range trees {
			nodes[i] = t.root
		}
		return &Tree[H, T]{root: b.makeInternalNode(nodes)}, nil
	}
}

// core is the cheaply copyable builder configuration
// shared by the sequential and parallel builders.
// Every recursive branch of a bulk build operates on its own copy,
// so no mutable state is ever shared between branches.
type core[In, H, T any] struct {
	hasher  Hasher[In, H, T]
	extract ExtractData[In, T]
}

func (c core[In, H, T]) makeLeafNode(in In) Node[H, T] {
	hash := c.hasher.HashLeaf(in)
	data := c.extract.Extract(in)
	return &Leaf[H, T]{hash: hash, data: data}
}

func (c core[In, H, T]) makeLeafTree(in In) *Tree[H, T] {
	return &Tree[H, T]{root: c.makeLeafNode(in)}
}

func (c core[In, H, T]) makeInternalNode(children []Node[H, T]) Node[H, T] {
	if len(children) == 0 {
		panic(fmt.Errorf("BUG: attempted to make an internal node with no children"))
	}
	hash := c.hasher.HashNodes(Children[H, T]{nodes: children})
	return &Internal[H, T]{hash: hash, children: children}
}

// joinTrees wraps two subtrees as the left and right children
// of a new root node.
func (c core[In, H, T]) joinTrees(left, right *Tree[H, T]) *Tree[H, T] {
	root := c.makeInternalNode([]Node[H, T]{left.root, right.root})
	return &Tree[H, T]{root: root}
}

// chainTree wraps a subtree as the single child of a new root node.
// Chain nodes preserve uniform leaf depth in complete trees
// when a subtree is under-populated.
// The node hasher sees the child as a one-element sequence,
// so a chain node hashes differently from its child.
func (c core[In, H, T]) chainTree(child *Tree[H, T]) *Tree[H, T] {
	root := c.makeInternalNode([]Node[H, T]{child.root})
	return &Tree[H, T]{root: root}
}
