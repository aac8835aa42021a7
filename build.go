package dmerkle

import (
	"fmt"
	"math/bits"
)

// BuildBalanced builds a binary tree where, at every split,
// the left and right subtree leaf counts differ by at most one.
// Leaf depths may vary by one level across the tree.
//
// Returns [ErrEmptyTree] if inputs is empty.
//
// The builder must have no pending incremental nodes;
// mixing incremental pushes with a bulk build is a caller bug and panics.
func (b *Builder[In, H, T]) BuildBalanced(inputs []In) (*Tree[H, T], error) {
	b.checkNoPending("BuildBalanced")
	if len(inputs) == 0 {
		return nil, ErrEmptyTree
	}
	return b.core.buildBalanced(inputs), nil
}

// BuildFull builds a binary tree where every internal node's
// left subtree is perfect: fully populated with a power-of-two leaf count.
// The overall tree need not be depth-balanced.
//
// Returns [ErrEmptyTree] if inputs is empty.
//
// The builder must have no pending incremental nodes;
// mixing incremental pushes with a bulk build is a caller bug and panics.
func (b *Builder[In, H, T]) BuildFull(inputs []In) (*Tree[H, T], error) {
	b.checkNoPending("BuildFull")
	if len(inputs) == 0 {
		return nil, ErrEmptyTree
	}
	return b.core.buildFull(inputs), nil
}

// BuildComplete builds a left-filled binary tree in which
// every leaf sits at the same depth,
// as if the tree were perfectly balanced at the next power-of-two size.
// Where the input runs short of that size, the rightmost node on a level
// may have a single child (a chain node); the resulting tree is a strict
// subgraph of the mathematical complete binary tree, with no nodes
// materialized that would have only phantom descendants.
//
// Returns [ErrEmptyTree] if inputs is empty.
//
// The builder must have no pending incremental nodes;
// mixing incremental pushes with a bulk build is a caller bug and panics.
func (b *Builder[In, H, T]) BuildComplete(inputs []In) (*Tree[H, T], error) {
	b.checkNoPending("BuildComplete")
	if len(inputs) == 0 {
		return nil, ErrEmptyTree
	}
	return b.core.buildComplete(inputs, nextPowerOfTwo(len(inputs))), nil
}

func (b *Builder[In, H, T]) checkNoPending(op string) {
	if len(b.pending) != 0 {
		panic(fmt.Errorf(
			"BUG: %s called on a builder with %d pending incremental nodes",
			op, len(b.pending),
		))
	}
}

func (c core[In, H, T]) buildBalanced(inputs []In) *Tree[H, T] {
	n := len(inputs)
	if n == 1 {
		return c.makeLeafTree(inputs[0])
	}

	leftLen := balancedSplit(n)
	left := c.buildBalanced(inputs[:leftLen])
	right := c.buildBalanced(inputs[leftLen:])
	return c.joinTrees(left, right)
}

func (c core[In, H, T]) buildFull(inputs []In) *Tree[H, T] {
	n := len(inputs)
	if n == 1 {
		return c.makeLeafTree(inputs[0])
	}

	leftLen := fullSplit(n)
	left := c.buildFull(inputs[:leftLen])
	right := c.buildFull(inputs[leftLen:])
	return c.joinTrees(left, right)
}

func (c core[In, H, T]) buildComplete(inputs []In, perfectLen int) *Tree[H, T] {
	n := len(inputs)
	leftLen := perfectLen / 2
	switch {
	case n <= leftLen:
		// No right subtree at this level.
		// This is still an internal node, because n <= perfectLen/2
		// can never hold when perfectLen == 1.
		return c.chainTree(c.buildComplete(inputs, leftLen))
	case n == 1:
		return c.makeLeafTree(inputs[0])
	default:
		// leftLen < n here, so the right half is never empty.
		left := c.buildComplete(inputs[:leftLen], leftLen)
		right := c.buildComplete(inputs[leftLen:], leftLen)
		return c.joinTrees(left, right)
	}
}

// balancedSplit returns the left subtree leaf count
// for a balanced split of n leaves: ceil(n/2).
func balancedSplit(n int) int {
	leftLen := (n + 1) / 2
	assertSplit(n, leftLen)
	return leftLen
}

// fullSplit returns the left subtree leaf count for a full-tree split
// of n leaves: ceil(n/2) rounded up to the next power of two,
// so that the left subtree is always perfect.
func fullSplit(n int) int {
	leftLen := nextPowerOfTwo((n + 1) / 2)
	assertSplit(n, leftLen)
	return leftLen
}

// assertSplit guards the invariant that no split of n >= 2 leaves
// ever produces an empty half.
func assertSplit(n, leftLen int) {
	if leftLen <= 0 || leftLen >= n {
		panic(fmt.Errorf(
			"BUG: splitting %d leaves produced halves of %d and %d",
			n, leftLen, n-leftLen,
		))
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
