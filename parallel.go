package dmerkle

import (
	"fmt"
	"math/bits"
	"runtime"
	"sync"
)

// ParallelBuilder constructs Merkle trees by distributing work
// across goroutines.
//
// It offers the same three bulk shapes as the sequential [Builder]
// and is guaranteed to produce a tree that is node-for-node identical
// to the sequential builder's output for the same input and shape:
// leaves are hashed independently with their positions preserved,
// and every join reuses the sequential assembly rules.
//
// Construction happens in two stages.
// First every input element is mapped to a single-leaf tree,
// with the mapping striped across a bounded set of worker goroutines.
// Then the leaf sequence is reduced with the shape's split arithmetic,
// forking the two halves of each split as concurrently schedulable
// tasks down to a depth derived from the goroutine budget,
// below which reduction proceeds on the calling goroutine.
//
// The hasher and extractor are shared across all branches and
// must therefore be safe for concurrent use;
// no other state is shared, so the builder needs no locks.
// A build runs to completion or to a propagated panic;
// partial results are never observable.
type ParallelBuilder[In, H, T any] struct {
	core[In, H, T]

	maxGoroutines int
}

// ParallelConfig adjusts how a [ParallelBuilder] schedules its work.
type ParallelConfig struct {
	// MaxGoroutines bounds the number of goroutines
	// a single build operation may occupy at once.
	// Zero means runtime.GOMAXPROCS(0).
	MaxGoroutines int
}

// NewParallelBuilder returns a ParallelBuilder using the given hasher
// and leaf data extractor.
func NewParallelBuilder[In, H, T any](
	h Hasher[In, H, T],
	x ExtractData[In, T],
	cfg ParallelConfig,
) *ParallelBuilder[In, H, T] {
	if cfg.MaxGoroutines < 0 {
		panic(fmt.Errorf(
			"BUG: MaxGoroutines must not be negative (got %d)",
			cfg.MaxGoroutines,
		))
	}

	return &ParallelBuilder[In, H, T]{
		core: core[In, H, T]{hasher: h, extract: x},

		maxGoroutines: cfg.MaxGoroutines,
	}
}

// BuildBalanced is the parallel equivalent of [*Builder.BuildBalanced],
// producing an identical tree.
//
// Returns [ErrEmptyTree] if inputs is empty.
func (b *ParallelBuilder[In, H, T]) BuildBalanced(inputs []In) (*Tree[H, T], error) {
	leaves, err := b.makeLeaves(inputs)
	if err != nil {
		return nil, err
	}
	return b.reduceBalanced(leaves, b.forkDepth()), nil
}

// BuildFull is the parallel equivalent of [*Builder.BuildFull],
// producing an identical tree.
//
// Returns [ErrEmptyTree] if inputs is empty.
func (b *ParallelBuilder[In, H, T]) BuildFull(inputs []In) (*Tree[H, T], error) {
	leaves, err := b.makeLeaves(inputs)
	if err != nil {
		return nil, err
	}
	return b.reduceFull(leaves, b.forkDepth()), nil
}

// BuildComplete is the parallel equivalent of [*Builder.BuildComplete],
// producing an identical tree.
//
// Returns [ErrEmptyTree] if inputs is empty.
func (b *ParallelBuilder[In, H, T]) BuildComplete(inputs []In) (*Tree[H, T], error) {
	leaves, err := b.makeLeaves(inputs)
	if err != nil {
		return nil, err
	}
	perfectLen := nextPowerOfTwo(len(leaves))
	return b.reduceComplete(leaves, perfectLen, b.forkDepth()), nil
}

func (b *ParallelBuilder[In, H, T]) workers() int {
	if b.maxGoroutines > 0 {
		return b.maxGoroutines
	}
	return runtime.GOMAXPROCS(0)
}

// forkDepth is how many levels of reduction may fork goroutines:
// the reduce stage runs at most 2^forkDepth concurrent tasks,
// the largest power of two not exceeding the goroutine budget.
func (b *ParallelBuilder[In, H, T]) forkDepth() int {
	return bits.Len(uint(b.workers())) - 1
}

// makeLeaves maps every input element to a single-leaf tree,
// striping the elements across worker goroutines.
// Element i of the result corresponds to element i of the input.
func (b *ParallelBuilder[In, H, T]) makeLeaves(inputs []In) ([]*Tree[H, T], error) {
	n := len(inputs)
	if n == 0 {
		return nil, ErrEmptyTree
	}

	leaves := make([]*Tree[H, T], n)

	workers := min(b.workers(), n)
	if workers <= 1 {
		for i, in := range inputs {
			leaves[i] = b.makeLeafTree(in)
		}
		return leaves, nil
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()

			// Strided assignment: each index is written by exactly
			// one goroutine, and position follows input order.
			for i := w; i < n; i += workers {
				leaves[i] = b.makeLeafTree(inputs[i])
			}
		}()
	}
	wg.Wait()

	return leaves, nil
}

func (b *ParallelBuilder[In, H, T]) reduceBalanced(
	trees []*Tree[H, T], depth int,
) *Tree[H, T] {
	n := len(trees)
	assertReducible(n)
	if n == 1 {
		return trees[0]
	}

	leftLen := balancedSplit(n)
	left, right := b.fork(depth,
		func(d int) *Tree[H, T] { return b.reduceBalanced(trees[:leftLen], d) },
		func(d int) *Tree[H, T] { return b.reduceBalanced(trees[leftLen:], d) },
	)
	return b.joinTrees(left, right)
}

func (b *ParallelBuilder[In, H, T]) reduceFull(
	trees []*Tree[H, T], depth int,
) *Tree[H, T] {
	n := len(trees)
	assertReducible(n)
	if n == 1 {
		return trees[0]
	}

	leftLen := fullSplit(n)
	left, right := b.fork(depth,
		func(d int) *Tree[H, T] { return b.reduceFull(trees[:leftLen], d) },
		func(d int) *Tree[H, T] { return b.reduceFull(trees[leftLen:], d) },
	)
	return b.joinTrees(left, right)
}

func (b *ParallelBuilder[In, H, T]) reduceComplete(
	trees []*Tree[H, T], perfectLen, depth int,
) *Tree[H, T] {
	n := len(trees)
	assertReducible(n)

	leftLen := perfectLen / 2
	switch {
	case n <= leftLen:
		// The chain case has a single branch, so there is
		// nothing to run concurrently; recurse directly.
		return b.chainTree(b.reduceComplete(trees, leftLen, depth))
	case n == 1:
		return trees[0]
	default:
		left, right := b.fork(depth,
			func(d int) *Tree[H, T] {
				return b.reduceComplete(trees[:leftLen], leftLen, d)
			},
			func(d int) *Tree[H, T] {
				return b.reduceComplete(trees[leftLen:], leftLen, d)
			},
		)
		return b.joinTrees(left, right)
	}
}

// fork evaluates the two halves of a split,
// spawning the right half onto a new goroutine
// while the depth budget lasts,
// and joining both results before returning.
// Below the budget both halves run on the calling goroutine.
func (b *ParallelBuilder[In, H, T]) fork(
	depth int,
	left, right func(depth int) *Tree[H, T],
) (*Tree[H, T], *Tree[H, T]) {
	if depth <= 0 {
		return left(0), right(0)
	}

	var rt *Tree[H, T]
	done := make(chan struct{})
	go func() {
		defer close(done)
		rt = right(depth - 1)
	}()

	lt := left(depth - 1)
	<-done

	return lt, rt
}

func assertReducible(n int) {
	if n == 0 {
		panic(fmt.Errorf("BUG: reduce reached an empty subtree slice"))
	}
}
