// Package dmerkle builds immutable Merkle trees that are generic over
// the hashed input type, the hash output type, and the data stored in
// leaf nodes.
//
// A tree is produced either incrementally with a [Builder],
// pushing leaves and previously built subtrees before calling
// [*Builder.Finish], or in bulk from a known-length input slice
// with one of the shape-specific build methods:
// [*Builder.BuildBalanced], [*Builder.BuildFull], and
// [*Builder.BuildComplete].
//
// The [ParallelBuilder] type offers the same three bulk shapes,
// distributing leaf hashing and subtree assembly across goroutines.
// For the same input and shape, the parallel builder produces a tree
// that is node-for-node identical to the sequential builder's output.
//
// Concrete hash functions are plugged in through the [Hasher] interface;
// ready-made SHA-256 and SHA3-256 implementations live in the
// dmsha256 and dmsha3 subpackages.
package dmerkle
