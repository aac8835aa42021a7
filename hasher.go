package dmerkle

// LeafHasher computes the hash of a single input value,
// to populate a leaf node of the tree under construction.
//
// A LeafHasher must be deterministic and must be safe to call concurrently:
// the [ParallelBuilder] shares one instance across goroutines.
type LeafHasher[In, H any] interface {
	// HashLeaf returns the hash of one input value.
	HashLeaf(in In) H
}

// NodeHasher computes the hash of an ordered sequence of child nodes,
// to populate a non-leaf node of the tree under construction.
//
// The arity is not fixed: the children view may hold any number of nodes,
// including exactly one for a chain node.
//
// To defend against second-preimage ambiguity between leaf data and
// concatenated child hashes, implementations should mix into the digest
// a marker distinguishing leaf children from internal children,
// in addition to any outer domain-separation prefix.
// See dmsha256 for the reference scheme.
//
// A NodeHasher must be deterministic and must be safe to call concurrently.
type NodeHasher[H, T any] interface {
	// HashNodes returns the parent hash for the given ordered children.
	HashNodes(children Children[H, T]) H
}

// Hasher is the full hashing capability consumed by the builders.
//
// The two roles are computed from disjoint data:
// HashLeaf only ever sees input values,
// and HashNodes only ever sees already-computed node hashes.
type Hasher[In, H, T any] interface {
	LeafHasher[In, H]
	NodeHasher[H, T]
}
