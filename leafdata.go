package dmerkle

// ExtractData decides what, if anything, a leaf node stores
// besides its hash.
//
// Merkle trees are not generally used to own the data they hash,
// but information derived from the input may need to ride along
// with the leaves.
// The builders never inspect the extracted value;
// they only store it and hand it back through [*Leaf.Data].
//
// Implementations must be safe to call concurrently,
// as the [ParallelBuilder] shares one instance across goroutines.
// The stock implementations in this package are all stateless.
type ExtractData[In, T any] interface {
	// Extract produces the leaf data for one input value.
	// The input is consumed: the same value is never also
	// passed to the hasher afterwards.
	Extract(in In) T
}

// NoData is an [ExtractData] that discards the input.
// Trees built with it carry only hashes in their leaf nodes.
type NoData[In any] struct{}

func (NoData[In]) Extract(In) struct{} { return struct{}{} }

// Owned is an [ExtractData] that moves the input value
// into the leaf node unchanged.
type Owned[In any] struct{}

func (Owned[In]) Extract(in In) In { return in }

// ExtractFunc adapts a plain function to the [ExtractData] interface.
type ExtractFunc[In, T any] func(In) T

func (f ExtractFunc[In, T]) Extract(in In) T { return f(in) }
