// Package dmsha256 provides a [dmerkle.Hasher] backed by SHA-256.
//
// The hashing scheme follows the Merkle tree hash definition of
// [IETF RFC 6962], with domain separation to protect against
// second-preimage attacks: a 0x00 byte prefixes the hash input of every
// leaf, and a 0x01 byte prefixes the concatenation of child hashes for
// an internal node. On top of that, each child hash in the concatenation
// is tagged with the same 0x00/0x01 byte according to whether the child
// is a leaf or an internal node, so that a leaf child and an internal
// child with coincidentally equal hash bytes cannot produce the same
// parent hash. In particular, a single-node chain over a subtree never
// hashes equal to the subtree itself.
//
// [IETF RFC 6962]: https://datatracker.ietf.org/doc/html/rfc6962#section-2.1
package dmsha256

import (
	"crypto/sha256"
	"fmt"

	"github.com/gordian-engine/dmerkle"
)

// Size is the size of the hash values in bytes.
const Size = sha256.Size

// Sum is the hash output type of this package's [Hasher].
// Being a fixed-size array, it is comparable, so trees built with it
// work with [dmerkle.Equal].
type Sum = [Size]byte

// Domain separation tags, as in RFC 6962.
const (
	leafTag = 0x00
	nodeTag = 0x01
)

// Hasher is a [dmerkle.Hasher] over byte-slice input, backed by SHA-256.
//
// The type parameter is the leaf data type of the trees being built;
// it does not participate in hashing.
// The zero value is ready to use and safe for concurrent use.
type Hasher[T any] struct{}

func (Hasher[T]) HashLeaf(in []byte) Sum {
	h := sha256.New()
	h.Write([]byte{leafTag})
	h.Write(in)

	var out Sum
	h.Sum(out[:0])
	return out
}

func (Hasher[T]) HashNodes(children dmerkle.Children[Sum, T]) Sum {
	h := sha256.New()
	h.Write([]byte{nodeTag})
	for _, n := range children.All() {
		switch n.(type) {
		case *dmerkle.Leaf[Sum, T]:
			h.Write([]byte{leafTag})
		case *dmerkle.Internal[Sum, T]:
			h.Write([]byte{nodeTag})
		default:
			panic(fmt.Errorf("BUG: unhandled node type %T", n))
		}

		hash := n.Hash()
		h.Write(hash[:])
	}

	var out Sum
	h.Sum(out[:0])
	return out
}
