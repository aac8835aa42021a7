// Package dmsha3 provides a [dmerkle.Hasher] backed by SHA3-256.
//
// It applies the same domain separation scheme as dmsha256:
// a 0x00 prefix on leaf input, a 0x01 prefix on concatenated child
// hashes, and a 0x00/0x01 leaf/internal tag ahead of every child hash.
package dmsha3

import (
	"fmt"

	"github.com/gordian-engine/dmerkle"
	"golang.org/x/crypto/sha3"
)

// Size is the size of the hash values in bytes.
const Size = 32

// Sum is the hash output type of this package's [Hasher].
type Sum = [Size]byte

const (
	leafTag = 0x00
	nodeTag = 0x01
)

// Hasher is a [dmerkle.Hasher] over byte-slice input, backed by SHA3-256.
//
// The type parameter is the leaf data type of the trees being built;
// it does not participate in hashing.
// The zero value is ready to use and safe for concurrent use.
type Hasher[T any] struct{}

func (Hasher[T]) HashLeaf(in []byte) Sum {
	h := sha3.New256()
	h.Write([]byte{leafTag})
	h.Write(in)

	var out Sum
	h.Sum(out[:0])
	return out
}

func (Hasher[T]) HashNodes(children dmerkle.Children[Sum, T]) Sum {
	h := sha3.New256()
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
