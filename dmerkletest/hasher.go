// Package dmerkletest provides test utilities for Merkle tree
// construction: a transparent test hasher whose output is readable in
// assertion failures, a compliance suite for user [dmerkle.Hasher]
// implementations, and structural tree checkers.
package dmerkletest

import (
	"strings"

	"github.com/gordian-engine/dmerkle"
)

// TagHasher is a transparent [dmerkle.Hasher] for tests.
//
// The "hash" of a leaf is its input bytes verbatim,
// and the hash of a sequence of children is the concatenation of
// their hashes, with each leaf child prefixed by '>' and each
// internal child wrapped in "#(...)".
// Every structural detail of a tree is therefore legible
// in its root hash string, and assertion failures show
// exactly where two trees diverge.
//
// The type parameter is the leaf data type of the trees being built;
// it does not participate in hashing.
type TagHasher[T any] struct{}

func (TagHasher[T]) HashLeaf(in []byte) string {
	return string(in)
}

func (TagHasher[T]) HashNodes(children dmerkle.Children[string, T]) string {
	var sb strings.Builder
	for _, n := range children.All() {
		switch n.(type) {
		case *dmerkle.Leaf[string, T]:
			sb.WriteByte('>')
			sb.WriteString(n.Hash())
		case *dmerkle.Internal[string, T]:
			sb.WriteString("#(")
			sb.WriteString(n.Hash())
			sb.WriteByte(')')
		}
	}
	return sb.String()
}
