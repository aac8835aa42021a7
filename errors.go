package dmerkle

import "errors"

// ErrEmptyTree is returned when a build is attempted
// over zero input elements.
//
// An empty tree is not a valid Merkle tree in this package's API.
// This is the only recoverable error the builders produce;
// every other misuse is a caller bug and panics.
var ErrEmptyTree = errors.New("attempted to build an empty Merkle tree")
