// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"math"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/hashes"
)

// nextPowerOfTwo returns the next highest power of two from a given number if
// it is not already a power of two. This is a helper function used during the
// calculation of a merkle tree.
func nextPowerOfTwo(n int) int {
	// Return the number if it's already a power of 2.
	if n&(n-1) == 0 {
		return n
	}

	// Figure out and return the next power of two.
	exponent := uint(math.Log2(float64(n))) + 1
	return 1 << exponent // 2^exponent
}

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. This is a helper
// function used to aid in the generation of a merkle tree.
func hashMerkleBranches(left, right *externalapi.DomainHash) *externalapi.DomainHash {
	writer := hashes.NewMerkleBranchHashWriter()
	writer.InfallibleWrite(left.ByteSlice())
	writer.InfallibleWrite(right.ByteSlice())
	return writer.Finalize()
}

// CalculateHashMerkleRoot calculates the merkle root of a tree consisting of
// the given transaction IDs. See `merkleRoot` for more info.
func CalculateHashMerkleRoot(transactions []*externalapi.DomainTransaction) *externalapi.DomainHash {
	txIDs := consensushashing.TransactionIDs(transactions)
	leaves := make([]*externalapi.DomainHash, len(txIDs))
	for i, txID := range txIDs {
		leaves[i] = (*externalapi.DomainHash)(txID)
	}
	return merkleRoot(leaves)
}

// merkleRoot creates a merkle tree from a slice of hashes, and returns its
// root. An empty slice yields the zero hash and a single hash is its own root.
//
// A merkle tree is a tree in which every non-leaf node is the hash of its
// children nodes. A diagram depicting how this works for transactions
// where h(x) is a sha256 hash follows:
//
//	         root = h1234 = h(h12 + h34)
//	        /                           \
//	  h12 = h(h1 + h2)            h34 = h(h3 + h4)
//	   /            \              /            \
//	h1 = h(tx1)  h2 = h(tx2)    h3 = h(tx3)  h4 = h(tx4)
//
// The above stored as a linear array is as follows:
//
//	[h1 h2 h3 h4 h12 h34 root]
//
// As the above shows, the merkle root is always the last element in the array.
//
// The number of inputs is not always a power of two which results in a
// balanced tree structure as above. In that case, parent nodes with no
// children are also zero and parent nodes with only a single left node
// are calculated by concatenating the left node with itself before hashing.
func merkleRoot(leaves []*externalapi.DomainHash) *externalapi.DomainHash {
	if len(leaves) == 0 {
		return &externalapi.DomainHash{}
	}

	// Calculate how many entries are required to hold the binary merkle
	// tree as a linear array and create an array of that size.
	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	merkles := make([]*externalapi.DomainHash, arraySize)

	// Create the base transaction hashes and populate the array with them.
	copy(merkles, leaves)

	// Start the array offset after the last transaction and adjusted to the
	// next power of two.
	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		// When there is no left child node, the parent is nil too.
		case merkles[i] == nil:
			merkles[offset] = nil

		// When there is no right child, the parent is generated by
		// hashing the concatenation of the left child with itself.
		case merkles[i+1] == nil:
			merkles[offset] = hashMerkleBranches(merkles[i], merkles[i])

		// The normal case sets the parent node to the hash of the
		// concatenation of the left and right children.
		default:
			merkles[offset] = hashMerkleBranches(merkles[i], merkles[i+1])
		}
		offset++
	}

	return merkles[len(merkles)-1]
}
