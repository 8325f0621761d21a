package constants

const (
	// BlockVersion represents the current version of blocks mined and the maximum block version
	// this node is able to validate
	BlockVersion = 1

	// TransactionVersion is the current latest supported transaction version.
	TransactionVersion = 1

	// HashBits is the bit length of a block hash. A difficulty d yields the
	// target 2^(HashBits - d).
	HashBits = 256
)
