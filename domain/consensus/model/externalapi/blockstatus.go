package externalapi

// BlockStatus represents the outcome of submitting a block to the ledger
type BlockStatus byte

const (
	// StatusRejected indicates that the block failed validation and was
	// not stored.
	StatusRejected BlockStatus = iota

	// StatusAccepted indicates that the block was validated, stored and
	// became the chain tip.
	StatusAccepted

	// StatusDuplicate indicates that a block with the same hash is
	// already stored.
	StatusDuplicate
)

var blockStatusStrings = map[BlockStatus]string{
	StatusRejected:  "rejected",
	StatusAccepted:  "accepted",
	StatusDuplicate: "duplicate",
}

func (bs BlockStatus) String() string {
	return blockStatusStrings[bs]
}
