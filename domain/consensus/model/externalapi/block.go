package externalapi

// Sizes, in bytes, of the serialized header fields
const (
	HeaderVersionSize      = 4
	HeaderPreviousHashSize = DomainHashSize
	HeaderMerkleRootSize   = DomainHashSize
	HeaderTimestampSize    = 8
	HeaderDifficultySize   = 4
	HeaderNonceSize        = 8

	// HeaderSize is the size of a fully serialized header
	HeaderSize = HeaderVersionSize + HeaderPreviousHashSize + HeaderMerkleRootSize +
		HeaderTimestampSize + HeaderDifficultySize + HeaderNonceSize
)

// DomainBlock represents a block: a header committing to an ordered
// sequence of transactions.
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction

	transactionIDs map[DomainTransactionID]struct{}
}

// NewDomainBlock returns a block with the given header and no transactions
func NewDomainBlock(header *DomainBlockHeader) *DomainBlock {
	return &DomainBlock{
		Header:         header,
		Transactions:   []*DomainTransaction{},
		transactionIDs: make(map[DomainTransactionID]struct{}),
	}
}

// AppendTransaction appends the transaction to the block and records its ID.
// It does not touch the header; callers are responsible for keeping the
// merkle root in sync.
func (block *DomainBlock) AppendTransaction(transaction *DomainTransaction, transactionID *DomainTransactionID) {
	if block.transactionIDs == nil {
		block.transactionIDs = make(map[DomainTransactionID]struct{})
	}
	block.Transactions = append(block.Transactions, transaction)
	block.transactionIDs[*transactionID] = struct{}{}
}

// HasTransactionID returns whether a transaction with the given ID was
// appended to this block
func (block *DomainBlock) HasTransactionID(transactionID *DomainTransactionID) bool {
	if block == nil || len(block.transactionIDs) == 0 {
		return false
	}
	_, ok := block.transactionIDs[*transactionID]
	return ok
}

// TransactionCount returns the number of transactions in the block
func (block *DomainBlock) TransactionCount() int {
	return len(block.Transactions)
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]*DomainTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionClone[i] = tx.Clone()
	}
	transactionIDsClone := make(map[DomainTransactionID]struct{}, len(block.transactionIDs))
	for id := range block.transactionIDs {
		transactionIDsClone[id] = struct{}{}
	}

	return &DomainBlock{
		Header:         block.Header.Clone(),
		Transactions:   transactionClone,
		transactionIDs: transactionIDsClone,
	}
}

// Equal returns whether block equals to other
func (block *DomainBlock) Equal(other *DomainBlock) bool {
	if block == nil || other == nil {
		return block == other
	}

	if len(block.Transactions) != len(other.Transactions) {
		return false
	}

	if !block.Header.Equal(other.Header) {
		return false
	}

	for i, tx := range block.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}

	return true
}

// DomainBlockHeader represents the header part of a block.
// The previous hash, merkle root, difficulty and nonce start out unset and
// have to be set before the header can be serialized for consensus purposes.
type DomainBlockHeader struct {
	version            uint32
	previousHash       *DomainHash
	merkleRoot         *DomainHash
	timeInMilliseconds int64
	difficulty         uint32
	nonce              uint64

	isDifficultySet bool
	isNonceSet      bool
}

// NewDomainBlockHeader returns a header with only its version and timestamp set
func NewDomainBlockHeader(version uint32, timeInMilliseconds int64) *DomainBlockHeader {
	return &DomainBlockHeader{
		version:            version,
		timeInMilliseconds: timeInMilliseconds,
	}
}

// NewCompleteDomainBlockHeader returns a header with all of its fields set
func NewCompleteDomainBlockHeader(version uint32, previousHash *DomainHash, merkleRoot *DomainHash,
	timeInMilliseconds int64, difficulty uint32, nonce uint64) *DomainBlockHeader {

	header := NewDomainBlockHeader(version, timeInMilliseconds)
	header.SetPreviousHash(previousHash)
	header.SetMerkleRoot(merkleRoot)
	header.SetDifficulty(difficulty)
	header.SetNonce(nonce)
	return header
}

// Version returns the header version
func (header *DomainBlockHeader) Version() uint32 {
	return header.version
}

// PreviousHash returns the hash of the previous block, or nil if unset
func (header *DomainBlockHeader) PreviousHash() *DomainHash {
	return header.previousHash
}

// MerkleRoot returns the merkle root, or nil if unset
func (header *DomainBlockHeader) MerkleRoot() *DomainHash {
	return header.merkleRoot
}

// TimeInMilliseconds returns the creation time of the header
func (header *DomainBlockHeader) TimeInMilliseconds() int64 {
	return header.timeInMilliseconds
}

// Difficulty returns the difficulty the header claims to satisfy
func (header *DomainBlockHeader) Difficulty() uint32 {
	return header.difficulty
}

// Nonce returns the header nonce
func (header *DomainBlockHeader) Nonce() uint64 {
	return header.nonce
}

// SetPreviousHash sets the hash of the previous block
func (header *DomainBlockHeader) SetPreviousHash(previousHash *DomainHash) {
	header.previousHash = previousHash
}

// SetMerkleRoot sets the merkle root
func (header *DomainBlockHeader) SetMerkleRoot(merkleRoot *DomainHash) {
	header.merkleRoot = merkleRoot
}

// SetDifficulty sets the difficulty the header claims to satisfy
func (header *DomainBlockHeader) SetDifficulty(difficulty uint32) {
	header.difficulty = difficulty
	header.isDifficultySet = true
}

// SetNonce sets the nonce
func (header *DomainBlockHeader) SetNonce(nonce uint64) {
	header.nonce = nonce
	header.isNonceSet = true
}

// IsComplete returns whether every settable field of the header was set
func (header *DomainBlockHeader) IsComplete() bool {
	return header.previousHash != nil && header.merkleRoot != nil &&
		header.isDifficultySet && header.isNonceSet
}

// Size returns the sum of the byte lengths of all header fields
func (header *DomainBlockHeader) Size() int {
	return HeaderSize
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	clone := *header
	return &clone
}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	return header.version == other.version &&
		header.previousHash.Equal(other.previousHash) &&
		header.merkleRoot.Equal(other.merkleRoot) &&
		header.timeInMilliseconds == other.timeInMilliseconds &&
		header.difficulty == other.difficulty &&
		header.nonce == other.nonce &&
		header.isDifficultySet == other.isDifficultySet &&
		header.isNonceSet == other.isNonceSet
}
