package blockstore

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/kaspanet/powledger/domain/consensus/model"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/blockhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/serialization"
	"github.com/kaspanet/powledger/infrastructure/db/database"
	"github.com/pkg/errors"
)

var bucket = database.MakeBucket([]byte("blocks"))
var countKey = database.MakeBucket(nil).Key([]byte("blocks-count"))
var tipKey = database.MakeBucket(nil).Key([]byte("tip"))

// blockStore represents a store of blocks
type blockStore struct {
	mtx   sync.RWMutex
	db    database.Database
	cache map[externalapi.DomainHash]*externalapi.DomainBlock
	count uint64
	tip   *externalapi.DomainHash
}

// New instantiates a new BlockStore over db, picking up any blocks
// a previous instance left there
func New(db database.Database) (model.BlockStore, error) {
	blockStore := &blockStore{
		db:    db,
		cache: make(map[externalapi.DomainHash]*externalapi.DomainBlock),
	}

	err := blockStore.initializeCount()
	if err != nil {
		return nil, err
	}
	err = blockStore.reconcileCount()
	if err != nil {
		return nil, err
	}
	err = blockStore.initializeTip()
	if err != nil {
		return nil, err
	}
	if blockStore.count > 0 {
		log.Infof("Loaded a block store of %d blocks with tip %s", blockStore.count, blockStore.tip)
	}

	return blockStore, nil
}

func (bs *blockStore) initializeCount() error {
	count := uint64(0)
	hasCountBytes, err := bs.db.Has(countKey)
	if err != nil {
		return err
	}
	if hasCountBytes {
		countBytes, err := bs.db.Get(countKey)
		if err != nil {
			return err
		}
		count, err = bs.deserializeBlockCount(countBytes)
		if err != nil {
			return err
		}
	}
	bs.count = count
	return nil
}

// reconcileCount walks the blocks bucket and repairs the persisted count
// if it disagrees with the number of stored blocks. Insert writes the block
// before the count, so an interrupted Insert leaves the count behind.
func (bs *blockStore) reconcileCount() error {
	cursor, err := bs.db.Cursor(bucket)
	if err != nil {
		return err
	}
	defer cursor.Close()

	stored := uint64(0)
	for cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return err
		}
		if len(key.Suffix()) != externalapi.DomainHashSize {
			return errors.Errorf("key %s in the blocks bucket is not a block hash", key)
		}
		stored++
	}
	if stored == bs.count {
		return nil
	}

	log.Warnf("The persisted block count is %d while %d blocks are stored. Repairing it", bs.count, stored)
	err = bs.db.Put(countKey, bs.serializeBlockCount(stored))
	if err != nil {
		return err
	}
	bs.count = stored
	return nil
}

func (bs *blockStore) initializeTip() error {
	hasTip, err := bs.db.Has(tipKey)
	if err != nil {
		return err
	}
	if !hasTip {
		if bs.count > 0 {
			return errors.Errorf("the block store holds %d blocks but no tip", bs.count)
		}
		return nil
	}
	tipBytes, err := bs.db.Get(tipKey)
	if err != nil {
		return err
	}
	tip, err := externalapi.NewDomainHashFromByteSlice(tipBytes)
	if err != nil {
		return err
	}
	hasTipBlock, err := bs.db.Has(bs.hashAsKey(tip))
	if err != nil {
		return err
	}
	if !hasTipBlock {
		return errors.Errorf("the tip %s is not a stored block", tip)
	}
	bs.tip = tip
	return nil
}

// Insert stores the block under blockHash and makes it the tip. An existing
// entry is never overwritten: inserting a known hash returns false.
func (bs *blockStore) Insert(blockHash *externalapi.DomainHash, block *externalapi.DomainBlock) (bool, error) {
	bs.mtx.Lock()
	defer bs.mtx.Unlock()

	exists, err := bs.hasBlock(blockHash)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	blockBytes, err := bs.serializeBlock(block)
	if err != nil {
		return false, err
	}
	err = bs.db.Put(bs.hashAsKey(blockHash), blockBytes)
	if err != nil {
		return false, err
	}
	err = bs.db.Put(countKey, bs.serializeBlockCount(bs.count+1))
	if err != nil {
		return false, err
	}
	err = bs.db.Put(tipKey, blockHash.ByteSlice())
	if err != nil {
		return false, err
	}

	bs.count++
	bs.tip = blockHash
	bs.cache[*blockHash] = block.Clone()
	log.Tracef("Stored block %s (%d bytes)", blockHash, len(blockBytes))
	return true, nil
}

// Block gets the block associated with the given blockHash
func (bs *blockStore) Block(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	bs.mtx.RLock()
	block, ok := bs.cache[*blockHash]
	bs.mtx.RUnlock()
	if ok {
		return block.Clone(), nil
	}

	blockBytes, err := bs.db.Get(bs.hashAsKey(blockHash))
	if err != nil {
		return nil, err
	}

	block, err = bs.deserializeBlock(blockBytes)
	if err != nil {
		return nil, err
	}

	bs.mtx.Lock()
	bs.cache[*blockHash] = block
	bs.mtx.Unlock()
	return block.Clone(), nil
}

// HasBlock returns whether a block with a given hash exists in the store.
func (bs *blockStore) HasBlock(blockHash *externalapi.DomainHash) (bool, error) {
	bs.mtx.RLock()
	defer bs.mtx.RUnlock()

	return bs.hasBlock(blockHash)
}

func (bs *blockStore) hasBlock(blockHash *externalapi.DomainHash) (bool, error) {
	if _, ok := bs.cache[*blockHash]; ok {
		return true, nil
	}
	return bs.db.Has(bs.hashAsKey(blockHash))
}

// Tip returns the hash of the most recently inserted block, or nil if the
// store is empty
func (bs *blockStore) Tip() *externalapi.DomainHash {
	bs.mtx.RLock()
	defer bs.mtx.RUnlock()

	return bs.tip
}

// Count returns the number of stored blocks
func (bs *blockStore) Count() uint64 {
	bs.mtx.RLock()
	defer bs.mtx.RUnlock()

	return bs.count
}

func (bs *blockStore) serializeBlock(block *externalapi.DomainBlock) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := serialization.SerializeBlock(buf, block)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (bs *blockStore) deserializeBlock(blockBytes []byte) (*externalapi.DomainBlock, error) {
	header, transactions, err := serialization.DeserializeBlock(bytes.NewReader(blockBytes))
	if err != nil {
		return nil, err
	}
	return blockhelper.FromTransactions(header, transactions), nil
}

func (bs *blockStore) hashAsKey(hash *externalapi.DomainHash) *database.Key {
	return bucket.Key(hash.ByteSlice())
}

func (bs *blockStore) serializeBlockCount(count uint64) []byte {
	countBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(countBytes, count)
	return countBytes
}

func (bs *blockStore) deserializeBlockCount(countBytes []byte) (uint64, error) {
	if len(countBytes) != 8 {
		return 0, errors.Errorf("block count is %d bytes long instead of 8", len(countBytes))
	}
	return binary.LittleEndian.Uint64(countBytes), nil
}
