// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/33cn/wager/common"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
	"github.com/golang/snappy"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var (
	blockLastHeight = []byte("blockLastHeight")
	storeLog        = log.New("module", "blockchain.store")
)

//存储block hash对应的blockbody信息
func calcHashToBlockBodyKey(hash []byte) []byte {
	return []byte(fmt.Sprintf("Body:%s", common.ToHex(hash)))
}

//存储block hash对应的header信息
func calcHashToBlockHeaderKey(hash []byte) []byte {
	return []byte(fmt.Sprintf("Header:%s", common.ToHex(hash)))
}

//存储block height 对应的block  hash
func calcHeightToHashKey(height int64) []byte {
	return []byte(fmt.Sprintf("Height:%018d", height))
}

//存储交易哈希对应的执行结果
func calcTxKey(hash []byte) []byte {
	return []byte(fmt.Sprintf("TX:%s", common.ToHex(hash)))
}

// blockBody 区块中除了区块头的部分, snappy 压缩之后存储
type blockBody struct {
	Txs      []*types.Transaction `json:"txs"`
	Receipts []*types.ReceiptData `json:"receipts"`
}

// BlockStore 区块的存储
type BlockStore struct {
	db         dbm.DB
	mu         sync.RWMutex
	height     int64
	lastHeader *types.Header
}

// NewBlockStore 从数据库中加载最新的区块头, 空数据库的高度为 -1
func NewBlockStore(db dbm.DB) (*BlockStore, error) {
	bs := &BlockStore{db: db, height: -1}
	height, err := loadBlockStoreHeight(db)
	if err != nil {
		if err == types.ErrBlockNotFound {
			storeLog.Info("load block height error, may be init database")
			return bs, nil
		}
		return nil, err
	}
	header, err := bs.GetBlockHeaderByHeight(height)
	if err != nil {
		return nil, errors.Wrapf(err, "database may be crash, height = %d", height)
	}
	bs.height = height
	bs.lastHeader = header
	return bs, nil
}

func loadBlockStoreHeight(db dbm.DB) (int64, error) {
	value, err := db.Get(blockLastHeight)
	if err != nil || len(value) == 0 {
		return -1, types.ErrBlockNotFound
	}
	height, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return -1, errors.Wrap(err, "loadBlockStoreHeight")
	}
	return height, nil
}

// Height 返回BlockStore保存的当前block高度
func (bs *BlockStore) Height() int64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.height
}

// LastHeader 返回BlockStore保存的当前blockheader
func (bs *BlockStore) LastHeader() *types.Header {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastHeader
}

func (bs *BlockStore) setLastHeader(header *types.Header) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.height = header.Height
	bs.lastHeader = header
}

// SaveBlock 区块头, 区块体, 高度索引以及交易索引写入 batch
func (bs *BlockStore) SaveBlock(storeBatch dbm.Batch, detail *types.BlockDetail) *types.Header {
	block := detail.Block
	header := block.GetHeader()
	body := &blockBody{Txs: block.Txs, Receipts: detail.Receipts}
	storeBatch.Set(calcHashToBlockBodyKey(header.Hash), snappy.Encode(nil, types.Encode(body)))
	storeBatch.Set(calcHashToBlockHeaderKey(header.Hash), types.Encode(header))
	storeBatch.Set(calcHeightToHashKey(block.Height), header.Hash)
	for i, tx := range block.Txs {
		var receipt *types.ReceiptData
		if i < len(detail.Receipts) {
			receipt = detail.Receipts[i]
		}
		txresult := &types.TxResult{
			Hash:    common.ToHex(tx.Hash()),
			Height:  block.Height,
			Index:   int32(i),
			Receipt: receipt,
		}
		storeBatch.Set(calcTxKey(tx.Hash()), types.Encode(txresult))
	}
	//更新最新的block 高度
	storeBatch.Set(blockLastHeight, []byte(strconv.FormatInt(block.Height, 10)))
	storeLog.Debug("SaveBlock success", "blockheight", block.Height, "hash", common.ToHex(header.Hash))
	return header
}

// GetBlockHashByHeight 通过高度获取区块哈希
func (bs *BlockStore) GetBlockHashByHeight(height int64) ([]byte, error) {
	hash, err := bs.db.Get(calcHeightToHashKey(height))
	if err != nil || len(hash) == 0 {
		return nil, types.ErrBlockNotFound
	}
	return hash, nil
}

// GetBlockHeaderByHeight 通过高度获取区块头
func (bs *BlockStore) GetBlockHeaderByHeight(height int64) (*types.Header, error) {
	hash, err := bs.GetBlockHashByHeight(height)
	if err != nil {
		return nil, err
	}
	return bs.GetBlockHeaderByHash(hash)
}

// GetBlockHeaderByHash 通过哈希获取区块头
func (bs *BlockStore) GetBlockHeaderByHash(hash []byte) (*types.Header, error) {
	data, err := bs.db.Get(calcHashToBlockHeaderKey(hash))
	if err != nil || len(data) == 0 {
		return nil, types.ErrBlockNotFound
	}
	var header types.Header
	if err := types.Decode(data, &header); err != nil {
		storeLog.Error("GetBlockHeaderByHash", "hash", common.ToHex(hash), "err", err)
		return nil, err
	}
	return &header, nil
}

// LoadBlockByHeight 通过高度获取区块以及收据
func (bs *BlockStore) LoadBlockByHeight(height int64) (*types.BlockDetail, error) {
	header, err := bs.GetBlockHeaderByHeight(height)
	if err != nil {
		return nil, err
	}
	data, err := bs.db.Get(calcHashToBlockBodyKey(header.Hash))
	if err != nil || len(data) == 0 {
		return nil, types.ErrBlockNotFound
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "LoadBlockByHeight snappy")
	}
	var body blockBody
	if err := types.Decode(raw, &body); err != nil {
		return nil, err
	}
	block := &types.Block{
		ParentHash: header.ParentHash,
		TxHash:     header.TxHash,
		Height:     header.Height,
		BlockTime:  header.BlockTime,
		Nonce:      header.Nonce,
		Txs:        body.Txs,
	}
	return &types.BlockDetail{Block: block, Receipts: body.Receipts}, nil
}

// GetTx 通过交易哈希获取执行结果
func (bs *BlockStore) GetTx(hash []byte) (*types.TxResult, error) {
	data, err := bs.db.Get(calcTxKey(hash))
	if err != nil || len(data) == 0 {
		return nil, types.ErrNotFound
	}
	var txresult types.TxResult
	if err := types.Decode(data, &txresult); err != nil {
		return nil, err
	}
	return &txresult, nil
}
