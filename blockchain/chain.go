// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockchain 区块的存储和查询, 同时为执行器提供已经提交的区块哈希
package blockchain

import (
	"bytes"
	"sync"

	"github.com/33cn/wager/common"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
	lru "github.com/hashicorp/golang-lru"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var chainlog = log.New("module", "blockchain")

// BlockChain 区块链
type BlockChain struct {
	cfg         *types.BlockChain
	db          dbm.DB
	blockStore  *BlockStore
	headerCache *lru.Cache
	//同一时刻只能有一个区块被写入
	chainLock sync.Mutex
}

// New 新建, cfg 为 nil 时使用默认配置
func New(cfg *types.BlockChain, db dbm.DB) (*BlockChain, error) {
	if cfg == nil {
		cfg = &types.BlockChain{}
	}
	if cfg.DefCacheSize <= 0 {
		cfg.DefCacheSize = 128
	}
	if cfg.HashRetention <= 0 {
		cfg.HashRetention = types.DefaultHashRetention
	}
	cache, err := lru.New(int(cfg.DefCacheSize))
	if err != nil {
		return nil, errors.Wrap(err, "blockchain header cache")
	}
	store, err := NewBlockStore(db)
	if err != nil {
		return nil, err
	}
	chain := &BlockChain{
		cfg:         cfg,
		db:          db,
		blockStore:  store,
		headerCache: cache,
	}
	chainlog.Info("load blockchain", "height", store.Height(), "hashRetention", cfg.HashRetention)
	return chain, nil
}

// Height 最新区块高度, 还没有区块时为 -1
func (chain *BlockChain) Height() int64 {
	return chain.blockStore.Height()
}

// HashRetention 可以读取哈希的区块数量
func (chain *BlockChain) HashRetention() int64 {
	return chain.cfg.HashRetention
}

// GetLastHeader 最新的区块头
func (chain *BlockChain) GetLastHeader() (*types.Header, error) {
	header := chain.blockStore.LastHeader()
	if header == nil {
		return nil, types.ErrBlockNotFound
	}
	return header, nil
}

// GetHeader 通过高度获取区块头, 优先从缓存中读取
func (chain *BlockChain) GetHeader(height int64) (*types.Header, error) {
	if height < 0 || height > chain.Height() {
		return nil, types.ErrBlockNotFound
	}
	if v, ok := chain.headerCache.Get(height); ok {
		return v.(*types.Header), nil
	}
	header, err := chain.blockStore.GetBlockHeaderByHeight(height)
	if err != nil {
		return nil, err
	}
	chain.headerCache.Add(height, header)
	return header, nil
}

// GetBlock 通过高度获取区块以及收据
func (chain *BlockChain) GetBlock(height int64) (*types.BlockDetail, error) {
	if height < 0 || height > chain.Height() {
		return nil, types.ErrBlockNotFound
	}
	return chain.blockStore.LoadBlockByHeight(height)
}

// GetTx 通过交易哈希获取执行结果
func (chain *BlockChain) GetTx(hash []byte) (*types.TxResult, error) {
	return chain.blockStore.GetTx(hash)
}

// GetBlockHash 已提交区块的哈希
// 设最新高度为 last, 只有 last-hashRetention < height <= last 的区块哈希可以读取
func (chain *BlockChain) GetBlockHash(height int64) ([]byte, error) {
	last := chain.Height()
	if height < 0 || height > last {
		return nil, types.ErrBlockNotFound
	}
	if height <= last-chain.cfg.HashRetention {
		return nil, types.ErrBlockHashExpired
	}
	header, err := chain.GetHeader(height)
	if err != nil {
		return nil, err
	}
	return header.Hash, nil
}

// AddBlock 区块以及执行产生的kv在一个 batch 中写入
// kv 的 Value 为 nil 表示删除
func (chain *BlockChain) AddBlock(detail *types.BlockDetail, kvs []*types.KeyValue) (*types.Header, error) {
	if detail == nil || detail.Block == nil {
		return nil, types.ErrInvalidParam
	}
	chain.chainLock.Lock()
	defer chain.chainLock.Unlock()

	block := detail.Block
	last := chain.blockStore.LastHeader()
	if last == nil {
		if block.Height != 0 {
			return nil, types.ErrBlockHeight
		}
	} else {
		if block.Height != last.Height+1 {
			chainlog.Error("AddBlock", "height", block.Height, "last", last.Height)
			return nil, types.ErrBlockHeight
		}
		if !bytes.Equal(block.ParentHash, last.Hash) {
			chainlog.Error("AddBlock", "parent", common.ToHex(block.ParentHash), "last", common.ToHex(last.Hash))
			return nil, types.ErrParentHash
		}
	}
	if !bytes.Equal(block.TxHash, block.CalcTxHash()) {
		return nil, types.ErrInvalidParam
	}

	batch := chain.db.NewBatch(true)
	for _, kv := range kvs {
		if kv.Value == nil {
			batch.Delete(kv.Key)
		} else {
			batch.Set(kv.Key, kv.Value)
		}
	}
	header := chain.blockStore.SaveBlock(batch, detail)
	if err := batch.Write(); err != nil {
		return nil, errors.Wrap(err, "AddBlock batch.Write")
	}
	chain.blockStore.setLastHeader(header)
	chain.headerCache.Add(header.Height, header)
	chainlog.Debug("AddBlock", "height", header.Height, "hash", common.ToHex(header.Hash), "txs", header.TxCount, "kvs", len(kvs))
	return header, nil
}
