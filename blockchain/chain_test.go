// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChain(t *testing.T, retention int64) (*BlockChain, dbm.DB) {
	db, err := dbm.NewDB("blockchain", "memdb", "", 0)
	require.NoError(t, err)
	chain, err := New(&types.BlockChain{DefCacheSize: 4, HashRetention: retention}, db)
	require.NoError(t, err)
	return chain, db
}

func nextBlock(parent *types.Header, txs ...*types.Transaction) *types.Block {
	block := &types.Block{Txs: txs, BlockTime: types.GenesisBlockTime}
	if parent != nil {
		block.ParentHash = parent.Hash
		block.Height = parent.Height + 1
		block.BlockTime = parent.BlockTime + 1
	}
	block.TxHash = block.CalcTxHash()
	return block
}

func addBlocks(t *testing.T, chain *BlockChain, n int) []*types.Header {
	var headers []*types.Header
	var parent *types.Header
	if chain.Height() >= 0 {
		parent, _ = chain.GetLastHeader()
	}
	for i := 0; i < n; i++ {
		block := nextBlock(parent)
		header, err := chain.AddBlock(&types.BlockDetail{Block: block}, nil)
		require.NoError(t, err)
		headers = append(headers, header)
		parent = header
	}
	return headers
}

func TestEmptyChain(t *testing.T) {
	chain, _ := newTestChain(t, 0)
	assert.Equal(t, int64(-1), chain.Height())
	assert.Equal(t, types.DefaultHashRetention, chain.HashRetention())
	_, err := chain.GetLastHeader()
	assert.Equal(t, types.ErrBlockNotFound, err)
	_, err = chain.GetBlockHash(0)
	assert.Equal(t, types.ErrBlockNotFound, err)
}

func TestAddBlock(t *testing.T) {
	chain, db := newTestChain(t, 0)
	genesis := nextBlock(nil)
	kvs := []*types.KeyValue{{Key: []byte("mavl-test-a"), Value: []byte("1")}}
	header, err := chain.AddBlock(&types.BlockDetail{Block: genesis}, kvs)
	require.NoError(t, err)
	assert.Equal(t, int64(0), header.Height)
	assert.Equal(t, genesis.Hash(), header.Hash)

	v, err := db.Get([]byte("mavl-test-a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	from := address.NameToAddress("user1")
	tx := types.CreateTx("wager", from, 0, nil)
	block := nextBlock(header, tx)
	receipt := &types.ReceiptData{Ty: types.ExecOk}
	kvs = []*types.KeyValue{{Key: []byte("mavl-test-a"), Value: nil}}
	header, err = chain.AddBlock(&types.BlockDetail{Block: block, Receipts: []*types.ReceiptData{receipt}}, kvs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), chain.Height())
	assert.Equal(t, int64(1), header.TxCount)

	//删除
	_, err = db.Get([]byte("mavl-test-a"))
	assert.Error(t, err)

	detail, err := chain.GetBlock(1)
	require.NoError(t, err)
	assert.Equal(t, block.Hash(), detail.Block.Hash())
	require.Equal(t, 1, len(detail.Block.Txs))
	assert.Equal(t, tx.Hash(), detail.Block.Txs[0].Hash())
	assert.Equal(t, int32(types.ExecOk), detail.Receipts[0].Ty)

	txresult, err := chain.GetTx(tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, int64(1), txresult.Height)
	assert.Equal(t, int32(0), txresult.Index)

	_, err = chain.GetTx([]byte("nohash"))
	assert.Equal(t, types.ErrNotFound, err)
}

func TestAddBlockCheck(t *testing.T) {
	chain, _ := newTestChain(t, 0)
	_, err := chain.AddBlock(nil, nil)
	assert.Equal(t, types.ErrInvalidParam, err)

	//第一个区块必须是创世区块
	bad := nextBlock(&types.Header{Height: 4, Hash: []byte("hash")})
	_, err = chain.AddBlock(&types.BlockDetail{Block: bad}, nil)
	assert.Equal(t, types.ErrBlockHeight, err)

	headers := addBlocks(t, chain, 2)
	last := headers[1]

	//高度不连续
	skip := nextBlock(&types.Header{Height: last.Height + 1, Hash: last.Hash})
	_, err = chain.AddBlock(&types.BlockDetail{Block: skip}, nil)
	assert.Equal(t, types.ErrBlockHeight, err)

	//父哈希不对
	wrong := nextBlock(&types.Header{Height: last.Height, Hash: []byte("wrong")})
	_, err = chain.AddBlock(&types.BlockDetail{Block: wrong}, nil)
	assert.Equal(t, types.ErrParentHash, err)

	//交易哈希不对
	block := nextBlock(last)
	block.TxHash = []byte("txhash")
	_, err = chain.AddBlock(&types.BlockDetail{Block: block}, nil)
	assert.Equal(t, types.ErrInvalidParam, err)
	assert.Equal(t, int64(1), chain.Height())
}

func TestGetBlockHashRetention(t *testing.T) {
	chain, _ := newTestChain(t, 3)
	headers := addBlocks(t, chain, 6)
	// last = 5, 可以读取 3, 4, 5
	for h := int64(3); h <= 5; h++ {
		hash, err := chain.GetBlockHash(h)
		require.NoError(t, err)
		assert.Equal(t, headers[h].Hash, hash)
	}
	for h := int64(0); h < 3; h++ {
		_, err := chain.GetBlockHash(h)
		assert.Equal(t, types.ErrBlockHashExpired, err)
	}
	_, err := chain.GetBlockHash(6)
	assert.Equal(t, types.ErrBlockNotFound, err)
	_, err = chain.GetBlockHash(-1)
	assert.Equal(t, types.ErrBlockNotFound, err)

	//区块头仍然可以读取
	header, err := chain.GetHeader(0)
	require.NoError(t, err)
	assert.Equal(t, headers[0].Hash, header.Hash)
}

func TestReloadChain(t *testing.T) {
	chain, db := newTestChain(t, 0)
	headers := addBlocks(t, chain, 3)

	chain2, err := New(nil, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), chain2.Height())
	last, err := chain2.GetLastHeader()
	require.NoError(t, err)
	assert.Equal(t, headers[2].Hash, last.Hash)
	assert.True(t, last.CheckHash())

	addBlocks(t, chain2, 1)
	assert.Equal(t, int64(3), chain2.Height())
}
