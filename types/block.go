// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/merkle"
)

// Header 区块头
type Header struct {
	ParentHash []byte `json:"parentHash"`
	TxHash     []byte `json:"txHash"`
	Height     int64  `json:"height"`
	BlockTime  int64  `json:"blockTime"`
	Nonce      int64  `json:"nonce"`
	TxCount    int64  `json:"txCount"`
	Hash       []byte `json:"hash,omitempty"`
}

// Block 区块
type Block struct {
	ParentHash []byte         `json:"parentHash"`
	TxHash     []byte         `json:"txHash"`
	Height     int64          `json:"height"`
	BlockTime  int64          `json:"blockTime"`
	Nonce      int64          `json:"nonce"`
	Txs        []*Transaction `json:"txs"`
}

// BlockDetail 区块以及交易的执行结果
type BlockDetail struct {
	Block    *Block         `json:"block"`
	Receipts []*ReceiptData `json:"receipts"`
}

// GetHeader 获取区块头, 哈希在这里计算
func (block *Block) GetHeader() *Header {
	head := &Header{
		ParentHash: block.ParentHash,
		TxHash:     block.TxHash,
		Height:     block.Height,
		BlockTime:  block.BlockTime,
		Nonce:      block.Nonce,
		TxCount:    int64(len(block.Txs)),
	}
	head.Hash = head.calcHash()
	return head
}

// Hash 区块哈希, 与区块头哈希一致
func (block *Block) Hash() []byte {
	return block.GetHeader().Hash
}

// CalcTxHash 根据交易列表计算默克尔根
func (block *Block) CalcTxHash() []byte {
	hashes := make([][]byte, len(block.Txs))
	for i, tx := range block.Txs {
		hashes[i] = tx.Hash()
	}
	return merkle.GetMerkleRoot(hashes)
}

func (head *Header) calcHash() []byte {
	h := *head
	h.Hash = nil
	return common.Sha3(Encode(&h))
}

// CheckHash 检查区块头中的哈希是否正确
func (head *Header) CheckHash() bool {
	return string(head.calcHash()) == string(head.Hash)
}
