// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/33cn/wager/common/address"
	"github.com/stretchr/testify/assert"
)

func TestBlockHash(t *testing.T) {
	b := &Block{Height: 1, BlockTime: GenesisBlockTime}
	h1 := b.Hash()
	assert.Equal(t, 32, len(h1))
	assert.Equal(t, h1, b.Hash())

	b.Nonce = 1
	assert.NotEqual(t, h1, b.Hash())

	head := b.GetHeader()
	assert.True(t, head.CheckHash())
	assert.Equal(t, int64(0), head.TxCount)
	head.Height = 2
	assert.False(t, head.CheckHash())
}

func TestBlockTxHash(t *testing.T) {
	b := &Block{}
	assert.Nil(t, b.CalcTxHash())
	tx := CreateTx("wager", address.NameToAddress("user1"), 0, nil)
	b.Txs = append(b.Txs, tx)
	assert.Equal(t, tx.Hash(), b.CalcTxHash())
	b.Txs = append(b.Txs, CreateTx("wager", address.NameToAddress("user2"), 0, nil))
	root := b.CalcTxHash()
	assert.NotEqual(t, tx.Hash(), root)
	assert.Equal(t, int64(2), b.GetHeader().TxCount)
}
