// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/33cn/wager/common/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAction struct {
	Ty    int32  `json:"ty"`
	Value string `json:"value"`
}

func TestCreateTx(t *testing.T) {
	from := address.NameToAddress("user1")
	tx := CreateTx("wager", from, Coin, &testAction{Ty: 1, Value: "0x94"})
	assert.Equal(t, address.ExecAddress("wager"), tx.To)
	require.NoError(t, tx.Check())

	var action testAction
	require.NoError(t, Decode(tx.Payload, &action))
	assert.Equal(t, int32(1), action.Ty)
	assert.Equal(t, "0x94", action.Value)

	tx2 := CreateTx("wager", from, Coin, &testAction{Ty: 1, Value: "0x94"})
	assert.NotEqual(t, tx.Hash(), tx2.Hash(), "nonce makes hash unique")
	assert.Equal(t, 32, len(tx.Hash()))
}

func TestTxCheck(t *testing.T) {
	from := address.NameToAddress("user1")
	var tx *Transaction
	assert.Equal(t, ErrEmptyTx, tx.Check())

	tx = CreateTx("", from, 0, nil)
	assert.Equal(t, ErrEmptyTx, tx.Check())

	tx = CreateTx("wager", "notaddress", 0, nil)
	assert.Equal(t, ErrInvalidAddress, tx.Check())

	tx = CreateTx("wager", from, 0, nil)
	tx.To = address.ExecAddress("coins")
	assert.Equal(t, ErrToAddrNotSameToExecAddr, tx.Check())

	tx = CreateTx("wager", from, -1, nil)
	assert.Equal(t, ErrAmount, tx.Check())
	tx = CreateTx("wager", from, MaxCoin, nil)
	assert.Equal(t, ErrAmount, tx.Check())

	tx = CreateTx("wager", from, 0, &testAction{Value: string(make([]byte, MaxTxSize))})
	assert.Equal(t, ErrTxMsgSizeTooBig, tx.Check())
}
