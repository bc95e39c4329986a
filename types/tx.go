// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
)

// Transaction 交易. 签名不在本链的处理范围内, From 由提交者给出
type Transaction struct {
	Execer  string          `json:"execer"`
	Payload json.RawMessage `json:"payload"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Amount  int64           `json:"amount"`
	Nonce   int64           `json:"nonce"`
}

// TxResult 交易执行结果
type TxResult struct {
	Hash    string       `json:"hash"`
	Height  int64        `json:"height"`
	Index   int32        `json:"index"`
	Receipt *ReceiptData `json:"receipt"`
}

var nonceRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// CreateTx 构造一个调用执行器的交易, amount 为随交易转入执行器地址的资金
func CreateTx(execer, from string, amount int64, action Message) *Transaction {
	return &Transaction{
		Execer:  execer,
		Payload: Encode(action),
		From:    from,
		To:      address.ExecAddress(execer),
		Amount:  amount,
		Nonce:   nonceRand.Int63(),
	}
}

// Hash 交易哈希
func (tx *Transaction) Hash() []byte {
	return common.Sha3(Encode(tx))
}

// Size 交易大小
func (tx *Transaction) Size() int {
	return len(Encode(tx))
}

// Check 交易基本检查
func (tx *Transaction) Check() error {
	if tx == nil || len(tx.Execer) == 0 {
		return ErrEmptyTx
	}
	if tx.Size() > MaxTxSize {
		return ErrTxMsgSizeTooBig
	}
	if err := address.CheckAddress(tx.From); err != nil {
		return ErrInvalidAddress
	}
	if tx.To != address.ExecAddress(tx.Execer) {
		return ErrToAddrNotSameToExecAddr
	}
	if tx.Amount < 0 || tx.Amount >= MaxCoin {
		return ErrAmount
	}
	return nil
}
