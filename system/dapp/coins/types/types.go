// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types coins 执行器的 action 和查询结构体
package types

import (
	"github.com/33cn/wager/types"
)

// CoinsX 执行器名称
const CoinsX = types.CoinsX

// action type
const (
	CoinsActionTransfer = 1
	CoinsActionWithdraw = 3
)

// 查询函数名
const (
	FuncNameGetBalance     = "GetBalance"
	FuncNameGetAddrReciver = "GetAddrReciver"
)

// CoinsAction coins 的 action
type CoinsAction struct {
	Ty       int32          `json:"ty"`
	Transfer *CoinsTransfer `json:"transfer,omitempty"`
	Withdraw *CoinsWithdraw `json:"withdraw,omitempty"`
}

// CoinsTransfer 转账, To 为执行器地址时转入该执行器下自己的子账户
type CoinsTransfer struct {
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// CoinsWithdraw 从执行器子账户取回
type CoinsWithdraw struct {
	ExecName string `json:"execName"`
	Amount   int64  `json:"amount"`
}

// ReqAddr 按地址查询
type ReqAddr struct {
	Addr string `json:"addr"`
}

// CreateTransferTx 构造转账交易
func CreateTransferTx(from, to string, amount int64, note string) *types.Transaction {
	action := &CoinsAction{
		Ty:       CoinsActionTransfer,
		Transfer: &CoinsTransfer{To: to, Amount: amount, Note: note},
	}
	return types.CreateTx(CoinsX, from, 0, action)
}

// CreateWithdrawTx 构造取款交易
func CreateWithdrawTx(from, execName string, amount int64) *types.Transaction {
	action := &CoinsAction{
		Ty:       CoinsActionWithdraw,
		Withdraw: &CoinsWithdraw{ExecName: execName, Amount: amount},
	}
	return types.CreateTx(CoinsX, from, 0, action)
}
