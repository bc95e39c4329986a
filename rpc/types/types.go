// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types rpc 请求以及返回的 json 结构
package types

import (
	"encoding/json"
)

// ReqNil 没有参数的请求
type ReqNil struct{}

// Query4Jrpc 执行器查询, Payload 为查询函数的 json 参数
type Query4Jrpc struct {
	Execer   string          `json:"execer"`
	FuncName string          `json:"funcName"`
	Payload  json.RawMessage `json:"payload"`
}

// ReqHash 哈希请求, hex 编码
type ReqHash struct {
	Hash string `json:"hash"`
}

// ReqHeight 高度请求
type ReqHeight struct {
	Height int64 `json:"height"`
}

// ReqAddrs 地址列表, Execer 非空时查询执行器子账户
type ReqAddrs struct {
	Addrs  []string `json:"addrs"`
	Execer string   `json:"execer,omitempty"`
}

// RawParm 原始交易
type RawParm struct {
	Data string `json:"data"`
}

// Header 区块头
type Header struct {
	Height     int64  `json:"height"`
	BlockTime  int64  `json:"blockTime"`
	TxCount    int64  `json:"txCount"`
	Hash       string `json:"hash"`
	ParentHash string `json:"parentHash"`
	TxHash     string `json:"txHash"`
}

// Transaction 交易
type Transaction struct {
	Execer    string          `json:"execer"`
	Payload   json.RawMessage `json:"payload"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    int64           `json:"amount"`
	AmountFmt string          `json:"amountfmt,omitempty"`
	Nonce     int64           `json:"nonce"`
	Hash      string          `json:"hash"`
}

// ReceiptLogResult 解码后的日志
type ReceiptLogResult struct {
	Ty     int32           `json:"ty"`
	TyName string          `json:"tyName"`
	Log    json.RawMessage `json:"log"`
}

// ReceiptDataResult 解码后的收据
type ReceiptDataResult struct {
	Ty     int32               `json:"ty"`
	TyName string              `json:"tyName"`
	Logs   []*ReceiptLogResult `json:"logs"`
}

// TransactionDetail 交易以及执行结果
type TransactionDetail struct {
	Tx      *Transaction       `json:"tx"`
	Receipt *ReceiptDataResult `json:"receipt"`
	Height  int64              `json:"height"`
	Index   int32              `json:"index"`
}

// BlockDetail 区块以及收据
type BlockDetail struct {
	Header   *Header              `json:"header"`
	Txs      []*Transaction       `json:"txs"`
	Receipts []*ReceiptDataResult `json:"receipts"`
}

// Account 账户
type Account struct {
	Addr       string `json:"addr"`
	Balance    int64  `json:"balance"`
	BalanceFmt string `json:"balancefmt"`
	Frozen     int64  `json:"frozen"`
}
