// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 实现了wager链基础结构体、接口、常量等的定义
package types

import (
	"encoding/json"

	log "github.com/inconshreveable/log15"
)

var tlog = log.New("module", "types")

// Message 所有可以被编码存储的结构体
type Message interface{}

// Encode 编码结构体, 结构体都是自己定义的, 编码不会失败
func Encode(data Message) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode 解码
func Decode(data []byte, msg Message) error {
	if err := json.Unmarshal(data, msg); err != nil {
		tlog.Debug("Decode", "err", err)
		return ErrDecode
	}
	return nil
}

// MustDecode 数据是从配置文件或者数据库中读出来的, 解码失败直接panic
func MustDecode(data []byte, v interface{}) {
	if data == nil {
		return
	}
	err := json.Unmarshal(data, v)
	if err != nil {
		panic(err)
	}
}

// KeyValue 状态数据库的一次写入
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// ReceiptLog 执行过程中产生的日志
type ReceiptLog struct {
	Ty  int32           `json:"ty"`
	Log json.RawMessage `json:"log"`
}

// Receipt 执行器的返回结果, KV 是状态数据库的变更
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"kv,omitempty"`
	Logs []*ReceiptLog `json:"logs,omitempty"`
}

// ReceiptData 写入区块的收据, 不包含 KV
type ReceiptData struct {
	Ty   int32         `json:"ty"`
	Logs []*ReceiptLog `json:"logs,omitempty"`
}

// GetTy get receipt type
func (r *ReceiptData) GetTy() int32 {
	if r == nil {
		return 0
	}
	return r.Ty
}

// LocalDBSet 本地数据库的变更
type LocalDBSet struct {
	KV []*KeyValue `json:"kv,omitempty"`
}

// Account 账户
type Account struct {
	Currency int32  `json:"currency"`
	Balance  int64  `json:"balance"`
	Frozen   int64  `json:"frozen"`
	Addr     string `json:"addr"`
}

// GetBalance get balance
func (acc *Account) GetBalance() int64 {
	if acc == nil {
		return 0
	}
	return acc.Balance
}

// GetFrozen get frozen
func (acc *Account) GetFrozen() int64 {
	if acc == nil {
		return 0
	}
	return acc.Frozen
}

// ReceiptAccountTransfer 转账收据
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}

// ReceiptExecAccountTransfer 执行器账户转账收据
type ReceiptExecAccountTransfer struct {
	ExecAddr string   `json:"execAddr"`
	Prev     *Account `json:"prev"`
	Current  *Account `json:"current"`
}

// ReqBalance 查询余额
type ReqBalance struct {
	Addresses []string `json:"addresses"`
	Execer    string   `json:"execer"`
}

// Int64 int64 的封装, 用于存储计数和查询返回
type Int64 struct {
	Data int64 `json:"data"`
}

// ReplyString 字符串返回
type ReplyString struct {
	Data string `json:"data"`
}

// NewReceiptLog 生成一条日志
func NewReceiptLog(ty int32, data Message) *ReceiptLog {
	return &ReceiptLog{Ty: ty, Log: Encode(data)}
}

// MergeReceipt 合并两个收据
func MergeReceipt(receipt, receipt2 *Receipt) *Receipt {
	if receipt2 == nil {
		return receipt
	}
	if receipt == nil {
		return receipt2
	}
	receipt.Logs = append(receipt.Logs, receipt2.Logs...)
	receipt.KV = append(receipt.KV, receipt2.KV...)
	return receipt
}
