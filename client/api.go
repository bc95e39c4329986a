// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client 执行器访问区块链数据的接口
package client

import (
	"github.com/33cn/wager/types"
)

// ChainAPI 执行器通过这个接口读取已经提交的区块信息
type ChainAPI interface {
	// GetLastHeader 最新的已提交区块头
	GetLastHeader() (*types.Header, error)
	// GetBlockHash 已提交区块的哈希, 只有最近 hashRetention 个区块可以读取,
	// 超出范围返回 types.ErrBlockHashExpired, 区块不存在返回 types.ErrBlockNotFound
	GetBlockHash(height int64) ([]byte, error)
}

// API rpc 以及命令行使用的节点接口
type API interface {
	ChainAPI
	// SendTx 检查交易, 打包进一个新的区块并返回执行结果
	SendTx(tx *types.Transaction) (*types.TxResult, error)
	// Query 在最新的状态上调用执行器的查询函数, params 为 json 编码的参数
	Query(driver, funcName string, params []byte) (types.Message, error)
	// GetBlock 获取已提交的区块以及收据
	GetBlock(height int64) (*types.BlockDetail, error)
	// GetTx 通过交易哈希获取执行结果
	GetTx(hash []byte) (*types.TxResult, error)
	// Mine 生成一个空区块, 让等待成熟的投注可以结算
	Mine() (*types.Header, error)
}
