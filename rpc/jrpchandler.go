// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/wager/common"
	rpctypes "github.com/33cn/wager/rpc/types"
	cty "github.com/33cn/wager/system/dapp/coins/types"
	"github.com/33cn/wager/types"
)

// Chain 系统 jrpc 服务
type Chain struct {
	cli rpctypes.ChannelClient
}

func (c *Chain) txDetail(txresult *types.TxResult) (*rpctypes.TransactionDetail, error) {
	detail, err := c.cli.GetBlock(txresult.Height)
	if err != nil {
		return nil, err
	}
	if int(txresult.Index) >= len(detail.Block.Txs) {
		return nil, types.ErrNotFound
	}
	tx, err := rpctypes.DecodeTx(detail.Block.Txs[txresult.Index])
	if err != nil {
		return nil, err
	}
	return &rpctypes.TransactionDetail{
		Tx:      tx,
		Receipt: rpctypes.DecodeLog(txresult.Receipt),
		Height:  txresult.Height,
		Index:   txresult.Index,
	}, nil
}

// SendTransaction 发送交易, 交易打包后返回执行结果
func (c *Chain) SendTransaction(in *types.Transaction, result *interface{}) error {
	log.Debug("SendTransaction", "execer", in.Execer, "from", in.From)
	reply, err := c.cli.SendTx(in)
	if err != nil {
		return err
	}
	tx, err := rpctypes.DecodeTx(in)
	if err != nil {
		return err
	}
	*result = &rpctypes.TransactionDetail{
		Tx:      tx,
		Receipt: rpctypes.DecodeLog(reply.Receipt),
		Height:  reply.Height,
		Index:   reply.Index,
	}
	return nil
}

// QueryTransaction 通过哈希查询交易
func (c *Chain) QueryTransaction(in rpctypes.ReqHash, result *interface{}) error {
	hash, err := common.FromHex(in.Hash)
	if err != nil {
		return types.ErrInvalidParam
	}
	txresult, err := c.cli.GetTx(hash)
	if err != nil {
		return err
	}
	detail, err := c.txDetail(txresult)
	if err != nil {
		return err
	}
	*result = detail
	return nil
}

// Query 调用执行器的查询函数
func (c *Chain) Query(in rpctypes.Query4Jrpc, result *interface{}) error {
	reply, err := c.cli.Query(in.Execer, in.FuncName, in.Payload)
	if err != nil {
		log.Debug("Query", "execer", in.Execer, "funcName", in.FuncName, "err", err)
		return err
	}
	*result = reply
	return nil
}

// GetBalance 查询地址余额, 给出执行器时查询执行器子账户
func (c *Chain) GetBalance(in rpctypes.ReqAddrs, result *interface{}) error {
	req := &types.ReqBalance{Addresses: in.Addrs, Execer: in.Execer}
	reply, err := c.cli.Query(cty.CoinsX, cty.FuncNameGetBalance, types.Encode(req))
	if err != nil {
		return err
	}
	accs, ok := reply.([]*types.Account)
	if !ok {
		return types.ErrDecode
	}
	var accounts []*rpctypes.Account
	for _, acc := range accs {
		accounts = append(accounts, &rpctypes.Account{
			Addr:       acc.Addr,
			Balance:    acc.Balance,
			BalanceFmt: rpctypes.FormatAmount(acc.Balance),
			Frozen:     acc.Frozen,
		})
	}
	*result = accounts
	return nil
}

// GetLastHeader 最新区块头
func (c *Chain) GetLastHeader(in rpctypes.ReqNil, result *interface{}) error {
	header, err := c.cli.GetLastHeader()
	if err != nil {
		return err
	}
	*result = rpctypes.DecodeHeader(header)
	return nil
}

// GetBlock 区块以及收据
func (c *Chain) GetBlock(in rpctypes.ReqHeight, result *interface{}) error {
	detail, err := c.cli.GetBlock(in.Height)
	if err != nil {
		return err
	}
	block, err := rpctypes.DecodeBlock(detail)
	if err != nil {
		return err
	}
	*result = block
	return nil
}

// Mine 生成一个空区块
func (c *Chain) Mine(in rpctypes.ReqNil, result *interface{}) error {
	header, err := c.cli.Mine()
	if err != nil {
		return err
	}
	*result = rpctypes.DecodeHeader(header)
	return nil
}
