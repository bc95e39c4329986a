// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	rpctypes "github.com/33cn/wager/rpc/types"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	"github.com/33cn/wager/types"
)

// Bet 投注, Distribute 为 true 时同时结算到期的投注
func (c *Jrpc) Bet(in *wty.ReqBet, result *interface{}) error {
	reply, err := c.cli.bet(in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// Distribute 结算到期的投注
func (c *Jrpc) Distribute(in *wty.ReqAddr, result *interface{}) error {
	reply, err := c.cli.sendTx(wty.CreateDistributeTx(in.Addr))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// Withdraw 取回托管的资金
func (c *Jrpc) Withdraw(in *wty.ReqAddr, result *interface{}) error {
	reply, err := c.cli.sendTx(wty.CreateWithdrawTx(in.Addr))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetPot 奖池
func (c *Jrpc) GetPot(in rpctypes.ReqNil, result *interface{}) error {
	reply, err := c.cli.query(wty.FuncNameGetPot, nil)
	if err != nil {
		return err
	}
	pot := reply.(*types.Int64).Data
	*result = map[string]interface{}{"pot": pot, "potfmt": rpctypes.FormatAmount(pot)}
	return nil
}

// GetWager 投注详情
func (c *Jrpc) GetWager(in *wty.ReqWager, result *interface{}) error {
	reply, err := c.cli.query(wty.FuncNameGetWager, in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetBetInfo 投注的成熟高度等信息
func (c *Jrpc) GetBetInfo(in *wty.ReqWager, result *interface{}) error {
	reply, err := c.cli.query(wty.FuncNameGetBetInfo, in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// IsMatch 比较挑战和区块哈希
func (c *Jrpc) IsMatch(in *wty.ReqIsMatch, result *interface{}) error {
	reply, err := c.cli.query(wty.FuncNameIsMatch, in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetEscrow 托管余额
func (c *Jrpc) GetEscrow(in *wty.ReqAddr, result *interface{}) error {
	reply, err := c.cli.query(wty.FuncNameGetEscrow, in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetQueueInfo 队列状态
func (c *Jrpc) GetQueueInfo(in rpctypes.ReqNil, result *interface{}) error {
	reply, err := c.cli.query(wty.FuncNameGetQueueInfo, nil)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// ListWagersByAddr 某个地址的投注列表
func (c *Jrpc) ListWagersByAddr(in *wty.ReqWagersByAddr, result *interface{}) error {
	reply, err := c.cli.query(wty.FuncNameListWagersByAddr, in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}
