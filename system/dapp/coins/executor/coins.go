// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
coins 是一个货币的exec。内置货币的执行器。

主要提供两种操作：
Transfer -> 转移资产, 目标是执行器地址时存入该执行器下的子账户
Withdraw -> 从执行器子账户取回资产
*/

import (
	"strconv"

	drivers "github.com/33cn/wager/system/dapp"
	cty "github.com/33cn/wager/system/dapp/coins/types"
	"github.com/33cn/wager/types"
	log "github.com/inconshreveable/log15"
)

var clog = log.New("module", "execs.coins")
var driverName = cty.CoinsX

// Init 注册 coins 执行器
func Init(name string, sub []byte) {
	drivers.Register(name, newCoins, 0)
}

// Coins 执行器
type Coins struct {
	drivers.DriverBase
}

func newCoins() drivers.Driver {
	return &Coins{}
}

// GetDriverName 驱动名
func (c *Coins) GetDriverName() string {
	return driverName
}

// CheckTx 检查 action 是否可以解码
func (c *Coins) CheckTx(tx *types.Transaction, index int) error {
	var action cty.CoinsAction
	return types.Decode(tx.Payload, &action)
}

// Exec 执行
func (c *Coins) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action cty.CoinsAction
	err := types.Decode(tx.Payload, &action)
	if err != nil {
		return nil, err
	}
	clog.Debug("exec coins tx", "tx hash", tx.Hash(), "Ty", action.Ty)
	switch {
	case action.Ty == cty.CoinsActionTransfer && action.Transfer != nil:
		return c.execTransfer(action.Transfer, tx)
	case action.Ty == cty.CoinsActionWithdraw && action.Withdraw != nil:
		return c.execWithdraw(action.Withdraw, tx)
	}
	return nil, types.ErrActionNotSupport
}

func (c *Coins) execTransfer(transfer *cty.CoinsTransfer, tx *types.Transaction) (*types.Receipt, error) {
	//to 是 execs 合约地址
	if drivers.IsDriverAddress(transfer.To, c.GetHeight()) {
		return c.GetCoinsAccount().TransferToExec(tx.From, transfer.To, transfer.Amount)
	}
	if err := drivers.CheckAddress(transfer.To, c.GetHeight()); err != nil {
		return nil, types.ErrInvalidAddress
	}
	return c.GetCoinsAccount().Transfer(tx.From, transfer.To, transfer.Amount)
}

func (c *Coins) execWithdraw(withdraw *cty.CoinsWithdraw, tx *types.Transaction) (*types.Receipt, error) {
	execaddr := drivers.ExecAddress(withdraw.ExecName)
	if !drivers.IsDriverAddress(execaddr, c.GetHeight()) {
		return nil, types.ErrActionNotSupport
	}
	return c.GetCoinsAccount().TransferWithdraw(tx.From, execaddr, withdraw.Amount)
}

// ExecLocal 统计每个地址收到的资金
func (c *Coins) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.GetTy() != types.ExecOk {
		return set, nil
	}
	var action cty.CoinsAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return set, nil
	}
	if action.Ty != cty.CoinsActionTransfer || action.Transfer == nil {
		return set, nil
	}
	kv, err := c.updateAddrReciver(action.Transfer.To, action.Transfer.Amount)
	if err != nil {
		return nil, err
	}
	set.KV = append(set.KV, kv)
	return set, nil
}

func calcAddrKey(addr string) []byte {
	return []byte("LODB-coins-Receiver:" + addr)
}

func (c *Coins) getAddrReciver(addr string) (int64, error) {
	value, err := c.GetLocalDB().Get(calcAddrKey(addr))
	if err != nil || len(value) == 0 {
		return 0, nil
	}
	return strconv.ParseInt(string(value), 10, 64)
}

func (c *Coins) updateAddrReciver(addr string, amount int64) (*types.KeyValue, error) {
	total, err := c.getAddrReciver(addr)
	if err != nil {
		return nil, err
	}
	return &types.KeyValue{Key: calcAddrKey(addr), Value: []byte(strconv.FormatInt(total+amount, 10))}, nil
}

// Query 查询
func (c *Coins) Query(funcName string, params []byte) (types.Message, error) {
	switch funcName {
	case cty.FuncNameGetBalance:
		var req types.ReqBalance
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return c.GetCoinsAccount().GetBalance(&req)
	case cty.FuncNameGetAddrReciver:
		var req cty.ReqAddr
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		total, err := c.getAddrReciver(req.Addr)
		if err != nil {
			return nil, err
		}
		return &types.Int64{Data: total}, nil
	}
	return nil, types.ErrQueryNotSupport
}
