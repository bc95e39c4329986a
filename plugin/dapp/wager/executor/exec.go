// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	"github.com/33cn/wager/types"
)

// Exec 执行
func (w *Wager) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action wty.WagerAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return nil, err
	}
	wlog.Debug("exec wager tx", "height", w.GetHeight(), "index", index, "Ty", action.Ty)
	switch {
	case action.Ty == wty.WagerActionBet && action.Bet != nil:
		return w.Exec_Bet(action.Bet, tx, index)
	case action.Ty == wty.WagerActionBetAndDistribute && action.BetAndDistribute != nil:
		return w.Exec_BetAndDistribute(action.BetAndDistribute, tx, index)
	case action.Ty == wty.WagerActionDistribute && action.Distribute != nil:
		return w.Exec_Distribute(action.Distribute, tx, index)
	case action.Ty == wty.WagerActionWithdraw && action.Withdraw != nil:
		return w.Exec_Withdraw(action.Withdraw, tx, index)
	}
	return nil, types.ErrActionNotSupport
}

// Exec_Bet 投注, settleOnBet 时顺带结算已经成熟的投注
func (w *Wager) Exec_Bet(payload *wty.WagerBet, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewWagerAction(w, tx)
	return actiondb.Bet(payload, w.cfg.SettleOnBet)
}

// Exec_BetAndDistribute 投注并且结算
func (w *Wager) Exec_BetAndDistribute(payload *wty.WagerBet, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewWagerAction(w, tx)
	return actiondb.Bet(payload, true)
}

// Exec_Distribute 结算
func (w *Wager) Exec_Distribute(payload *wty.WagerDistribute, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewWagerAction(w, tx)
	return actiondb.Distribute()
}

// Exec_Withdraw 取回托管
func (w *Wager) Exec_Withdraw(payload *wty.WagerWithdraw, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewWagerAction(w, tx)
	return actiondb.Withdraw()
}
