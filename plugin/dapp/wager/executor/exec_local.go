// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	"github.com/33cn/wager/types"
	gometrics "github.com/rcrowley/go-metrics"
)

var (
	betCounter      = gometrics.GetOrRegisterCounter("wager.bet", nil)
	winCounter      = gometrics.GetOrRegisterCounter("wager.win", nil)
	drawCounter     = gometrics.GetOrRegisterCounter("wager.draw", nil)
	failCounter     = gometrics.GetOrRegisterCounter("wager.fail", nil)
	refundCounter   = gometrics.GetOrRegisterCounter("wager.refund", nil)
	escrowCounter   = gometrics.GetOrRegisterCounter("wager.escrow", nil)
	withdrawCounter = gometrics.GetOrRegisterCounter("wager.withdraw", nil)
	potGauge        = gometrics.GetOrRegisterGauge("wager.pot", nil)
)

// ExecLocal 建立地址到投注的索引, 同时更新统计
func (w *Wager) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.GetTy() != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		switch item.Ty {
		case wty.TyLogWagerBet:
			var bet wty.ReceiptWagerBet
			if err := types.Decode(item.Log, &bet); err != nil {
				return nil, err
			}
			set.KV = append(set.KV, &types.KeyValue{
				Key:   calcAddrKey(bet.Bettor, bet.Index),
				Value: types.Encode(&types.Int64{Data: bet.Index}),
			})
			betCounter.Inc(1)
		case wty.TyLogWagerWin, wty.TyLogWagerDraw, wty.TyLogWagerFail, wty.TyLogWagerRefund:
			var settle wty.ReceiptWagerSettle
			if err := types.Decode(item.Log, &settle); err != nil {
				return nil, err
			}
			countSettle(item.Ty)
			potGauge.Update(settle.Pot)
		case wty.TyLogWagerEscrow:
			escrowCounter.Inc(1)
		case wty.TyLogWagerWithdraw:
			withdrawCounter.Inc(1)
		}
	}
	return set, nil
}

func countSettle(ty int32) {
	switch ty {
	case wty.TyLogWagerWin:
		winCounter.Inc(1)
	case wty.TyLogWagerDraw:
		drawCounter.Inc(1)
	case wty.TyLogWagerFail:
		failCounter.Inc(1)
	case wty.TyLogWagerRefund:
		refundCounter.Inc(1)
	}
}
