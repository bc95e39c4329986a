// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/wager/account"
	dbm "github.com/33cn/wager/common/db"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	drivers "github.com/33cn/wager/system/dapp"
	"github.com/33cn/wager/types"
)

// payFunc 把奖金从执行器地址转给投注者, 失败时奖金转入托管
type payFunc func(acc *account.DB, execaddr, to string, amount, height int64) (*types.Receipt, error)

//执行器地址不接受直接转账
var deliver payFunc = func(acc *account.DB, execaddr, to string, amount, height int64) (*types.Receipt, error) {
	if drivers.IsDriverAddress(to, height) {
		return nil, types.ErrRecvRefused
	}
	return acc.Transfer(execaddr, to, amount)
}

// WagerDB 投注的存储
type WagerDB struct {
	wty.Wager
}

// GetKVSet 投注的 kv
func (w *WagerDB) GetKVSet() (kvset []*types.KeyValue) {
	value := types.Encode(&w.Wager)
	kvset = append(kvset, &types.KeyValue{Key: calcWagerKey(w.Index), Value: value})
	return kvset
}

// Save 写入 statedb
func (w *WagerDB) Save(db dbm.KV) {
	set := w.GetKVSet()
	for i := 0; i < len(set); i++ {
		if err := db.Set(set[i].Key, set[i].Value); err != nil {
			panic(err)
		}
	}
}

func findWager(db dbm.KV, index int64) (*wty.Wager, error) {
	value, err := db.Get(calcWagerKey(index))
	if err != nil {
		return nil, wty.ErrWagerNotFound
	}
	var wager wty.Wager
	if err := types.Decode(value, &wager); err != nil {
		wlog.Error("findWager", "index", index, "err", err)
		return nil, err
	}
	return &wager, nil
}

func getInt64(db dbm.KV, key []byte) int64 {
	value, err := db.Get(key)
	if err != nil {
		return 0
	}
	var data types.Int64
	types.MustDecode(value, &data)
	return data.Data
}

func setInt64(db dbm.KV, key []byte, n int64) *types.KeyValue {
	kv := &types.KeyValue{Key: key, Value: types.Encode(&types.Int64{Data: n})}
	if err := db.Set(kv.Key, kv.Value); err != nil {
		panic(err)
	}
	return kv
}

// Action 一次调用的上下文
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	txhash       []byte
	fromaddr     string
	amount       int64
	blocktime    int64
	height       int64
	execaddr     string
	cfg          *wty.Config
	revealer     Revealer
}

// NewWagerAction 新建 action
func NewWagerAction(w *Wager, tx *types.Transaction) *Action {
	return &Action{
		coinsAccount: w.GetCoinsAccount(),
		db:           w.GetStateDB(),
		txhash:       tx.Hash(),
		fromaddr:     tx.From,
		amount:       tx.Amount,
		blocktime:    w.GetBlockTime(),
		height:       w.GetHeight(),
		execaddr:     drivers.ExecAddress(w.GetDriverName()),
		cfg:          w.cfg,
		revealer:     newRevealer(w.GetAPI()),
	}
}

// Bet 投注, 本金已经由框架转入执行器地址
func (action *Action) Bet(bet *wty.WagerBet, settle bool) (*types.Receipt, error) {
	if action.amount != action.cfg.BetAmount {
		wlog.Error("Bet", "amount", action.amount, "betAmount", action.cfg.BetAmount)
		return nil, wty.ErrInvalidStake
	}
	challenge, err := wty.ParseChallenge(bet.Challenge)
	if err != nil {
		return nil, err
	}
	var kv []*types.KeyValue
	var logs []*types.ReceiptLog

	tail := getInt64(action.db, tailKey)
	wager := &WagerDB{wty.Wager{
		Index:            tail,
		Bettor:           action.fromaddr,
		Challenge:        wty.FormatChallenge(challenge),
		Amount:           action.amount,
		PlacementHeight:  action.height,
		MaturationHeight: action.height + action.cfg.RevealDelay,
	}}
	wager.Save(action.db)
	kv = append(kv, wager.GetKVSet()...)
	kv = append(kv, setInt64(action.db, tailKey, tail+1))
	logs = append(logs, types.NewReceiptLog(wty.TyLogWagerBet, &wty.ReceiptWagerBet{
		Index:            wager.Index,
		Bettor:           wager.Bettor,
		Amount:           wager.Amount,
		Challenge:        wager.Challenge,
		MaturationHeight: wager.MaturationHeight,
	}))
	wlog.Debug("Bet", "index", wager.Index, "bettor", wager.Bettor, "challenge", wager.Challenge,
		"maturation", wager.MaturationHeight)

	receipt := &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}
	if !settle {
		return receipt, nil
	}
	r, err := action.settleDue()
	if err != nil {
		return nil, err
	}
	return types.MergeReceipt(receipt, r), nil
}

// Distribute 结算已经成熟的投注
func (action *Action) Distribute() (*types.Receipt, error) {
	if action.amount != 0 {
		return nil, wty.ErrInvalidStake
	}
	return action.settleDue()
}

//从队列头开始结算, 当前区块为 height, 已经提交的最新区块是 height-1
//只有 height-1 >= 成熟高度的投注才能结算, 遇到未成熟的投注或者达到上限时停止
func (action *Action) settleDue() (*types.Receipt, error) {
	receipt := &types.Receipt{Ty: types.ExecOk}
	head := getInt64(action.db, headKey)
	tail := getInt64(action.db, tailKey)
	pot := getInt64(action.db, potKey)
	committed := action.height - 1

	var settled int32
	for ; head < tail && settled < action.cfg.MaxSettlePerCall; head++ {
		wager, err := findWager(action.db, head)
		if err != nil {
			wlog.Crit("settleDue wager lost", "index", head, "tail", tail)
			return nil, err
		}
		if committed < wager.MaturationHeight {
			break
		}
		r, err := action.settle(&WagerDB{*wager}, &pot)
		if err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
		settled++
	}
	if settled == 0 {
		return receipt, nil
	}
	receipt.KV = append(receipt.KV, setInt64(action.db, headKey, head))
	receipt.KV = append(receipt.KV, setInt64(action.db, potKey, pot))
	wlog.Debug("settleDue", "height", action.height, "settled", settled, "head", head, "tail", tail, "pot", pot)
	return receipt, nil
}

func (action *Action) settle(wager *WagerDB, pot *int64) (*types.Receipt, error) {
	var result wty.BettingResult
	answer, err := action.revealer.Reveal(wager.MaturationHeight)
	switch {
	case err == wty.ErrUnrevealable:
		//哈希已经不能读取, 退回本金
		result = wty.Refund
	case err != nil:
		return nil, err
	default:
		challenge, err := wty.ParseChallenge(wager.Challenge)
		if err != nil {
			return nil, err
		}
		result = wty.IsMatch(challenge, answer)
		if len(answer) > 0 {
			wager.Answer = wty.FormatChallenge(answer[0])
		}
	}

	var payout int64
	var err2 error
	switch result {
	case wty.Win:
		payout = *pot + wager.Amount
		*pot, err2 = debitPot(*pot, *pot)
	case wty.Fail:
		*pot, err2 = creditPot(*pot, wager.Amount)
	default:
		payout = wager.Amount
	}
	if err2 != nil {
		return nil, err2
	}

	wager.Settled = true
	wager.Result = int32(result)
	wager.SettleHeight = action.height
	wager.Save(action.db)
	receipt := &types.Receipt{Ty: types.ExecOk, KV: wager.GetKVSet()}
	receipt.Logs = append(receipt.Logs, types.NewReceiptLog(settleLogTy(result), &wty.ReceiptWagerSettle{
		Index:     wager.Index,
		Bettor:    wager.Bettor,
		Challenge: wager.Challenge,
		Answer:    wager.Answer,
		Result:    wager.Result,
		Payout:    payout,
		Pot:       *pot,
	}))
	wlog.Info("settle wager", "index", wager.Index, "bettor", wager.Bettor, "result", result, "payout", payout, "pot", *pot)
	if payout == 0 {
		return receipt, nil
	}
	r, err := action.pay(wager, payout)
	if err != nil {
		return nil, err
	}
	return types.MergeReceipt(receipt, r), nil
}

//投注者拒绝直接转账时奖金记入托管, 之后通过 Withdraw 取回
//其他转账错误说明执行器账户出了问题, 整个调用回滚
func (action *Action) pay(wager *WagerDB, amount int64) (*types.Receipt, error) {
	receipt, err := deliver(action.coinsAccount, action.execaddr, wager.Bettor, amount, action.height)
	if err == nil {
		return receipt, nil
	}
	if err != types.ErrRecvRefused {
		wlog.Crit("pay wager", "index", wager.Index, "bettor", wager.Bettor, "amount", amount, "err", err)
		return nil, err
	}
	wlog.Info("pay wager refused, escrow", "index", wager.Index, "bettor", wager.Bettor, "amount", amount)
	key := calcEscrowKey(wager.Bettor)
	balance, err2 := creditPot(getInt64(action.db, key), amount)
	if err2 != nil {
		return nil, err2
	}
	receipt = &types.Receipt{Ty: types.ExecOk, KV: []*types.KeyValue{setInt64(action.db, key, balance)}}
	receipt.Logs = append(receipt.Logs, types.NewReceiptLog(wty.TyLogWagerEscrow, &wty.ReceiptWagerEscrow{
		Index:   wager.Index,
		Bettor:  wager.Bettor,
		Amount:  amount,
		Balance: balance,
		Reason:  err.Error(),
	}))
	return receipt, nil
}

// Withdraw 取回全部托管的奖金
func (action *Action) Withdraw() (*types.Receipt, error) {
	if action.amount != 0 {
		return nil, wty.ErrInvalidStake
	}
	key := calcEscrowKey(action.fromaddr)
	balance := getInt64(action.db, key)
	if balance <= 0 {
		return nil, wty.ErrNothingToWithdraw
	}
	receipt, err := action.coinsAccount.Transfer(action.execaddr, action.fromaddr, balance)
	if err != nil {
		wlog.Error("Withdraw", "addr", action.fromaddr, "balance", balance, "err", err)
		return nil, err
	}
	receipt.KV = append(receipt.KV, setInt64(action.db, key, 0))
	receipt.Logs = append(receipt.Logs, types.NewReceiptLog(wty.TyLogWagerWithdraw, &wty.ReceiptWagerWithdraw{
		Addr:   action.fromaddr,
		Amount: balance,
	}))
	return receipt, nil
}

func creditPot(pot, amount int64) (int64, error) {
	if amount < 0 || pot+amount < pot {
		wlog.Crit("creditPot", "pot", pot, "amount", amount)
		return pot, types.ErrAmount
	}
	return pot + amount, nil
}

//奖池不足说明账目已经不一致, 整个调用回滚
func debitPot(pot, amount int64) (int64, error) {
	if amount < 0 || amount > pot {
		wlog.Crit("debitPot", "pot", pot, "amount", amount)
		return pot, wty.ErrInsufficientPot
	}
	return pot - amount, nil
}

func settleLogTy(result wty.BettingResult) int32 {
	switch result {
	case wty.Win:
		return wty.TyLogWagerWin
	case wty.Draw:
		return wty.TyLogWagerDraw
	case wty.Refund:
		return wty.TyLogWagerRefund
	}
	return wty.TyLogWagerFail
}
