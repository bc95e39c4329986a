// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
wager 执行器

投注者附带固定金额以及一个字节的挑战投注, 投注之后第 revealDelay 个区块的哈希的第一个字节
决定结果. 投注按照先进先出的顺序结算, 每次调用最多结算 maxSettlePerCall 个.

Bet              -> 投注, settleOnBet 打开时顺带结算
BetAndDistribute -> 投注并且结算
Distribute       -> 只结算
Withdraw         -> 取回无法直接转账而托管的奖金
*/

import (
	"sync"

	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	drivers "github.com/33cn/wager/system/dapp"
	"github.com/33cn/wager/types"
	log "github.com/inconshreveable/log15"
)

var wlog = log.New("module", "execs.wager")

var (
	cfgmu       sync.RWMutex
	wagerConfig = wty.DefaultConfig()
)

// Init 注册 wager 执行器, sub 为 [exec.sub.wager] 配置
func Init(name string, sub []byte) {
	if name != wty.WagerX {
		panic("wager exec can't be rename")
	}
	cfg := wty.DefaultConfig()
	types.MustDecode(sub, cfg)
	if err := cfg.Check(); err != nil {
		panic(err)
	}
	setConfig(cfg)
	wlog.Info("init wager", "betAmount", cfg.BetAmount, "revealDelay", cfg.RevealDelay,
		"maxSettlePerCall", cfg.MaxSettlePerCall, "settleOnBet", cfg.SettleOnBet)
	drivers.Register(name, newWager, 0)
}

func setConfig(cfg *wty.Config) {
	cfgmu.Lock()
	wagerConfig = cfg
	cfgmu.Unlock()
}

func getConfig() *wty.Config {
	cfgmu.RLock()
	defer cfgmu.RUnlock()
	return wagerConfig
}

// Wager 执行器
type Wager struct {
	drivers.DriverBase
	cfg *wty.Config
}

func newWager() drivers.Driver {
	w := &Wager{cfg: getConfig()}
	//投注的本金随交易转入执行器地址
	w.SetIsPayable(true)
	return w
}

// GetDriverName 驱动名
func (w *Wager) GetDriverName() string {
	return wty.WagerX
}

// CheckTx 检查投注金额以及挑战的格式
func (w *Wager) CheckTx(tx *types.Transaction, index int) error {
	var action wty.WagerAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return err
	}
	switch {
	case action.Ty == wty.WagerActionBet && action.Bet != nil:
		return w.checkBet(action.Bet, tx)
	case action.Ty == wty.WagerActionBetAndDistribute && action.BetAndDistribute != nil:
		return w.checkBet(action.BetAndDistribute, tx)
	case action.Ty == wty.WagerActionDistribute && action.Distribute != nil,
		action.Ty == wty.WagerActionWithdraw && action.Withdraw != nil:
		if tx.Amount != 0 {
			return wty.ErrInvalidStake
		}
		return nil
	}
	return types.ErrActionNotSupport
}

func (w *Wager) checkBet(bet *wty.WagerBet, tx *types.Transaction) error {
	if tx.Amount != w.cfg.BetAmount {
		wlog.Debug("checkBet", "amount", tx.Amount, "betAmount", w.cfg.BetAmount)
		return wty.ErrInvalidStake
	}
	_, err := wty.ParseChallenge(bet.Challenge)
	return err
}
