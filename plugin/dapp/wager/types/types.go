// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/wager/types"
)

// WagerAction 交易的 payload, Ty 决定哪一个字段有效
type WagerAction struct {
	Ty               int32            `json:"ty"`
	Bet              *WagerBet        `json:"bet,omitempty"`
	BetAndDistribute *WagerBet        `json:"betAndDistribute,omitempty"`
	Distribute       *WagerDistribute `json:"distribute,omitempty"`
	Withdraw         *WagerWithdraw   `json:"withdraw,omitempty"`
}

// WagerBet 投注, 交易附带的金额就是投注金额
type WagerBet struct {
	Challenge string `json:"challenge"`
}

// WagerDistribute 结算已经成熟的投注
type WagerDistribute struct{}

// WagerWithdraw 取回托管的奖金
type WagerWithdraw struct{}

// Wager 一次投注, 投注之后只会被结算一次, 不会被删除
type Wager struct {
	Index            int64  `json:"index"`
	Bettor           string `json:"bettor"`
	Challenge        string `json:"challenge"`
	Amount           int64  `json:"amount"`
	PlacementHeight  int64  `json:"placementHeight"`
	MaturationHeight int64  `json:"maturationHeight"`
	Settled          bool   `json:"settled"`
	Result           int32  `json:"result"`
	Answer           string `json:"answer,omitempty"`
	SettleHeight     int64  `json:"settleHeight,omitempty"`
}

// Config [exec.sub.wager] 配置
type Config struct {
	BetAmount        int64 `json:"betAmount"`
	RevealDelay      int64 `json:"revealDelay"`
	MaxSettlePerCall int32 `json:"maxSettlePerCall"`
	SettleOnBet      bool  `json:"settleOnBet"`
}

// DefaultConfig 默认配置, 配置文件中没有的项保持默认值
func DefaultConfig() *Config {
	return &Config{
		BetAmount:        DefaultBetAmount,
		RevealDelay:      DefaultRevealDelay,
		MaxSettlePerCall: DefaultMaxSettlePerCall,
		SettleOnBet:      true,
	}
}

// Check 检查配置
func (cfg *Config) Check() error {
	if !types.CheckAmount(cfg.BetAmount) {
		return ErrWagerConfig
	}
	if cfg.RevealDelay <= 0 || cfg.MaxSettlePerCall <= 0 {
		return ErrWagerConfig
	}
	return nil
}

// ReceiptWagerBet 投注日志
type ReceiptWagerBet struct {
	Index            int64  `json:"index"`
	Bettor           string `json:"bettor"`
	Amount           int64  `json:"amount"`
	Challenge        string `json:"challenge"`
	MaturationHeight int64  `json:"maturationHeight"`
}

// ReceiptWagerSettle 结算日志, Payout 为应付给投注者的金额, Pot 为结算之后的奖池
type ReceiptWagerSettle struct {
	Index     int64  `json:"index"`
	Bettor    string `json:"bettor"`
	Challenge string `json:"challenge"`
	Answer    string `json:"answer,omitempty"`
	Result    int32  `json:"result"`
	Payout    int64  `json:"payout"`
	Pot       int64  `json:"pot"`
}

// ReceiptWagerEscrow 奖金无法直接转账, 转入托管
type ReceiptWagerEscrow struct {
	Index   int64  `json:"index"`
	Bettor  string `json:"bettor"`
	Amount  int64  `json:"amount"`
	Balance int64  `json:"balance"`
	Reason  string `json:"reason"`
}

// ReceiptWagerWithdraw 取回托管
type ReceiptWagerWithdraw struct {
	Addr   string `json:"addr"`
	Amount int64  `json:"amount"`
}

// ReqWager 按编号查询投注
type ReqWager struct {
	Index int64 `json:"index"`
}

// ReqIsMatch 比较挑战和区块哈希
type ReqIsMatch struct {
	Challenge string `json:"challenge"`
	Hash      string `json:"hash"`
}

// ReplyIsMatch 比较结果
type ReplyIsMatch struct {
	Result int32  `json:"result"`
	Name   string `json:"name"`
}

// ReplyBetInfo 投注信息
type ReplyBetInfo struct {
	Index            int64  `json:"index"`
	MaturationHeight int64  `json:"maturationHeight"`
	Bettor           string `json:"bettor"`
	Challenge        string `json:"challenge"`
}

// ReqAddr 地址
type ReqAddr struct {
	Addr string `json:"addr"`
}

// ReplyQueueInfo 队列以及奖池的状态
type ReplyQueueInfo struct {
	Head             int64 `json:"head"`
	Tail             int64 `json:"tail"`
	Pot              int64 `json:"pot"`
	BetAmount        int64 `json:"betAmount"`
	RevealDelay      int64 `json:"revealDelay"`
	MaxSettlePerCall int32 `json:"maxSettlePerCall"`
}

// ReqWagersByAddr 分页查询某个地址的投注, Index 为上一页的最后一个编号, -1 表示从头开始
type ReqWagersByAddr struct {
	Addr      string `json:"addr"`
	Index     int64  `json:"index"`
	Count     int32  `json:"count"`
	Direction int32  `json:"direction"`
}

// ReqBet rpc 投注请求, Amount 为 0 时使用配置的投注金额
type ReqBet struct {
	From       string `json:"from"`
	Challenge  string `json:"challenge"`
	Amount     int64  `json:"amount"`
	Distribute bool   `json:"distribute"`
}

// ReplyWagers 投注列表
type ReplyWagers struct {
	Wagers []*Wager `json:"wagers"`
}

// CreateBetTx 投注交易
func CreateBetTx(from, challenge string, amount int64) *types.Transaction {
	action := &WagerAction{Ty: WagerActionBet, Bet: &WagerBet{Challenge: challenge}}
	return types.CreateTx(WagerX, from, amount, action)
}

// CreateBetAndDistributeTx 投注并且结算
func CreateBetAndDistributeTx(from, challenge string, amount int64) *types.Transaction {
	action := &WagerAction{Ty: WagerActionBetAndDistribute, BetAndDistribute: &WagerBet{Challenge: challenge}}
	return types.CreateTx(WagerX, from, amount, action)
}

// CreateDistributeTx 结算交易
func CreateDistributeTx(from string) *types.Transaction {
	action := &WagerAction{Ty: WagerActionDistribute, Distribute: &WagerDistribute{}}
	return types.CreateTx(WagerX, from, 0, action)
}

// CreateWithdrawTx 取回托管
func CreateWithdrawTx(from string) *types.Transaction {
	action := &WagerAction{Ty: WagerActionWithdraw, Withdraw: &WagerWithdraw{}}
	return types.CreateTx(WagerX, from, 0, action)
}
