// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//WagerX 执行器名称
const WagerX = "wager"

//wager op
const (
	WagerActionBet = 1 + iota
	WagerActionBetAndDistribute
	WagerActionDistribute
	WagerActionWithdraw
)

//log for wager
const (
	TyLogWagerBet      = 1001
	TyLogWagerWin      = 1002
	TyLogWagerDraw     = 1003
	TyLogWagerFail     = 1004
	TyLogWagerRefund   = 1005
	TyLogWagerEscrow   = 1006
	TyLogWagerWithdraw = 1007
)

//查询函数名
const (
	FuncNameGetPot           = "GetPot"
	FuncNameGetWager         = "GetWager"
	FuncNameGetBetInfo       = "GetBetInfo"
	FuncNameIsMatch          = "IsMatch"
	FuncNameGetEscrow        = "GetEscrow"
	FuncNameGetQueueInfo     = "GetQueueInfo"
	FuncNameListWagersByAddr = "ListWagersByAddr"
)

//默认配置
const (
	// DefaultBetAmount 每次投注的固定金额
	DefaultBetAmount int64 = 5e5
	// DefaultRevealDelay 投注之后第几个区块的哈希决定结果
	DefaultRevealDelay int64 = 3
	// DefaultMaxSettlePerCall 一次调用最多结算的投注数量
	DefaultMaxSettlePerCall = 16
	// DefaultListCount 列表查询默认返回的数量
	DefaultListCount = 20
	// MaxListCount 列表查询最多返回的数量
	MaxListCount = 100
)
