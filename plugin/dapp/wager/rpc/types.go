// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	rpctypes "github.com/33cn/wager/rpc/types"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
)

// Jrpc wager 的 jrpc 服务
type Jrpc struct {
	cli *channelClient
}

type channelClient struct {
	rpctypes.ChannelClient
}

func init() {
	rpctypes.RegisterLogName(wty.TyLogWagerBet, "LogWagerBet")
	rpctypes.RegisterLogName(wty.TyLogWagerWin, "LogWagerWin")
	rpctypes.RegisterLogName(wty.TyLogWagerDraw, "LogWagerDraw")
	rpctypes.RegisterLogName(wty.TyLogWagerFail, "LogWagerFail")
	rpctypes.RegisterLogName(wty.TyLogWagerRefund, "LogWagerRefund")
	rpctypes.RegisterLogName(wty.TyLogWagerEscrow, "LogWagerEscrow")
	rpctypes.RegisterLogName(wty.TyLogWagerWithdraw, "LogWagerWithdraw")
}

// Init 注册 jrpc 服务, 服务名就是执行器名
func Init(name string, s rpctypes.RPCServer) {
	cli := &channelClient{}
	cli.Init(name, s, &Jrpc{cli: cli})
}
