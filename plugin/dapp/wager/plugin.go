// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wager 按区块哈希结算的投注合约
package wager

import (
	"github.com/33cn/wager/plugin/dapp/wager/commands"
	"github.com/33cn/wager/plugin/dapp/wager/executor"
	"github.com/33cn/wager/plugin/dapp/wager/rpc"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	"github.com/33cn/wager/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     "wager",
		ExecName: wty.WagerX,
		Exec:     executor.Init,
		Cmd:      commands.WagerCmd,
		RPC:      rpc.Init,
	})
}
