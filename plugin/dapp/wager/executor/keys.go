// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	wty "github.com/33cn/wager/plugin/dapp/wager/types"
)

//statedb 中的 key, 执行器只能写 mavl-wager- 开头的 key
var (
	headKey = []byte("mavl-" + wty.WagerX + "-head")
	tailKey = []byte("mavl-" + wty.WagerX + "-tail")
	potKey  = []byte("mavl-" + wty.WagerX + "-pot")
)

//托管余额, 资金留在执行器地址的主账户中
func calcEscrowKey(addr string) []byte {
	return []byte(fmt.Sprintf("mavl-%s-escrow:%s", wty.WagerX, addr))
}

func calcWagerKey(index int64) []byte {
	return []byte(fmt.Sprintf("mavl-%s-bet:%018d", wty.WagerX, index))
}

//localdb 中地址到投注编号的索引
func calcAddrPrefix(addr string) []byte {
	return []byte(fmt.Sprintf("LODB-%s-addr:%s:", wty.WagerX, addr))
}

func calcAddrKey(addr string, index int64) []byte {
	return []byte(fmt.Sprintf("LODB-%s-addr:%s:%018d", wty.WagerX, addr, index))
}
