// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/wager/client"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	"github.com/33cn/wager/types"
)

// Revealer 提供成熟高度的区块哈希
// 哈希已经无法读取时返回 ErrUnrevealable, 其他错误会中止本次执行
type Revealer interface {
	Reveal(height int64) ([]byte, error)
}

//测试中替换成固定的答案
var newRevealer = func(api client.ChainAPI) Revealer {
	return &chainRevealer{api: api}
}

type chainRevealer struct {
	api client.ChainAPI
}

//不做缓存: 同一高度的哈希在超出保留窗口之后必须返回 ErrUnrevealable
func (r *chainRevealer) Reveal(height int64) ([]byte, error) {
	if r.api == nil {
		return nil, types.ErrNotStarted
	}
	hash, err := r.api.GetBlockHash(height)
	if err == types.ErrBlockHashExpired {
		return nil, wty.ErrUnrevealable
	}
	if err != nil {
		wlog.Error("Reveal", "height", height, "err", err)
		return nil, err
	}
	return hash, nil
}
