// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	drivers "github.com/33cn/wager/system/dapp"
	"github.com/33cn/wager/types"
)

// Query 查询, params 为 json 编码的参数
func (w *Wager) Query(funcName string, params []byte) (types.Message, error) {
	switch funcName {
	case wty.FuncNameGetPot:
		return w.Query_GetPot()
	case wty.FuncNameGetWager:
		var req wty.ReqWager
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return w.Query_GetWager(&req)
	case wty.FuncNameGetBetInfo:
		var req wty.ReqWager
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return w.Query_GetBetInfo(&req)
	case wty.FuncNameIsMatch:
		var req wty.ReqIsMatch
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return w.Query_IsMatch(&req)
	case wty.FuncNameGetEscrow:
		var req wty.ReqAddr
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return w.Query_GetEscrow(&req)
	case wty.FuncNameGetQueueInfo:
		return w.Query_GetQueueInfo()
	case wty.FuncNameListWagersByAddr:
		var req wty.ReqWagersByAddr
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return w.Query_ListWagersByAddr(&req)
	}
	return nil, types.ErrQueryNotSupport
}

// Query_GetPot 奖池
func (w *Wager) Query_GetPot() (types.Message, error) {
	return &types.Int64{Data: getInt64(w.GetStateDB(), potKey)}, nil
}

// Query_GetWager 投注详情
func (w *Wager) Query_GetWager(req *wty.ReqWager) (types.Message, error) {
	wager, err := findWager(w.GetStateDB(), req.Index)
	if err != nil {
		return nil, err
	}
	return wager, nil
}

// Query_GetBetInfo 成熟高度, 投注者以及挑战
func (w *Wager) Query_GetBetInfo(req *wty.ReqWager) (types.Message, error) {
	wager, err := findWager(w.GetStateDB(), req.Index)
	if err != nil {
		return nil, err
	}
	return &wty.ReplyBetInfo{
		Index:            wager.Index,
		MaturationHeight: wager.MaturationHeight,
		Bettor:           wager.Bettor,
		Challenge:        wager.Challenge,
	}, nil
}

// Query_IsMatch 比较挑战和哈希, 不读取状态
func (w *Wager) Query_IsMatch(req *wty.ReqIsMatch) (types.Message, error) {
	result, err := wty.IsMatchHex(req.Challenge, req.Hash)
	if err != nil {
		return nil, err
	}
	return &wty.ReplyIsMatch{Result: int32(result), Name: result.String()}, nil
}

// Query_GetEscrow 托管的余额
func (w *Wager) Query_GetEscrow(req *wty.ReqAddr) (types.Message, error) {
	if err := drivers.CheckAddress(req.Addr, -1); err != nil {
		return nil, types.ErrInvalidAddress
	}
	return &types.Int64{Data: getInt64(w.GetStateDB(), calcEscrowKey(req.Addr))}, nil
}

// Query_GetQueueInfo 队列状态以及配置
func (w *Wager) Query_GetQueueInfo() (types.Message, error) {
	db := w.GetStateDB()
	return &wty.ReplyQueueInfo{
		Head:             getInt64(db, headKey),
		Tail:             getInt64(db, tailKey),
		Pot:              getInt64(db, potKey),
		BetAmount:        w.cfg.BetAmount,
		RevealDelay:      w.cfg.RevealDelay,
		MaxSettlePerCall: w.cfg.MaxSettlePerCall,
	}, nil
}

// Query_ListWagersByAddr 按地址分页查询投注, 投注从 statedb 读取
func (w *Wager) Query_ListWagersByAddr(req *wty.ReqWagersByAddr) (types.Message, error) {
	if err := drivers.CheckAddress(req.Addr, -1); err != nil {
		return nil, types.ErrInvalidAddress
	}
	count := req.Count
	if count <= 0 {
		count = wty.DefaultListCount
	}
	if count > wty.MaxListCount {
		count = wty.MaxListCount
	}
	var key []byte
	if req.Index >= 0 {
		key = calcAddrKey(req.Addr, req.Index)
	}
	values, err := w.GetLocalDB().List(calcAddrPrefix(req.Addr), key, count, req.Direction)
	if err != nil {
		return nil, err
	}
	reply := &wty.ReplyWagers{}
	for _, value := range values {
		var index types.Int64
		if err := types.Decode(value, &index); err != nil {
			wlog.Error("ListWagersByAddr", "value", string(value), "err", err)
			continue
		}
		wager, err := findWager(w.GetStateDB(), index.Data)
		if err != nil {
			return nil, err
		}
		reply.Wagers = append(reply.Wagers, wager)
	}
	return reply, nil
}
