// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	rpctypes "github.com/33cn/wager/rpc/types"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	"github.com/33cn/wager/types"
)

func (c *channelClient) sendTx(tx *types.Transaction) (*rpctypes.TransactionDetail, error) {
	reply, err := c.SendTx(tx)
	if err != nil {
		return nil, err
	}
	tran, err := rpctypes.DecodeTx(tx)
	if err != nil {
		return nil, err
	}
	return &rpctypes.TransactionDetail{
		Tx:      tran,
		Receipt: rpctypes.DecodeLog(reply.Receipt),
		Height:  reply.Height,
		Index:   reply.Index,
	}, nil
}

func (c *channelClient) betAmount() (int64, error) {
	msg, err := c.Query(wty.WagerX, wty.FuncNameGetQueueInfo, nil)
	if err != nil {
		return 0, err
	}
	return msg.(*wty.ReplyQueueInfo).BetAmount, nil
}

func (c *channelClient) bet(req *wty.ReqBet) (*rpctypes.TransactionDetail, error) {
	if _, err := wty.ParseChallenge(req.Challenge); err != nil {
		return nil, err
	}
	amount := req.Amount
	if amount == 0 {
		var err error
		if amount, err = c.betAmount(); err != nil {
			return nil, err
		}
	}
	var tx *types.Transaction
	if req.Distribute {
		tx = wty.CreateBetAndDistributeTx(req.From, req.Challenge, amount)
	} else {
		tx = wty.CreateBetTx(req.From, req.Challenge, amount)
	}
	return c.sendTx(tx)
}

func (c *channelClient) query(funcName string, req types.Message) (types.Message, error) {
	var params []byte
	if req != nil {
		params = types.Encode(req)
	}
	return c.Query(wty.WagerX, funcName, params)
}
