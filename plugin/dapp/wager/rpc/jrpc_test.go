// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"net/http/httptest"
	"testing"

	"github.com/33cn/wager/blockchain"
	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/consensus/solo"
	"github.com/33cn/wager/executor"
	wexec "github.com/33cn/wager/plugin/dapp/wager/executor"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	rpcserver "github.com/33cn/wager/rpc"
	"github.com/33cn/wager/rpc/jsonclient"
	rpctypes "github.com/33cn/wager/rpc/types"
	cexec "github.com/33cn/wager/system/dapp/coins/executor"
	cty "github.com/33cn/wager/system/dapp/coins/types"
	"github.com/33cn/wager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cexec.Init(cty.CoinsX, nil)
	wexec.Init(wty.WagerX, nil)
}

var user1 = address.NameToAddress("user1")

func newTestClient(t *testing.T) (*jsonclient.JSONClient, *solo.Client) {
	db, err := dbm.NewDB("wager-rpc", "memdb", "", 0)
	require.NoError(t, err)
	chain, err := blockchain.New(nil, db)
	require.NoError(t, err)
	node := solo.New(&types.Consensus{Genesis: user1, GenesisAmount: 100 * types.Coin}, chain, executor.New(db, chain))
	require.NoError(t, node.Start())
	t.Cleanup(node.Close)

	r := rpcserver.New(nil, node)
	Init(wty.WagerX, r)
	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	cli, err := jsonclient.NewJSONClient(srv.URL)
	require.NoError(t, err)
	return cli, node
}

func TestWagerJrpc(t *testing.T) {
	cli, node := newTestClient(t)

	var info wty.ReplyQueueInfo
	require.NoError(t, cli.Call("wager.GetQueueInfo", rpctypes.ReqNil{}, &info))
	assert.Equal(t, wty.DefaultBetAmount, info.BetAmount)
	assert.Equal(t, int64(0), info.Tail)

	var detail rpctypes.TransactionDetail
	require.NoError(t, cli.Call("wager.Bet", &wty.ReqBet{From: user1, Challenge: "0x94"}, &detail))
	assert.Equal(t, "ExecOk", detail.Receipt.TyName)
	var names []string
	for _, l := range detail.Receipt.Logs {
		names = append(names, l.TyName)
	}
	assert.Contains(t, names, "LogWagerBet")

	err := cli.Call("wager.Bet", &wty.ReqBet{From: user1, Challenge: "zz"}, &detail)
	assert.EqualError(t, err, wty.ErrInvalidChallenge.Error())
	err = cli.Call("wager.Bet", &wty.ReqBet{From: user1, Challenge: "0x94", Amount: 1}, &detail)
	assert.EqualError(t, err, wty.ErrInvalidStake.Error())

	var wager wty.Wager
	require.NoError(t, cli.Call("wager.GetWager", &wty.ReqWager{Index: 0}, &wager))
	assert.Equal(t, user1, wager.Bettor)
	assert.False(t, wager.Settled)
	err = cli.Call("wager.GetWager", &wty.ReqWager{Index: 5}, &wager)
	assert.EqualError(t, err, wty.ErrWagerNotFound.Error())

	var betinfo wty.ReplyBetInfo
	require.NoError(t, cli.Call("wager.GetBetInfo", &wty.ReqWager{Index: 0}, &betinfo))
	assert.Equal(t, detail.Height+wty.DefaultRevealDelay, betinfo.MaturationHeight)

	//等待成熟之后结算
	for i := 0; i < int(wty.DefaultRevealDelay); i++ {
		_, err := node.Mine()
		require.NoError(t, err)
	}
	require.NoError(t, cli.Call("wager.Distribute", &wty.ReqAddr{Addr: user1}, &detail))
	assert.Equal(t, "ExecOk", detail.Receipt.TyName)
	require.NoError(t, cli.Call("wager.GetWager", &wty.ReqWager{Index: 0}, &wager))
	assert.True(t, wager.Settled)

	require.NoError(t, cli.Call("wager.GetQueueInfo", rpctypes.ReqNil{}, &info))
	assert.Equal(t, int64(1), info.Head)
	assert.Equal(t, int64(1), info.Tail)

	var pot map[string]interface{}
	require.NoError(t, cli.Call("wager.GetPot", rpctypes.ReqNil{}, &pot))
	assert.Contains(t, pot, "potfmt")

	var escrow types.Int64
	require.NoError(t, cli.Call("wager.GetEscrow", &wty.ReqAddr{Addr: user1}, &escrow))
	assert.Equal(t, int64(0), escrow.Data)

	var wagers wty.ReplyWagers
	require.NoError(t, cli.Call("wager.ListWagersByAddr", &wty.ReqWagersByAddr{Addr: user1, Index: -1, Direction: types.ListASC}, &wagers))
	require.Equal(t, 1, len(wagers.Wagers))
	assert.Equal(t, int64(0), wagers.Wagers[0].Index)

	var match wty.ReplyIsMatch
	require.NoError(t, cli.Call("wager.IsMatch", &wty.ReqIsMatch{Challenge: "0x94", Hash: "0x9400"}, &match))
	assert.Equal(t, "Win", match.Name)

	//没有托管资金, 交易打包但是执行失败
	require.NoError(t, cli.Call("wager.Withdraw", &wty.ReqAddr{Addr: user1}, &detail))
	assert.Equal(t, "ExecPack", detail.Receipt.TyName)
}
