// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"errors"
	"testing"

	"github.com/33cn/wager/account"
	"github.com/33cn/wager/blockchain"
	"github.com/33cn/wager/client"
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/executor"
	wty "github.com/33cn/wager/plugin/dapp/wager/types"
	drivers "github.com/33cn/wager/system/dapp"
	cexec "github.com/33cn/wager/system/dapp/coins/executor"
	cty "github.com/33cn/wager/system/dapp/coins/types"
	"github.com/33cn/wager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cexec.Init(cty.CoinsX, nil)
	Init(wty.WagerX, nil)
}

var (
	user1     = address.NameToAddress("user1")
	user2     = address.NameToAddress("user2")
	coinsAddr = drivers.ExecAddress(cty.CoinsX)
	wagerAddr = drivers.ExecAddress(wty.WagerX)
	betAmount = wty.DefaultBetAmount
	blockHash = "0x948063becaf0cca37e41eed2ad2998573a2dc1ab0e1b59d1e36666008cf5b309"
	errReveal = errors.New("ErrReveal")
)

//固定答案, expired 中的高度当作哈希已经过期
type fixedRevealer struct {
	answer  []byte
	expired map[int64]bool
	err     error
}

func (r *fixedRevealer) Reveal(height int64) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.expired[height] {
		return nil, wty.ErrUnrevealable
	}
	return r.answer, nil
}

type testEnv struct {
	t     *testing.T
	db    dbm.DB
	chain *blockchain.BlockChain
	exec  *executor.Executor
}

func newTestEnv(t *testing.T, cfg *wty.Config, retention int64) *testEnv {
	if cfg != nil {
		setConfig(cfg)
		t.Cleanup(func() { setConfig(wty.DefaultConfig()) })
	}
	db, err := dbm.NewDB("wager", "memdb", "", 0)
	require.NoError(t, err)
	chain, err := blockchain.New(&types.BlockChain{HashRetention: retention}, db)
	require.NoError(t, err)
	env := &testEnv{t: t, db: db, chain: chain, exec: executor.New(db, chain)}

	genesis := &types.Block{BlockTime: types.GenesisBlockTime}
	genesis.TxHash = genesis.CalcTxHash()
	var detail *types.BlockDetail
	var kvs []*types.KeyValue
	for _, addr := range []string{user1, user2, coinsAddr} {
		d, kv, err := env.exec.ExecGenesis(genesis, addr, 100*types.Coin)
		require.NoError(t, err)
		detail = d
		kvs = append(kvs, kv...)
	}
	_, err = chain.AddBlock(detail, kvs)
	require.NoError(t, err)
	return env
}

//用固定的答案代替区块哈希
func fixAnswer(t *testing.T, r *fixedRevealer) {
	old := newRevealer
	newRevealer = func(api client.ChainAPI) Revealer { return r }
	t.Cleanup(func() { newRevealer = old })
}

func answer(t *testing.T) *fixedRevealer {
	hash, err := common.FromHex(blockHash)
	require.NoError(t, err)
	return &fixedRevealer{answer: hash, expired: make(map[int64]bool)}
}

func (env *testEnv) runBlock(txs ...*types.Transaction) *types.BlockDetail {
	last, err := env.chain.GetLastHeader()
	require.NoError(env.t, err)
	block := &types.Block{
		ParentHash: last.Hash,
		Height:     last.Height + 1,
		BlockTime:  last.BlockTime + 1,
		Txs:        txs,
	}
	block.TxHash = block.CalcTxHash()
	detail, kvs, err := env.exec.ExecBlock(block)
	require.NoError(env.t, err)
	_, err = env.chain.AddBlock(detail, kvs)
	require.NoError(env.t, err)
	env.checkConservation()
	return detail
}

//执行一个交易, 返回收据
func (env *testEnv) run(tx *types.Transaction) *types.ReceiptData {
	detail := env.runBlock(tx)
	require.Equal(env.t, 1, len(detail.Receipts))
	return detail.Receipts[0]
}

func (env *testEnv) runOk(tx *types.Transaction) *types.ReceiptData {
	receipt := env.run(tx)
	require.Equal(env.t, int32(types.ExecOk), receipt.Ty, errLog(receipt))
	return receipt
}

func (env *testEnv) runPack(tx *types.Transaction, expect error) {
	receipt := env.run(tx)
	require.Equal(env.t, int32(types.ExecPack), receipt.Ty)
	assert.Equal(env.t, expect.Error(), errLog(receipt))
}

func errLog(receipt *types.ReceiptData) string {
	for _, l := range receipt.Logs {
		if l.Ty == types.TyLogErr {
			var msg string
			types.MustDecode(l.Log, &msg)
			return msg
		}
	}
	return ""
}

func (env *testEnv) query(funcName string, req types.Message) (types.Message, error) {
	return env.exec.Query(wty.WagerX, funcName, types.Encode(req))
}

func (env *testEnv) balance(addr string) int64 {
	msg, err := env.exec.Query(cty.CoinsX, cty.FuncNameGetBalance, types.Encode(&types.ReqBalance{Addresses: []string{addr}}))
	require.NoError(env.t, err)
	return msg.([]*types.Account)[0].Balance
}

//通过 coins 存入 wager 执行器的子账户, 不属于托管
func (env *testEnv) deposit(addr string) int64 {
	msg, err := env.exec.Query(cty.CoinsX, cty.FuncNameGetBalance, types.Encode(&types.ReqBalance{Addresses: []string{addr}, Execer: wty.WagerX}))
	require.NoError(env.t, err)
	return msg.([]*types.Account)[0].Balance
}

func (env *testEnv) pot() int64 {
	msg, err := env.query(wty.FuncNameGetPot, struct{}{})
	require.NoError(env.t, err)
	return msg.(*types.Int64).Data
}

func (env *testEnv) escrow(addr string) int64 {
	msg, err := env.query(wty.FuncNameGetEscrow, &wty.ReqAddr{Addr: addr})
	require.NoError(env.t, err)
	return msg.(*types.Int64).Data
}

func (env *testEnv) wager(index int64) *wty.Wager {
	msg, err := env.query(wty.FuncNameGetWager, &wty.ReqWager{Index: index})
	require.NoError(env.t, err)
	return msg.(*wty.Wager)
}

func (env *testEnv) queue() *wty.ReplyQueueInfo {
	msg, err := env.query(wty.FuncNameGetQueueInfo, struct{}{})
	require.NoError(env.t, err)
	return msg.(*wty.ReplyQueueInfo)
}

//执行器地址的余额 = 未结算的本金 + 奖池 + 托管 + coins 存款
func (env *testEnv) checkConservation() {
	info := env.queue()
	var unsettled int64
	for i := info.Head; i < info.Tail; i++ {
		w := env.wager(i)
		require.False(env.t, w.Settled)
		unsettled += w.Amount
	}
	for i := int64(0); i < info.Head; i++ {
		require.True(env.t, env.wager(i).Settled)
	}
	var escrow, deposit int64
	for _, addr := range []string{user1, user2, coinsAddr} {
		escrow += env.escrow(addr)
		deposit += env.deposit(addr)
	}
	assert.Equal(env.t, env.balance(wagerAddr), unsettled+info.Pot+escrow+deposit)
}

func logsOf(receipt *types.ReceiptData, ty int32) []*types.ReceiptLog {
	var logs []*types.ReceiptLog
	for _, l := range receipt.Logs {
		if l.Ty == ty {
			logs = append(logs, l)
		}
	}
	return logs
}

//user2 先投注两次 0xab, 第三次由 user1 投注, 之后 user2 再投注四次
//第 7 次投注所在的区块结算 user1 的投注
func runScenario(t *testing.T, env *testEnv, challenge string) (potBefore, user1Before int64, receipt7 *types.ReceiptData) {
	challenges := []string{"0xab", "0xab", challenge, "0xab", "0xab", "0xab"}
	for i, c := range challenges {
		from := user2
		if i == 2 {
			from = user1
		}
		env.runOk(wty.CreateBetAndDistributeTx(from, c, betAmount))
	}
	assert.Equal(t, int64(6), env.chain.Height())
	potBefore = env.pot()
	assert.Equal(t, 2*betAmount, potBefore)
	user1Before = env.balance(user1)
	receipt7 = env.runOk(wty.CreateBetAndDistributeTx(user2, "0xab", betAmount))
	return
}

func TestDistributeWin(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	potBefore, user1Before, receipt := runScenario(t, env, "0x94")

	assert.Equal(t, int64(0), env.pot())
	assert.Equal(t, user1Before+potBefore+betAmount, env.balance(user1))
	require.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerWin)))
	var settle wty.ReceiptWagerSettle
	types.MustDecode(logsOf(receipt, wty.TyLogWagerWin)[0].Log, &settle)
	assert.Equal(t, int64(2), settle.Index)
	assert.Equal(t, user1, settle.Bettor)
	assert.Equal(t, "0x94", settle.Answer)
	assert.Equal(t, potBefore+betAmount, settle.Payout)
	assert.Equal(t, int64(0), settle.Pot)

	w := env.wager(2)
	assert.True(t, w.Settled)
	assert.Equal(t, int32(wty.Win), w.Result)
	assert.Equal(t, int64(7), w.SettleHeight)
	assert.Equal(t, int64(6), w.MaturationHeight)
	//后面的投注还没有成熟
	assert.Equal(t, int64(3), env.queue().Head)
	assert.Equal(t, int64(7), env.queue().Tail)
}

func TestDistributeDraw(t *testing.T) {
	for _, c := range []string{"0x9b", "0xa4"} {
		env := newTestEnv(t, nil, 0)
		fixAnswer(t, answer(t))
		potBefore, user1Before, receipt := runScenario(t, env, c)

		assert.Equal(t, potBefore, env.pot())
		assert.Equal(t, user1Before+betAmount, env.balance(user1))
		assert.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerDraw)))
		assert.Equal(t, int32(wty.Draw), env.wager(2).Result)
	}
}

func TestDistributeFail(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	potBefore, user1Before, receipt := runScenario(t, env, "0xef")

	assert.Equal(t, potBefore+betAmount, env.pot())
	assert.Equal(t, user1Before, env.balance(user1))
	assert.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerFail)))
	assert.Equal(t, int32(wty.Fail), env.wager(2).Result)
}

func TestBetInvalidStake(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	bal := env.balance(user1)

	assert.Equal(t, wty.ErrInvalidStake, env.exec.CheckTx(wty.CreateBetTx(user1, "0xab", 4e5)))
	env.runPack(wty.CreateBetTx(user1, "0xab", 4e5), wty.ErrInvalidStake)
	env.runPack(wty.CreateBetTx(user1, "0xab", 0), wty.ErrInvalidStake)
	env.runPack(wty.CreateBetAndDistributeTx(user1, "0xab", 2*betAmount), wty.ErrInvalidStake)
	env.runPack(wty.CreateBetTx(user1, "0xabc", betAmount), wty.ErrInvalidChallenge)
	env.runPack(wty.CreateBetTx(user1, "xyz", betAmount), wty.ErrInvalidChallenge)

	tx := wty.CreateDistributeTx(user1)
	tx.Amount = betAmount
	env.runPack(tx, wty.ErrInvalidStake)

	assert.Equal(t, int64(0), env.queue().Tail)
	assert.Equal(t, bal, env.balance(user1))
	assert.Equal(t, int64(0), env.balance(wagerAddr))

	env.runOk(wty.CreateBetTx(user1, "0xAB", betAmount))
	assert.Equal(t, int64(1), env.queue().Tail)
	assert.Equal(t, "0xab", env.wager(0).Challenge)
	assert.Equal(t, bal-betAmount, env.balance(user1))
}

func TestSettleIdempotent(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	env.runOk(wty.CreateBetTx(user1, "0xab", betAmount))
	//成熟之前结算什么都不做
	for i := 0; i < 3; i++ {
		receipt := env.runOk(wty.CreateDistributeTx(user2))
		assert.Equal(t, 0, len(receipt.Logs))
		assert.Equal(t, int64(0), env.queue().Head)
	}
	receipt := env.runOk(wty.CreateDistributeTx(user2))
	assert.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerFail)))
	assert.Equal(t, int64(1), env.queue().Head)
	assert.Equal(t, betAmount, env.pot())

	//再次结算不会重复
	receipt = env.runOk(wty.CreateDistributeTx(user2))
	assert.Equal(t, 0, len(receipt.Logs))
	assert.Equal(t, betAmount, env.pot())
	assert.Equal(t, int64(1), env.queue().Head)
}

func TestSettleCap(t *testing.T) {
	cfg := wty.DefaultConfig()
	cfg.MaxSettlePerCall = 2
	cfg.SettleOnBet = false
	env := newTestEnv(t, cfg, 0)
	fixAnswer(t, answer(t))

	for i := 0; i < 5; i++ {
		env.runOk(wty.CreateBetTx(user2, "0xab", betAmount))
	}
	//没有结算
	assert.Equal(t, int64(0), env.queue().Head)
	assert.Equal(t, int64(0), env.pot())
	for i := 0; i < 3; i++ {
		env.runBlock()
	}
	// height 9, 所有投注都已经成熟
	expect := []int64{2, 4, 5, 5}
	for _, head := range expect {
		env.runOk(wty.CreateDistributeTx(user1))
		assert.Equal(t, head, env.queue().Head)
		assert.Equal(t, head*betAmount, env.pot())
	}
}

func TestFIFO(t *testing.T) {
	cfg := wty.DefaultConfig()
	cfg.SettleOnBet = false
	env := newTestEnv(t, cfg, 0)
	r := answer(t)
	fixAnswer(t, r)

	env.runOk(wty.CreateBetTx(user1, "0x94", betAmount))
	env.runOk(wty.CreateBetTx(user2, "0xab", betAmount))
	env.runOk(wty.CreateBetTx(user2, "0x94", betAmount))
	for i := 0; i < 3; i++ {
		env.runBlock()
	}
	receipt := env.runOk(wty.CreateDistributeTx(user1))
	var indexes []int64
	for _, l := range receipt.Logs {
		switch l.Ty {
		case wty.TyLogWagerWin, wty.TyLogWagerFail:
			var settle wty.ReceiptWagerSettle
			types.MustDecode(l.Log, &settle)
			indexes = append(indexes, settle.Index)
		}
	}
	assert.Equal(t, []int64{0, 1, 2}, indexes)
	//第一个赢得空奖池, 第二个输掉本金, 第三个赢得第二个的本金
	assert.Equal(t, int64(0), env.pot())
	assert.Equal(t, 100*types.Coin, env.balance(user1))
	assert.Equal(t, 100*types.Coin, env.balance(user2))
}

func TestRefundExpired(t *testing.T) {
	cfg := wty.DefaultConfig()
	cfg.SettleOnBet = false
	env := newTestEnv(t, cfg, 3)
	env.runOk(wty.CreateBetTx(user1, "0x94", betAmount))
	bal := env.balance(user1)
	// maturation 4, last 7 时哈希已经过期
	for env.chain.Height() < 7 {
		env.runBlock()
	}
	_, err := env.chain.GetBlockHash(4)
	require.Equal(t, types.ErrBlockHashExpired, err)

	receipt := env.runOk(wty.CreateDistributeTx(user2))
	assert.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerRefund)))
	w := env.wager(0)
	assert.True(t, w.Settled)
	assert.Equal(t, int32(wty.Refund), w.Result)
	assert.Equal(t, "", w.Answer)
	assert.Equal(t, bal+betAmount, env.balance(user1))
	assert.Equal(t, int64(0), env.pot())
	assert.Equal(t, int64(1), env.queue().Head)
}

func TestSettleWithBlockHash(t *testing.T) {
	cfg := wty.DefaultConfig()
	cfg.SettleOnBet = false
	env := newTestEnv(t, cfg, 0)
	env.runOk(wty.CreateBetTx(user1, "0x94", betAmount))
	for env.chain.Height() < 4 {
		env.runBlock()
	}
	hash, err := env.chain.GetBlockHash(4)
	require.NoError(t, err)
	env.runOk(wty.CreateDistributeTx(user2))

	w := env.wager(0)
	assert.True(t, w.Settled)
	assert.Equal(t, int32(wty.IsMatch(0x94, hash)), w.Result)
	assert.Equal(t, wty.FormatChallenge(hash[0]), w.Answer)
}

func TestRevealErrorRollback(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	r := answer(t)
	fixAnswer(t, r)
	env.runOk(wty.CreateBetTx(user1, "0xab", betAmount))
	for i := 0; i < 3; i++ {
		env.runBlock()
	}
	bal := env.balance(user2)
	r.err = errReveal
	//投注和结算一起回滚, 本金也没有转出
	env.runPack(wty.CreateBetTx(user2, "0xab", betAmount), errReveal)
	assert.Equal(t, bal, env.balance(user2))
	assert.Equal(t, int64(1), env.queue().Tail)
	assert.Equal(t, int64(0), env.queue().Head)
	assert.False(t, env.wager(0).Settled)

	r.err = nil
	env.runOk(wty.CreateBetTx(user2, "0xab", betAmount))
	assert.Equal(t, int64(2), env.queue().Tail)
	assert.Equal(t, int64(1), env.queue().Head)
}

func TestEscrowAndWithdraw(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	//执行器地址不接受直接转账, 奖金转入托管
	env.runOk(wty.CreateBetTx(coinsAddr, "0x94", betAmount))
	env.runPack(wty.CreateWithdrawTx(coinsAddr), wty.ErrNothingToWithdraw)
	for i := 0; i < 3; i++ {
		env.runBlock()
	}
	bal := env.balance(coinsAddr)
	receipt := env.runOk(wty.CreateDistributeTx(user1))
	assert.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerWin)))
	require.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerEscrow)))
	var escrow wty.ReceiptWagerEscrow
	types.MustDecode(logsOf(receipt, wty.TyLogWagerEscrow)[0].Log, &escrow)
	assert.Equal(t, coinsAddr, escrow.Bettor)
	assert.Equal(t, betAmount, escrow.Amount)
	assert.Equal(t, types.ErrRecvRefused.Error(), escrow.Reason)

	assert.Equal(t, bal, env.balance(coinsAddr))
	assert.Equal(t, betAmount, env.escrow(coinsAddr))
	assert.True(t, env.wager(0).Settled)

	receipt = env.runOk(wty.CreateWithdrawTx(coinsAddr))
	assert.Equal(t, 1, len(logsOf(receipt, wty.TyLogWagerWithdraw)))
	assert.Equal(t, bal+betAmount, env.balance(coinsAddr))
	assert.Equal(t, int64(0), env.escrow(coinsAddr))
	assert.Equal(t, int64(0), env.balance(wagerAddr))

	env.runPack(wty.CreateWithdrawTx(coinsAddr), wty.ErrNothingToWithdraw)
	tx := wty.CreateWithdrawTx(user1)
	tx.Amount = 1
	env.runPack(tx, wty.ErrInvalidStake)
}

func TestDeliverFailureEscrow(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	old := deliver
	deliver = func(acc *account.DB, execaddr, to string, amount, height int64) (*types.Receipt, error) {
		if to == user1 {
			return nil, types.ErrRecvRefused
		}
		return old(acc, execaddr, to, amount, height)
	}
	t.Cleanup(func() { deliver = old })

	env.runOk(wty.CreateBetTx(user1, "0x9b", betAmount))
	env.runOk(wty.CreateBetTx(user2, "0x9b", betAmount))
	for i := 0; i < 3; i++ {
		env.runBlock()
	}
	bal1, bal2 := env.balance(user1), env.balance(user2)
	env.runOk(wty.CreateDistributeTx(user1))
	env.runOk(wty.CreateDistributeTx(user1))
	//投注之间互不影响
	assert.Equal(t, bal1, env.balance(user1))
	assert.Equal(t, betAmount, env.escrow(user1))
	assert.Equal(t, bal2+betAmount, env.balance(user2))
	assert.Equal(t, int64(0), env.escrow(user2))
	assert.Equal(t, int64(2), env.queue().Head)

	env.runOk(wty.CreateWithdrawTx(user1))
	assert.Equal(t, bal1+betAmount, env.balance(user1))
}

func TestDeliverErrorRollback(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	old := deliver
	deliver = func(acc *account.DB, execaddr, to string, amount, height int64) (*types.Receipt, error) {
		return nil, types.ErrNoBalance
	}
	t.Cleanup(func() { deliver = old })

	env.runOk(wty.CreateBetTx(user1, "0x9b", betAmount))
	for i := 0; i < 3; i++ {
		env.runBlock()
	}
	//执行器余额不足不是拒收, 不能转入托管
	env.runPack(wty.CreateDistributeTx(user1), types.ErrNoBalance)
	assert.Equal(t, int64(0), env.escrow(user1))
	assert.Equal(t, int64(0), env.queue().Head)
	assert.False(t, env.wager(0).Settled)

	deliver = old
	env.runOk(wty.CreateDistributeTx(user1))
	assert.True(t, env.wager(0).Settled)
	assert.Equal(t, int64(1), env.queue().Head)
}

func TestCoinsDepositIsNotEscrow(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	env.runOk(cty.CreateTransferTx(user1, wagerAddr, types.Coin, ""))
	assert.Equal(t, types.Coin, env.deposit(user1))
	assert.Equal(t, int64(0), env.escrow(user1))
	env.runPack(wty.CreateWithdrawTx(user1), wty.ErrNothingToWithdraw)

	//存款只能通过 coins 取回
	env.runOk(cty.CreateWithdrawTx(user1, wty.WagerX, types.Coin))
	assert.Equal(t, int64(0), env.deposit(user1))
	assert.Equal(t, 100*types.Coin, env.balance(user1))
}

func TestQuery(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	env.runOk(wty.CreateBetTx(user1, "0xab", betAmount))
	env.runOk(wty.CreateBetTx(user2, "0x12", betAmount))
	env.runOk(wty.CreateBetTx(user1, "0x94", betAmount))

	msg, err := env.query(wty.FuncNameGetBetInfo, &wty.ReqWager{Index: 2})
	require.NoError(t, err)
	info := msg.(*wty.ReplyBetInfo)
	assert.Equal(t, int64(6), info.MaturationHeight)
	assert.Equal(t, user1, info.Bettor)
	assert.Equal(t, "0x94", info.Challenge)

	_, err = env.query(wty.FuncNameGetWager, &wty.ReqWager{Index: 3})
	assert.Equal(t, wty.ErrWagerNotFound, err)

	msg, err = env.query(wty.FuncNameIsMatch, &wty.ReqIsMatch{Challenge: "0x9b", Hash: blockHash})
	require.NoError(t, err)
	assert.Equal(t, int32(wty.Draw), msg.(*wty.ReplyIsMatch).Result)
	assert.Equal(t, "Draw", msg.(*wty.ReplyIsMatch).Name)
	_, err = env.query(wty.FuncNameIsMatch, &wty.ReqIsMatch{Challenge: "0x9", Hash: blockHash})
	assert.Equal(t, wty.ErrInvalidChallenge, err)

	queue := env.queue()
	assert.Equal(t, int64(0), queue.Head)
	assert.Equal(t, int64(3), queue.Tail)
	assert.Equal(t, betAmount, queue.BetAmount)
	assert.Equal(t, wty.DefaultRevealDelay, queue.RevealDelay)

	msg, err = env.query(wty.FuncNameListWagersByAddr, &wty.ReqWagersByAddr{Addr: user1, Index: -1, Direction: types.ListASC})
	require.NoError(t, err)
	wagers := msg.(*wty.ReplyWagers).Wagers
	require.Equal(t, 2, len(wagers))
	assert.Equal(t, int64(0), wagers[0].Index)
	assert.Equal(t, int64(2), wagers[1].Index)

	msg, err = env.query(wty.FuncNameListWagersByAddr, &wty.ReqWagersByAddr{Addr: user1, Index: -1, Count: 1, Direction: types.ListDESC})
	require.NoError(t, err)
	wagers = msg.(*wty.ReplyWagers).Wagers
	require.Equal(t, 1, len(wagers))
	assert.Equal(t, int64(2), wagers[0].Index)

	msg, err = env.query(wty.FuncNameListWagersByAddr, &wty.ReqWagersByAddr{Addr: user1, Index: 2, Direction: types.ListDESC})
	require.NoError(t, err)
	wagers = msg.(*wty.ReplyWagers).Wagers
	require.Equal(t, 1, len(wagers))
	assert.Equal(t, int64(0), wagers[0].Index)

	_, err = env.query(wty.FuncNameListWagersByAddr, &wty.ReqWagersByAddr{Addr: coinsAddr, Index: -1})
	assert.Equal(t, types.ErrNotFound, err)
	_, err = env.query(wty.FuncNameListWagersByAddr, &wty.ReqWagersByAddr{Addr: "bad", Index: -1})
	assert.Equal(t, types.ErrInvalidAddress, err)
	_, err = env.query("NoFunc", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	fixAnswer(t, answer(t))
	bets, fails := betCounter.Count(), failCounter.Count()
	env.runOk(wty.CreateBetTx(user1, "0xab", betAmount))
	env.runPack(wty.CreateBetTx(user1, "0xab", 1), wty.ErrInvalidStake)
	for i := 0; i < 3; i++ {
		env.runBlock()
	}
	env.runOk(wty.CreateDistributeTx(user1))
	assert.Equal(t, bets+1, betCounter.Count())
	assert.Equal(t, fails+1, failCounter.Count())
	assert.Equal(t, betAmount, potGauge.Value())
}

func TestInitConfig(t *testing.T) {
	cfg := wty.DefaultConfig()
	types.MustDecode([]byte(`{"betAmount":1000,"settleOnBet":false}`), cfg)
	assert.Equal(t, int64(1000), cfg.BetAmount)
	assert.False(t, cfg.SettleOnBet)
	assert.Equal(t, wty.DefaultRevealDelay, cfg.RevealDelay)
	assert.Equal(t, int32(wty.DefaultMaxSettlePerCall), cfg.MaxSettlePerCall)
	assert.NoError(t, cfg.Check())

	cfg.MaxSettlePerCall = 0
	assert.Equal(t, wty.ErrWagerConfig, cfg.Check())
	assert.Panics(t, func() { Init("lottery", nil) })
}
