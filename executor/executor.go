// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 执行区块中的交易, 生成收据和状态数据库的修改
package executor

import (
	"bytes"
	"time"

	"github.com/33cn/wager/account"
	"github.com/33cn/wager/client"
	dbm "github.com/33cn/wager/common/db"
	drivers "github.com/33cn/wager/system/dapp"
	"github.com/33cn/wager/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"
)

var elog = log.New("module", "execs")

var (
	execBlockTimer = gometrics.GetOrRegisterTimer("executor.execblock", nil)
	execTxCounter  = gometrics.GetOrRegisterCounter("executor.tx.ok", nil)
	packTxCounter  = gometrics.GetOrRegisterCounter("executor.tx.pack", nil)
)

// Executor 执行器框架, 读取已经提交的状态, 执行区块
type Executor struct {
	db  dbm.DB
	api client.ChainAPI
}

// New 新建执行器, db 是区块链和状态共用的数据库
func New(db dbm.DB, api client.ChainAPI) *Executor {
	return &Executor{db: db, api: api}
}

// SetAPI 设置执行器读取区块信息的接口
func (exec *Executor) SetAPI(api client.ChainAPI) {
	exec.api = api
}

type executor struct {
	stateDB   *StateDB
	localDB   *LocalDB
	height    int64
	blocktime int64
	api       client.ChainAPI
	coinsAcc  *account.DB
}

func (exec *Executor) newExecutor(height, blocktime int64) *executor {
	e := &executor{
		stateDB:   NewStateDB(exec.db),
		localDB:   NewLocalDB(exec.db),
		height:    height,
		blocktime: blocktime,
		api:       exec.api,
		coinsAcc:  account.NewCoinsAccount(),
	}
	e.coinsAcc.SetDB(e.stateDB)
	return e
}

// ExecGenesis 执行创世区块, 给创世地址分配初始资金
func (exec *Executor) ExecGenesis(block *types.Block, addr string, amount int64) (*types.BlockDetail, []*types.KeyValue, error) {
	if block.Height != 0 {
		return nil, nil, types.ErrBlockHeight
	}
	e := exec.newExecutor(0, block.BlockTime)
	if e.coinsAcc.LoadAccount(addr).GetBalance() != 0 {
		return nil, nil, types.ErrReRunGenesis
	}
	if _, err := e.coinsAcc.GenesisInit(addr, amount); err != nil {
		return nil, nil, errors.Wrap(err, "ExecGenesis")
	}
	elog.Info("ExecGenesis", "addr", addr, "amount", amount)
	detail := &types.BlockDetail{Block: block, Receipts: []*types.ReceiptData{}}
	return detail, e.kvList(), nil
}

// ExecBlock 执行区块, 返回带收据的区块以及需要写入数据库的 kv
// 执行失败的交易同样打包进区块, 收据为 ExecPack, 状态不发生变化
func (exec *Executor) ExecBlock(block *types.Block) (*types.BlockDetail, []*types.KeyValue, error) {
	beg := time.Now()
	defer execBlockTimer.UpdateSince(beg)

	e := exec.newExecutor(block.Height, block.BlockTime)
	detail := &types.BlockDetail{Block: block}
	for i, tx := range block.Txs {
		receipt, err := e.execTx(tx, i)
		if err != nil {
			elog.Error("ExecBlock", "height", block.Height, "index", i, "err", err)
			return nil, nil, err
		}
		data := &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}
		detail.Receipts = append(detail.Receipts, data)
		if err := e.execLocalTx(tx, data, i); err != nil {
			return nil, nil, err
		}
	}
	elog.Debug("ExecBlock", "height", block.Height, "txs", len(block.Txs), "cost", time.Since(beg))
	return detail, e.kvList(), nil
}

// CheckTx 交易进入区块之前的检查, 在下一个区块的高度上进行
func (exec *Executor) CheckTx(tx *types.Transaction) error {
	height, blocktime := int64(0), types.GenesisBlockTime
	if exec.api != nil {
		if header, err := exec.api.GetLastHeader(); err == nil {
			height, blocktime = header.Height, header.BlockTime
		}
	}
	e := exec.newExecutor(height+1, blocktime)
	return e.checkTx(tx, 0)
}

// Query 在最新区块的状态上查询
func (exec *Executor) Query(driver, funcName string, params []byte) (types.Message, error) {
	d, err := drivers.LoadDriver(driver, -1)
	if err != nil {
		return nil, err
	}
	e := exec.newExecutor(0, 0)
	if exec.api != nil {
		if header, err := exec.api.GetLastHeader(); err == nil {
			e.height, e.blocktime = header.Height, header.BlockTime
		}
	}
	e.setEnv(d)
	return d.Query(funcName, params)
}

func (e *executor) kvList() []*types.KeyValue {
	return append(e.stateDB.KVList(), e.localDB.KVList()...)
}

func (e *executor) setEnv(exec drivers.Driver) {
	exec.SetStateDB(e.stateDB)
	exec.SetLocalDB(e.localDB)
	exec.SetEnv(e.height, e.blocktime)
	exec.SetAPI(e.api)
}

func (e *executor) loadDriver(tx *types.Transaction) (drivers.Driver, error) {
	exec, err := drivers.LoadDriver(tx.Execer, e.height)
	if err != nil {
		return nil, err
	}
	e.setEnv(exec)
	return exec, nil
}

func (e *executor) checkTx(tx *types.Transaction, index int) error {
	if err := tx.Check(); err != nil {
		return err
	}
	exec, err := e.loadDriver(tx)
	if err != nil {
		return err
	}
	if tx.Amount > 0 {
		if !exec.IsPayable() {
			return types.ErrNotPayable
		}
		if err := e.coinsAcc.CheckTransfer(tx.From, tx.To, tx.Amount); err != nil {
			return err
		}
	}
	return exec.CheckTx(tx, index)
}

//交易检查规则:
//基本格式错误的交易不能进入区块, 直接返回错误
//执行失败的交易打包进区块, 收据中带上错误日志
func (e *executor) execTx(tx *types.Transaction, index int) (*types.Receipt, error) {
	if err := tx.Check(); err != nil {
		return nil, err
	}
	exec, err := e.loadDriver(tx)
	if err != nil {
		return nil, err
	}
	e.begin()
	receipt, err := e.execTxOne(exec, tx, index)
	if err != nil {
		e.rollback()
		elog.Error("exec tx error", "err", err, "exec", tx.Execer, "index", index)
		packTxCounter.Inc(1)
		errlog := &types.ReceiptLog{Ty: types.TyLogErr, Log: types.Encode(err.Error())}
		return &types.Receipt{Ty: types.ExecPack, Logs: []*types.ReceiptLog{errlog}}, nil
	}
	e.commit()
	execTxCounter.Inc(1)
	receipt.Ty = types.ExecOk
	return receipt, nil
}

func (e *executor) execTxOne(exec drivers.Driver, tx *types.Transaction, index int) (*types.Receipt, error) {
	if err := exec.CheckTx(tx, index); err != nil {
		return nil, err
	}
	receipt := &types.Receipt{}
	//随交易附带的资金先转入执行器地址
	if tx.Amount > 0 {
		if !exec.IsPayable() {
			return nil, types.ErrNotPayable
		}
		r, err := e.coinsAcc.Transfer(tx.From, tx.To, tx.Amount)
		if err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	r, err := exec.Exec(tx, index)
	if err != nil {
		return nil, err
	}
	receipt = types.MergeReceipt(receipt, r)
	//1. statedb 中 Set的 key 必须是 在 receipt.KV 这个集合中
	//2. receipt.KV 中的 key, 必须符合权限控制要求
	if err := e.checkKV(e.stateDB.GetSetKeys(), receipt.KV); err != nil {
		return nil, err
	}
	for _, kv := range receipt.KV {
		if !isAllowKeyWrite(kv.Key, tx.Execer) {
			elog.Error("err receipt key", "key", string(kv.Key), "tx.exec", tx.Execer)
			return nil, types.ErrNotAllowKey
		}
	}
	return receipt, nil
}

func (e *executor) checkKV(memset []string, kvs []*types.KeyValue) error {
	keys := make(map[string]bool)
	for _, kv := range kvs {
		keys[string(kv.Key)] = true
	}
	for _, key := range memset {
		if _, ok := keys[key]; !ok {
			elog.Error("err memset key", "key", key)
			return types.ErrNotAllowMemSetKey
		}
	}
	return nil
}

func (e *executor) execLocalTx(tx *types.Transaction, r *types.ReceiptData, index int) error {
	exec, err := e.loadDriver(tx)
	if err != nil {
		return err
	}
	set, err := exec.ExecLocal(tx, r, index)
	if err != nil {
		elog.Error("execLocalTx", "exec", tx.Execer, "index", index, "err", err)
		return err
	}
	if set == nil {
		return nil
	}
	for _, kv := range set.KV {
		if err := e.localDB.Set(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *executor) begin() {
	e.stateDB.Begin()
}

func (e *executor) commit() {
	e.stateDB.Commit()
}

func (e *executor) rollback() {
	e.stateDB.Rollback()
}

var (
	coinsKeyPrefix = []byte("mavl-coins-")
)

/*
权限控制规则:
执行器只能修改自己名下的 key (mavl-<execer>-)
币的账户(包括执行器子账户)由 account 包统一维护, 所有执行器都可以修改
*/
func isAllowKeyWrite(key []byte, execer string) bool {
	if bytes.HasPrefix(key, []byte("mavl-"+execer+"-")) {
		return true
	}
	return bytes.HasPrefix(key, coinsKeyPrefix)
}
