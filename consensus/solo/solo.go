// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solo 单节点出块. 每笔交易单独打包成一个区块, 没有交易时可以定时出空块
package solo

import (
	"sync"
	"time"

	"github.com/33cn/wager/blockchain"
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/executor"
	"github.com/33cn/wager/types"
	log "github.com/inconshreveable/log15"
	gometrics "github.com/rcrowley/go-metrics"
)

var slog = log.New("module", "solo")

var blockCounter = gometrics.GetOrRegisterCounter("solo.block", nil)

// Client 实现了 client.API
type Client struct {
	cfg   *types.Consensus
	chain *blockchain.BlockChain
	exec  *executor.Executor
	//同一时刻只能打包一个区块
	mu     sync.Mutex
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
	//测试时可以替换
	now func() time.Time
}

// New 新建 solo 共识, cfg 为 nil 时使用默认配置
func New(cfg *types.Consensus, chain *blockchain.BlockChain, exec *executor.Executor) *Client {
	if cfg == nil {
		cfg = &types.Consensus{}
	}
	if cfg.Genesis == "" {
		cfg.Genesis = types.GenesisAddr
	}
	if cfg.GenesisAmount == 0 {
		cfg.GenesisAmount = types.DefaultGenesisAmount
	}
	if cfg.GenesisBlockTime == 0 {
		cfg.GenesisBlockTime = types.GenesisBlockTime
	}
	exec.SetAPI(chain)
	return &Client{
		cfg:   cfg,
		chain: chain,
		exec:  exec,
		done:  make(chan struct{}),
		now:   time.Now,
	}
}

// Start 没有区块时写入创世区块, 配置了空块间隔时启动定时出块
func (client *Client) Start() error {
	if client.chain.Height() < 0 {
		if err := client.genesis(); err != nil {
			return err
		}
	}
	if client.cfg.IdleBlockInterval > 0 {
		client.wg.Add(1)
		go client.idleLoop(time.Duration(client.cfg.IdleBlockInterval) * time.Second)
	}
	return nil
}

// Close 停止定时出块
func (client *Client) Close() {
	client.mu.Lock()
	if client.closed {
		client.mu.Unlock()
		return
	}
	client.closed = true
	close(client.done)
	client.mu.Unlock()
	client.wg.Wait()
	slog.Info("solo closed")
}

func (client *Client) genesis() error {
	block := &types.Block{BlockTime: client.cfg.GenesisBlockTime}
	block.TxHash = block.CalcTxHash()
	detail, kvs, err := client.exec.ExecGenesis(block, client.cfg.Genesis, client.cfg.GenesisAmount)
	if err != nil {
		return err
	}
	header, err := client.chain.AddBlock(detail, kvs)
	if err != nil {
		return err
	}
	slog.Info("genesis block", "hash", common.ToHex(header.Hash), "addr", client.cfg.Genesis, "amount", client.cfg.GenesisAmount)
	return nil
}

func (client *Client) idleLoop(interval time.Duration) {
	defer client.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-client.done:
			return
		case <-ticker.C:
			if _, err := client.Mine(); err != nil {
				slog.Error("idle block", "err", err)
			}
		}
	}
}

//区块时间不能小于上一个区块
func (client *Client) blockTime(last *types.Header) int64 {
	blocktime := client.now().Unix()
	if blocktime <= last.BlockTime {
		blocktime = last.BlockTime + 1
	}
	return blocktime
}

//调用者持有 mu
func (client *Client) createBlock(txs []*types.Transaction) (*types.BlockDetail, error) {
	if client.closed {
		return nil, types.ErrNotStarted
	}
	last, err := client.chain.GetLastHeader()
	if err != nil {
		return nil, types.ErrNotStarted
	}
	block := &types.Block{
		ParentHash: last.Hash,
		Height:     last.Height + 1,
		BlockTime:  client.blockTime(last),
		Txs:        txs,
	}
	block.TxHash = block.CalcTxHash()
	detail, kvs, err := client.exec.ExecBlock(block)
	if err != nil {
		return nil, err
	}
	header, err := client.chain.AddBlock(detail, kvs)
	if err != nil {
		return nil, err
	}
	blockCounter.Inc(1)
	slog.Debug("new block", "height", header.Height, "txs", header.TxCount)
	return detail, nil
}

// SendTx 检查交易后单独打包成一个区块
func (client *Client) SendTx(tx *types.Transaction) (*types.TxResult, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if err := client.exec.CheckTx(tx); err != nil {
		slog.Debug("SendTx check", "err", err)
		return nil, err
	}
	detail, err := client.createBlock([]*types.Transaction{tx})
	if err != nil {
		return nil, err
	}
	return &types.TxResult{
		Hash:    common.ToHex(tx.Hash()),
		Height:  detail.Block.Height,
		Index:   0,
		Receipt: detail.Receipts[0],
	}, nil
}

// Mine 生成一个空区块
func (client *Client) Mine() (*types.Header, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	detail, err := client.createBlock(nil)
	if err != nil {
		return nil, err
	}
	return detail.Block.GetHeader(), nil
}

// GetLastHeader 最新区块头
func (client *Client) GetLastHeader() (*types.Header, error) {
	return client.chain.GetLastHeader()
}

// GetBlockHash 已提交区块的哈希
func (client *Client) GetBlockHash(height int64) ([]byte, error) {
	return client.chain.GetBlockHash(height)
}

// GetBlock 区块以及收据
func (client *Client) GetBlock(height int64) (*types.BlockDetail, error) {
	return client.chain.GetBlock(height)
}

// GetTx 交易执行结果
func (client *Client) GetTx(hash []byte) (*types.TxResult, error) {
	return client.chain.GetTx(hash)
}

// Query 在最新状态上查询
func (client *Client) Query(driver, funcName string, params []byte) (types.Message, error) {
	return client.exec.Query(driver, funcName, params)
}
