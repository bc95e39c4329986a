// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testnode 提供一个通用的内存测试节点, 用于单元测试和集成测试
package testnode

import (
	"fmt"
	"sync"
	"time"

	"github.com/33cn/wager/blockchain"
	"github.com/33cn/wager/client"
	"github.com/33cn/wager/common/config"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/consensus/solo"
	"github.com/33cn/wager/executor"
	_ "github.com/33cn/wager/plugin/init" //load plugins
	"github.com/33cn/wager/pluginmgr"
	"github.com/33cn/wager/rpc"
	"github.com/33cn/wager/rpc/jsonclient"
	_ "github.com/33cn/wager/system/init" //load system plugins
	"github.com/33cn/wager/types"
	"github.com/inconshreveable/log15"
)

var nodelog = log15.New("module", "testnode")

//执行器只能注册一次, 同一个进程中的节点共用第一次的执行器配置
var initExecOnce sync.Once

// WagerMock 内存数据库上的完整节点
type WagerMock struct {
	cfg   *types.Config
	sub   *types.ConfigSubModule
	db    dbm.DB
	chain *blockchain.BlockChain
	exec  *executor.Executor
	node  *solo.Client
	rpc   *rpc.RPC
	addr  string
}

// GetDefaultConfig 默认的测试配置
func GetDefaultConfig() (*types.Config, *types.ConfigSubModule) {
	return config.InitCfgString(cfgstring)
}

// New 新建测试节点, cfgpath 为空时使用默认配置
func New(cfgpath string) *WagerMock {
	var cfg *types.Config
	var sub *types.ConfigSubModule
	if cfgpath == "" {
		cfg, sub = GetDefaultConfig()
	} else {
		cfg, sub = config.InitCfg(cfgpath)
	}
	return NewWithConfig(cfg, sub)
}

// NewWithConfig 用给定的配置新建测试节点, 数据库总是使用 memdb
func NewWithConfig(cfg *types.Config, sub *types.ConfigSubModule) *WagerMock {
	initExecOnce.Do(func() { pluginmgr.InitExec(sub.Exec) })
	mock := &WagerMock{cfg: cfg, sub: sub}
	db, err := dbm.NewDB("testnode", dbm.MemDBBackendStr, "", 0)
	if err != nil {
		panic(err)
	}
	mock.db = db
	mock.chain, err = blockchain.New(cfg.BlockChain, db)
	if err != nil {
		panic(err)
	}
	mock.exec = executor.New(db, mock.chain)
	mock.node = solo.New(cfg.Consensus, mock.chain, mock.exec)
	if err := mock.node.Start(); err != nil {
		panic(err)
	}
	mock.rpc = rpc.New(cfg.RPC, mock.node)
	return mock
}

// Listen 启动 jrpc, 配置的端口为 0 时使用随机端口
func (mock *WagerMock) Listen() {
	port, err := mock.rpc.Listen()
	if err != nil {
		panic(err)
	}
	mock.addr = fmt.Sprintf("http://127.0.0.1:%d", port)
	nodelog.Info("testnode listen", "addr", mock.addr)
}

// GetAPI 节点接口
func (mock *WagerMock) GetAPI() client.API {
	return mock.node
}

// GetRPC rpc 服务
func (mock *WagerMock) GetRPC() *rpc.RPC {
	return mock.rpc
}

// GetCfg 节点配置
func (mock *WagerMock) GetCfg() *types.Config {
	return mock.cfg
}

// GetGenesisAddress 创世地址, 持有全部初始资金
func (mock *WagerMock) GetGenesisAddress() string {
	return mock.cfg.Consensus.Genesis
}

// GetJSONC Listen 之后才能使用
func (mock *WagerMock) GetJSONC() *jsonclient.JSONClient {
	jsonc, err := jsonclient.NewJSONClient(mock.addr)
	if err != nil {
		panic(err)
	}
	return jsonc
}

// WaitHeight 等待区块高度达到 height
func (mock *WagerMock) WaitHeight(height int64) error {
	for i := 0; i < 100; i++ {
		header, err := mock.node.GetLastHeader()
		if err != nil {
			return err
		}
		if header.Height >= height {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return types.ErrBlockNotFound
}

// MineTo 出空块直到高度达到 height
func (mock *WagerMock) MineTo(height int64) error {
	for {
		header, err := mock.node.GetLastHeader()
		if err != nil {
			return err
		}
		if header.Height >= height {
			return nil
		}
		if _, err := mock.node.Mine(); err != nil {
			return err
		}
	}
}

// Close 关闭节点
func (mock *WagerMock) Close() {
	mock.rpc.Close()
	mock.node.Close()
	mock.db.Close()
}
