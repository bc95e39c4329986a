// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli RunWager 加载各个模块, 组合成投注节点
// 区块由 solo 共识生成, 执行器执行已经注册的插件, rpc 提供对外接口
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/33cn/wager/blockchain"
	"github.com/33cn/wager/common/config"
	dbm "github.com/33cn/wager/common/db"
	clog "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/consensus/solo"
	"github.com/33cn/wager/executor"
	"github.com/33cn/wager/metrics"
	"github.com/33cn/wager/pluginmgr"
	"github.com/33cn/wager/rpc"
	"github.com/33cn/wager/types"
	"github.com/33cn/wager/util"
	log "github.com/inconshreveable/log15"
)

var (
	configPath  = flag.String("f", "", "configfile")
	datadir     = flag.String("datadir", "", "data dir of wager, include logs and datas")
	versionFlag = flag.Bool("v", false, "version")
)

var nlog = log.New("module", "main")

//RunWager 启动节点, 收到退出信号之后依次关闭各个模块
func RunWager(name string) {
	flag.Parse()
	if *versionFlag {
		fmt.Println(types.Version)
		return
	}
	if *configPath == "" {
		if name == "" {
			*configPath = "wager.toml"
		} else {
			*configPath = name + ".toml"
		}
	}
	d, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	nlog.Info("current dir:", "dir", d)
	cfg, sub := config.InitCfg(*configPath)
	if *datadir != "" {
		util.ResetDatadir(cfg, *datadir)
	}
	clog.SetFileLog(cfg.Log)

	//set watching
	t := time.NewTicker(10 * time.Second)
	defer t.Stop()
	go func() {
		for range t.C {
			watching()
		}
	}()

	nlog.Info(cfg.Title + "-app:" + types.Version)
	pluginmgr.InitExec(sub.Exec)

	nlog.Info("loading store module", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB("wager", cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		panic(err)
	}

	nlog.Info("loading blockchain module")
	chain, err := blockchain.New(cfg.BlockChain, db)
	if err != nil {
		panic(err)
	}

	nlog.Info("loading execs module")
	exec := executor.New(db, chain)

	nlog.Info("loading consensus module")
	cs := solo.New(cfg.Consensus, chain, exec)
	if err := cs.Start(); err != nil {
		panic(err)
	}

	rpcapi := rpc.New(cfg.RPC, cs)
	port, err := rpcapi.Listen()
	if err != nil {
		panic(err)
	}
	nlog.Info("rpc listen", "addr", cfg.RPC.JrpcBindAddr, "port", port)

	ctx, cancel := context.WithCancel(context.Background())
	metrics.StartMetrics(ctx, cfg.Metrics, sub.Metrics)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	nlog.Info("receive signal, begin close", "signal", sig)

	cancel()
	nlog.Info("begin close rpc module")
	rpcapi.Close()
	nlog.Info("begin close consensus module")
	cs.Close()
	nlog.Info("begin close store module")
	db.Close()
}

func watching() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	nlog.Info("info:", "NumGoroutine:", runtime.NumGoroutine())
	nlog.Info("info:", "Mem:", m.Sys/(1024*1024))
	nlog.Info("info:", "HeapAlloc:", m.HeapAlloc/(1024*1024))
}
