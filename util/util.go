// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util 节点启动和测试用到的一些工具函数
package util

import (
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"

	"github.com/33cn/wager/common"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
	log "github.com/inconshreveable/log15"
)

var ulog = log.New("module", "util")

//ResetDatadir 重写日志和数据库的路径, 支持 ~/ 和 $TEMP/ 开头的目录
func ResetDatadir(cfg *types.Config, datadir string) string {
	// Check in case of paths like "/something/~/something/"
	if len(datadir) >= 2 && datadir[:2] == "~/" {
		usr, err := user.Current()
		if err != nil {
			panic(err)
		}
		datadir = filepath.Join(usr.HomeDir, datadir[2:])
	}
	if len(datadir) >= 6 && datadir[:6] == "$TEMP/" {
		dir, err := ioutil.TempDir("", "wagerdatadir-")
		if err != nil {
			panic(err)
		}
		datadir = filepath.Join(dir, datadir[6:])
	}
	ulog.Info("current user data dir is ", "dir", datadir)
	if cfg.Log != nil {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
	if cfg.Store != nil {
		cfg.Store.DbPath = filepath.Join(datadir, cfg.Store.DbPath)
	}
	return datadir
}

//CreateTestDB 在临时目录中创建一个 leveldb
func CreateTestDB() (string, dbm.DB) {
	dir, err := ioutil.TempDir("", "goleveldb")
	if err != nil {
		panic(err)
	}
	leveldb, err := dbm.NewDB("test", dbm.LevelDBBackendStr, dir, 64)
	if err != nil {
		panic(err)
	}
	return dir, leveldb
}

//CloseTestDB 关闭并且删除测试数据库
func CloseTestDB(dir string, db dbm.DB) {
	if err := os.RemoveAll(dir); err != nil {
		ulog.Info("RemoveAll ", "dir", dir, "err", err)
	}
	db.Close()
}

//SaveKVList 保存 kv 列表, Value 为 nil 表示删除
func SaveKVList(db dbm.DB, kvs []*types.KeyValue) error {
	batch := db.NewBatch(true)
	for _, kv := range kvs {
		if kv.Value == nil {
			batch.Delete(kv.Key)
			continue
		}
		batch.Set(kv.Key, kv.Value)
	}
	return batch.Write()
}

//PrintKV 打印 kv 列表
func PrintKV(kvs []*types.KeyValue) {
	for i := 0; i < len(kvs); i++ {
		ulog.Info("KV", "key", string(kvs[i].Key), "value", common.ToHex(kvs[i].Value))
	}
}

// CheckPathExists 检查文件夹是否存在
func CheckPathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Pwd 可执行文件所在的目录
func Pwd() string {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		panic(err)
	}
	return dir
}
