// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr 插件管理, 每个 dapp 通过 Register 注册执行器, 命令行和 rpc
package pluginmgr

import (
	"sort"
	"sync"

	"github.com/33cn/wager/rpc/types"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

var mgrlog = log.New("module", "plugin.manager")

var (
	mu          sync.Mutex
	pluginItems = make(map[string]Plugin)
	once        = &sync.Once{}
)

// InitExec 初始化所有插件的执行器, 只执行一次
func InitExec(sub map[string][]byte) {
	once.Do(func() {
		for _, item := range items() {
			mgrlog.Debug("InitExec", "exec", item.GetExecutorName())
			item.InitExec(sub)
		}
	})
}

// HasExec 是否存在该执行器
func HasExec(name string) bool {
	for _, item := range items() {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// Register 注册插件, 名字重复时 panic
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// AddCmd 添加所有插件的命令行
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range items() {
		item.AddCmd(rootCmd)
	}
}

// AddRPC 注册所有插件的 rpc
func AddRPC(s types.RPCServer) {
	for _, item := range items() {
		item.AddRPC(s)
	}
}

//按名字排序, 保证初始化的顺序是确定的
func items() []Plugin {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(pluginItems))
	for name := range pluginItems {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Plugin, 0, len(names))
	for _, name := range names {
		list = append(list, pluginItems[name])
	}
	return list
}
