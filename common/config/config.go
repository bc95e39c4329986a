// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config 解析 toml 配置文件
package config

import (
	"encoding/json"

	tml "github.com/BurntSushi/toml"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

//Init 解析配置文件, 没有配置的项使用默认值
func Init(path string) (*types.Config, error) {
	var cfg types.Config
	if _, err := tml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}
	cfg.FillDefault()
	return &cfg, nil
}

//InitString 解析配置字符串
func InitString(cfgstring string) (*types.Config, error) {
	var cfg types.Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode string")
	}
	cfg.FillDefault()
	return &cfg, nil
}

//InitCfg 解析配置文件以及子模块配置, 失败直接panic
func InitCfg(path string) (*types.Config, *types.ConfigSubModule) {
	cfg, err := Init(path)
	if err != nil {
		panic(err)
	}
	sub, err := InitSubModule(path)
	if err != nil {
		panic(err)
	}
	return cfg, sub
}

//InitCfgString 同 InitCfg, 配置来自字符串
func InitCfgString(cfgstring string) (*types.Config, *types.ConfigSubModule) {
	cfg, err := InitString(cfgstring)
	if err != nil {
		panic(err)
	}
	var sm subModule
	if _, err := tml.Decode(cfgstring, &sm); err != nil {
		panic(err)
	}
	return cfg, sm.parse()
}

type subModule struct {
	Exec    map[string]interface{}
	Metrics map[string]interface{}
}

//InitSubModule 子模块配置, 对应 [exec.sub.xxx] 这样的配置段
func InitSubModule(path string) (*types.ConfigSubModule, error) {
	var cfg subModule
	if _, err := tml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "config: decode sub module %s", path)
	}
	return cfg.parse(), nil
}

func (sm *subModule) parse() *types.ConfigSubModule {
	return &types.ConfigSubModule{
		Exec:    parseItem(sm.Exec),
		Metrics: parseItem(sm.Metrics),
	}
}

func parseItem(data map[string]interface{}) map[string][]byte {
	subconfig := make(map[string][]byte)
	if len(data) == 0 {
		return subconfig
	}
	for key := range data {
		if key == "sub" {
			subcfg, ok := data[key].(map[string]interface{})
			if !ok {
				continue
			}
			for k := range subcfg {
				subconfig[k], _ = json.Marshal(subcfg[k])
			}
		}
	}
	return subconfig
}
