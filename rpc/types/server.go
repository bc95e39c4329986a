// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"net/rpc"

	"github.com/33cn/wager/client"
)

// RPCServer 插件注册 jrpc 服务时使用的接口
type RPCServer interface {
	GetAPI() client.API
	JRPC() *rpc.Server
}

// ChannelClient 插件 rpc 的公共部分, 持有节点接口
type ChannelClient struct {
	client.API
	jrpc interface{}
}

// Init 注册名为 name 的 jrpc 服务
func (c *ChannelClient) Init(name string, s RPCServer, jrpc interface{}) {
	if c.API == nil {
		c.API = s.GetAPI()
	}
	if jrpc != nil {
		if err := s.JRPC().RegisterName(name, jrpc); err != nil {
			panic(err)
		}
	}
	c.jrpc = jrpc
}
