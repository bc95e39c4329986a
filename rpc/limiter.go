// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/kevinms/leakybucket-go"
)

//按 ip 限制请求频率, nil 表示不限制
type ipLimiter struct {
	collector *leakybucket.Collector
}

func newIPLimiter(rate float64, burst int64) *ipLimiter {
	if rate <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = int64(rate) + 1
	}
	return &ipLimiter{collector: leakybucket.NewCollector(rate, burst, true)}
}

func (l *ipLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	//桶满时 Add 返回 0
	return l.collector.Add(ip, 1) > 0
}
