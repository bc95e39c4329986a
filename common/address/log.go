// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"github.com/33cn/wager/common"
	log "github.com/inconshreveable/log15"
)

var alog = log.New("module", "address")

//NameToAddress 由账户名生成一个普通地址, 开发和测试用, 本链不校验签名
func NameToAddress(name string) string {
	return PubKeyToAddress(common.Sha256([]byte(name))).String()
}
