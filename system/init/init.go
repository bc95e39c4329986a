// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package init 加载系统合约
package init

import (
	_ "github.com/33cn/wager/system/dapp/coins" //register coins plugin
)
