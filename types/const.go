// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Version 节点版本
const Version = "1.0.0"

var (
	// GenesisAddr 创世地址, 配置文件没有给出时使用
	GenesisAddr = "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
	// GenesisBlockTime 创世区块时间
	GenesisBlockTime int64 = 1514533394
	// EmptyValue 这字符串表示数据库中的空值
	EmptyValue = []byte("emptyBVBiCj5jvE15pEiwro8TQRGnJSNsJF")
)

// coin conversation
const (
	Coin            int64 = 1e8
	MaxCoin         int64 = 1e17
	MaxTxSize             = 100000 //100K
	MaxTxsPerBlock        = 100000
	TokenPrecision  int64 = 1e8
	MaxTokenBalance int64 = 900 * 1e8 * TokenPrecision //900亿

	// DefaultGenesisAmount 创世地址的初始金额
	DefaultGenesisAmount = 1e8 * Coin
	// DefaultHashRetention 最近 256 个区块的哈希可以被执行器读取
	DefaultHashRetention int64 = 256
)

// 执行器名称
const (
	CoinsX = "coins"
	NoneX  = "none"
)

// exec result
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// log type
const (
	TyLogErr = 1
	TyLogFee = 2
	//coins
	TyLogTransfer        = 3
	TyLogGenesis         = 4
	TyLogDeposit         = 5
	TyLogExecTransfer    = 6
	TyLogExecWithdraw    = 7
	TyLogExecDeposit     = 8
	TyLogExecFrozen      = 9
	TyLogExecActive      = 10
	TyLogGenesisTransfer = 11
	TyLogGenesisDeposit  = 12
)

// list direction
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// CheckAmount 检查金额是否合法
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}
