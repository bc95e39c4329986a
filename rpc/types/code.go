// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"sync"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	logNameLock sync.RWMutex
	logNames    = map[int32]string{
		types.TyLogErr:             "LogErr",
		types.TyLogFee:             "LogFee",
		types.TyLogTransfer:        "LogTransfer",
		types.TyLogGenesis:         "LogGenesis",
		types.TyLogDeposit:         "LogDeposit",
		types.TyLogExecTransfer:    "LogExecTransfer",
		types.TyLogExecWithdraw:    "LogExecWithdraw",
		types.TyLogExecDeposit:     "LogExecDeposit",
		types.TyLogExecFrozen:      "LogExecFrozen",
		types.TyLogExecActive:      "LogExecActive",
		types.TyLogGenesisTransfer: "LogGenesisTransfer",
		types.TyLogGenesisDeposit:  "LogGenesisDeposit",
	}
)

// RegisterLogName 插件注册自己的日志类型名称, 重复注册会 panic
func RegisterLogName(ty int32, name string) {
	logNameLock.Lock()
	defer logNameLock.Unlock()
	if old, ok := logNames[ty]; ok && old != name {
		panic("RegisterLogName: dup log type " + name + " " + old)
	}
	logNames[ty] = name
}

// LogName 日志类型名称
func LogName(ty int32) string {
	logNameLock.RLock()
	defer logNameLock.RUnlock()
	if name, ok := logNames[ty]; ok {
		return name
	}
	return "unkownType"
}

func execResultName(ty int32) string {
	switch ty {
	case types.ExecErr:
		return "ExecErr"
	case types.ExecPack:
		return "ExecPack"
	case types.ExecOk:
		return "ExecOk"
	}
	return "Unknown"
}

// DecodeLog decode log
func DecodeLog(rlog *types.ReceiptData) *ReceiptDataResult {
	if rlog == nil {
		return nil
	}
	rd := &ReceiptDataResult{Ty: rlog.Ty, TyName: execResultName(rlog.Ty)}
	for _, l := range rlog.Logs {
		var logIns json.RawMessage
		if json.Valid(l.Log) {
			logIns = l.Log
		}
		rd.Logs = append(rd.Logs, &ReceiptLogResult{Ty: l.Ty, TyName: LogName(l.Ty), Log: logIns})
	}
	return rd
}

// DecodeTx docode transaction
func DecodeTx(tx *types.Transaction) (*Transaction, error) {
	if tx == nil {
		return nil, types.ErrEmptyTx
	}
	result := &Transaction{
		Execer:  tx.Execer,
		Payload: tx.Payload,
		From:    tx.From,
		To:      tx.To,
		Amount:  tx.Amount,
		Nonce:   tx.Nonce,
		Hash:    common.ToHex(tx.Hash()),
	}
	if result.Amount != 0 {
		result.AmountFmt = FormatAmount(result.Amount)
	}
	return result, nil
}

// DecodeHeader 区块头转换为 json 结构
func DecodeHeader(header *types.Header) *Header {
	return &Header{
		Height:     header.Height,
		BlockTime:  header.BlockTime,
		TxCount:    header.TxCount,
		Hash:       common.ToHex(header.Hash),
		ParentHash: common.ToHex(header.ParentHash),
		TxHash:     common.ToHex(header.TxHash),
	}
}

// DecodeBlock 区块以及收据转换为 json 结构
func DecodeBlock(detail *types.BlockDetail) (*BlockDetail, error) {
	if detail == nil || detail.Block == nil {
		return nil, types.ErrBlockNotFound
	}
	result := &BlockDetail{Header: DecodeHeader(detail.Block.GetHeader())}
	for _, tx := range detail.Block.Txs {
		tran, err := DecodeTx(tx)
		if err != nil {
			return nil, err
		}
		result.Txs = append(result.Txs, tran)
	}
	for _, r := range detail.Receipts {
		result.Receipts = append(result.Receipts, DecodeLog(r))
	}
	return result, nil
}

// FormatAmount 以币为单位显示金额, 保留4位小数
func FormatAmount(amount int64) string {
	return decimal.New(amount, 0).Div(decimal.New(types.Coin, 0)).StringFixed(4)
}

// ParseAmount 把以币为单位的金额转换为最小单位, 最多8位小数
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrap(types.ErrAmount, err.Error())
	}
	v := d.Mul(decimal.New(types.Coin, 0))
	if !v.Equal(v.Truncate(0)) {
		return 0, errors.Wrap(types.ErrAmount, "too many decimal places")
	}
	amount := v.IntPart()
	if amount < 0 || amount >= types.MaxCoin {
		return 0, types.ErrAmount
	}
	return amount, nil
}
