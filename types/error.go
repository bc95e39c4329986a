// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

// 系统级别的错误
var (
	ErrNotFound                = errors.New("ErrNotFound")
	ErrAmount                  = errors.New("ErrAmount")
	ErrNoBalance               = errors.New("ErrNoBalance")
	ErrSendSameToRecv          = errors.New("ErrSendSameToRecv")
	ErrRecvRefused             = errors.New("ErrRecvRefused")
	ErrExecNameNotAllow        = errors.New("ErrExecNameNotAllow")
	ErrSymbolNameNotAllow      = errors.New("ErrSymbolNameNotAllow")
	ErrActionNotSupport        = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport         = errors.New("ErrQueryNotSupport")
	ErrUnknowDriver            = errors.New("ErrUnknowDriver")
	ErrInvalidParam            = errors.New("ErrInvalidParam")
	ErrInvalidAddress          = errors.New("ErrInvalidAddress")
	ErrDecode                  = errors.New("ErrDecode")
	ErrEmptyTx                 = errors.New("ErrEmptyTx")
	ErrTxMsgSizeTooBig         = errors.New("ErrTxMsgSizeTooBig")
	ErrBlockNotFound           = errors.New("ErrBlockNotFound")
	ErrBlockHashExpired        = errors.New("ErrBlockHashExpired")
	ErrBlockHeight             = errors.New("ErrBlockHeight")
	ErrParentHash              = errors.New("ErrParentHash")
	ErrToAddrNotSameToExecAddr = errors.New("ErrToAddrNotSameToExecAddr")
	ErrReRunGenesis            = errors.New("ErrReRunGenesis")
	ErrNotStarted              = errors.New("ErrNotStarted")
	ErrRateLimited             = errors.New("ErrRateLimited")
	ErrForbidden               = errors.New("ErrForbidden")
	ErrNotAllowKey             = errors.New("ErrNotAllowKey")
	ErrNotAllowMemSetKey       = errors.New("ErrNotAllowMemSetKey")
	ErrNotPayable              = errors.New("ErrNotPayable")
)
