// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrInvalidStake      = errors.New("ErrInvalidStake")
	ErrInvalidChallenge  = errors.New("ErrInvalidChallenge")
	ErrWagerNotFound     = errors.New("ErrWagerNotFound")
	ErrInsufficientPot   = errors.New("ErrInsufficientPot")
	ErrNothingToWithdraw = errors.New("ErrNothingToWithdraw")
	ErrUnrevealable      = errors.New("ErrUnrevealable")
	ErrWagerConfig       = errors.New("ErrWagerConfig")
)
