// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/hex"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/types"
)

// BettingResult 投注结果
type BettingResult int32

// 投注结果, Refund 表示区块哈希已经无法读取, 退回本金
const (
	Fail BettingResult = iota
	Win
	Draw
	Refund
)

func (r BettingResult) String() string {
	switch r {
	case Fail:
		return "Fail"
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	case Refund:
		return "Refund"
	}
	return "Unknown"
}

// IsMatch 比较挑战字节和区块哈希的第一个字节
// 高4位和高4位比较, 低4位和低4位比较, 两个都相同为 Win, 一个相同为 Draw, 否则为 Fail
func IsMatch(challenge byte, answer []byte) BettingResult {
	if len(answer) == 0 {
		return Fail
	}
	reveal := answer[0]
	matched := 0
	if challenge>>4 == reveal>>4 {
		matched++
	}
	if challenge&0x0f == reveal&0x0f {
		matched++
	}
	switch matched {
	case 2:
		return Win
	case 1:
		return Draw
	}
	return Fail
}

// IsMatchHex 同 IsMatch, 参数为 0x 开头的 hex 字符串
func IsMatchHex(challenge, hash string) (BettingResult, error) {
	c, err := ParseChallenge(challenge)
	if err != nil {
		return Fail, err
	}
	answer, err := common.FromHex(hash)
	if err != nil || len(answer) == 0 {
		return Fail, types.ErrInvalidParam
	}
	return IsMatch(c, answer), nil
}

// ParseChallenge 解析一个字节的挑战, 例如 0xab
func ParseChallenge(s string) (byte, error) {
	if common.HasHexPrefix(s) {
		s = s[2:]
	}
	if len(s) != 2 {
		return 0, ErrInvalidChallenge
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, ErrInvalidChallenge
	}
	return b[0], nil
}

// FormatChallenge 格式化为 0x 开头的两位 hex
func FormatChallenge(b byte) string {
	return common.ToHex([]byte{b})
}
