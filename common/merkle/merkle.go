// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"crypto/sha256"
)

func pairHash(left, right []byte) []byte {
	h := sha256.New()
	h.Write(left)
	h.Write(right)
	first := h.Sum(nil)
	second := sha256.Sum256(first)
	return second[:]
}

// GetMerkleRoot 计算默克尔根, 奇数个节点时复制最后一个节点
// 空列表返回 nil
func GetMerkleRoot(leaves [][]byte) []byte {
	if len(leaves) == 0 {
		return nil
	}
	level := make([][]byte, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([][]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, pairHash(level[i], level[i+1]))
		}
		level = next
	}
	return level[0]
}
