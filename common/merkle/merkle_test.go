// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func leaf(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func TestGetMerkleRoot(t *testing.T) {
	assert.Nil(t, GetMerkleRoot(nil))

	one := leaf("a")
	assert.Equal(t, one, GetMerkleRoot([][]byte{one}))

	two := GetMerkleRoot([][]byte{leaf("a"), leaf("b")})
	assert.Equal(t, pairHash(leaf("a"), leaf("b")), two)

	//奇数个节点复制最后一个
	three := GetMerkleRoot([][]byte{leaf("a"), leaf("b"), leaf("c")})
	expect := pairHash(pairHash(leaf("a"), leaf("b")), pairHash(leaf("c"), leaf("c")))
	assert.Equal(t, expect, three)
	assert.NotEqual(t, two, three)
}

func TestGetMerkleRootKeepInput(t *testing.T) {
	leaves := [][]byte{leaf("a"), leaf("b"), leaf("c")}
	GetMerkleRoot(leaves)
	assert.Equal(t, 3, len(leaves))
	assert.Equal(t, leaf("c"), leaves[2])
}
