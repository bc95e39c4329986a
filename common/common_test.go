// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "", ToHex(nil))
	assert.Equal(t, "0x94ab", ToHex([]byte{0x94, 0xab}))

	b, err := FromHex("0x94ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x94, 0xab}, b)

	b, err = FromHex("0X4ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0xab}, b)

	b, err = FromHex("")
	require.NoError(t, err)
	assert.Equal(t, 0, len(b))

	_, err = FromHex("0xzz")
	assert.Error(t, err)

	assert.True(t, HasHexPrefix("0x12"))
	assert.False(t, HasHexPrefix("12"))
}

func TestSha3(t *testing.T) {
	//keccak256("")
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", ToHex(Sha3(nil)))
	assert.Equal(t, 32, len(Sha256([]byte("wager"))))
	out := Sha2Sum([]byte("wager"))
	assert.Equal(t, Sha256(Sha256([]byte("wager"))), out[:])
	rim := Rimp160AfterSha256([]byte("wager"))
	assert.Equal(t, 20, len(rim))
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}
