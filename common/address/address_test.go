// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkeyToAddress(t *testing.T) {
	pubkey := "024a17b0c6eb3143839482faa7e917c9b90a8cfe5008dff748789b8cea1a3d08d5"
	b, err := hex.DecodeString(pubkey)
	require.NoError(t, err)
	addr := PubKeyToAddress(b)
	require.NoError(t, CheckAddress(addr.String()))
	assert.Equal(t, byte('1'), addr.String()[0])
}

func TestExecAddress(t *testing.T) {
	a1 := ExecAddress("wager")
	a2 := ExecAddress("wager")
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, ExecAddress("coins"))
	require.NoError(t, CheckAddress(a1))
	assert.Panics(t, func() { ExecPubKey(string(make([]byte, MaxExecNameLength+1))) })
}

func TestCheckAddress(t *testing.T) {
	addr := NameToAddress("user1")
	require.NoError(t, CheckAddress(addr))
	assert.NotEqual(t, addr, NameToAddress("user2"))

	assert.Equal(t, ErrDecodeBase58, CheckAddress(""))
	assert.Equal(t, ErrDecodeBase58, CheckAddress("0OIl"))
	assert.Equal(t, ErrAddressTooShort, CheckAddress("1111"))

	bad := []byte(addr)
	if bad[5] == 'a' {
		bad[5] = 'b'
	} else {
		bad[5] = 'a'
	}
	assert.Error(t, CheckAddress(string(bad)))
}

func TestNewAddrFromString(t *testing.T) {
	addr := PubKeyToAddress([]byte("pubkey"))
	a, err := NewAddrFromString(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr.Hash160, a.Hash160)
	assert.Equal(t, addr.String(), a.String())

	_, err = NewAddrFromString("1111")
	assert.Error(t, err)
}

func BenchmarkExecAddress(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ExecAddress("wager")
	}
}
