// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, db DB) {
	for _, k := range []string{"aaaaaa/1", "my_key/1", "my_key/2", "my_key/3", "my_key/4", "my", "my_", "zzzzzz/1"} {
		require.NoError(t, db.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, db.Set([]byte{0xff}, []byte("0xff")))
}

func bs(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

// 迭代测试
func testDBIterator(t *testing.T, db DB) {
	seed(t, db)

	v, err := db.Get([]byte("aaaaaa/1"))
	require.NoError(t, err)
	require.Equal(t, "aaaaaa/1", string(v))
	_, err = db.Get([]byte("nokey"))
	require.Equal(t, ErrNotFoundInDb, err)

	it := NewListHelper(db)
	list := it.PrefixScan(nil)
	require.Equal(t, bs("aaaaaa/1", "my", "my_", "my_key/1", "my_key/2", "my_key/3", "my_key/4", "zzzzzz/1", "0xff"), list)

	list, err = it.List([]byte("my"), nil, 2, ListASC)
	require.NoError(t, err)
	require.Equal(t, bs("my", "my_"), list)

	list, err = it.List([]byte("my"), nil, 100, ListDESC)
	require.NoError(t, err)
	require.Equal(t, bs("my_key/4", "my_key/3", "my_key/2", "my_key/1", "my_", "my"), list)

	list, err = it.List([]byte("my"), []byte("my_key/3"), 100, ListASC)
	require.NoError(t, err)
	require.Equal(t, bs("my_key/4"), list)

	list, err = it.List([]byte("my"), []byte("my_key/3"), 2, ListDESC)
	require.NoError(t, err)
	require.Equal(t, bs("my_key/2", "my_key/1"), list)

	//key 不存在时从比它小的位置开始
	list, err = it.List([]byte("my_key/"), []byte("my_key/25"), 100, ListDESC)
	require.NoError(t, err)
	require.Equal(t, bs("my_key/2", "my_key/1"), list)

	_, err = it.List([]byte("my_key/"), []byte("my_key/4"), 100, ListASC)
	require.Equal(t, ErrNotFoundInDb, err)

	assert.Equal(t, int64(6), it.PrefixCount([]byte("my")))
	assert.Equal(t, int64(0), it.PrefixCount([]byte("nothing")))

	//全 0xff 的前缀
	list, err = it.List([]byte{0xff}, nil, 10, ListDESC)
	require.NoError(t, err)
	require.Equal(t, bs("0xff"), list)
}

func testDBBatch(t *testing.T, db DB) {
	require.NoError(t, db.Set([]byte("k0"), []byte("v0")))
	batch := db.NewBatch(true)
	batch.Set([]byte("k1"), []byte("v1"))
	batch.Set([]byte("k2"), []byte("v2"))
	batch.Delete([]byte("k0"))
	assert.True(t, batch.ValueSize() > 0)

	_, err := db.Get([]byte("k1"))
	require.Equal(t, ErrNotFoundInDb, err)

	require.NoError(t, batch.Write())
	v, err := db.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)
	_, err = db.Get([]byte("k0"))
	require.Equal(t, ErrNotFoundInDb, err)

	batch.Reset()
	assert.Equal(t, 0, batch.ValueSize())
	batch.Set([]byte("k3"), []byte("v3"))
	require.NoError(t, batch.Write())
	v, err = db.Get([]byte("k3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), v)

	require.NoError(t, db.Delete([]byte("k3")))
	_, err = db.Get([]byte("k3"))
	require.Equal(t, ErrNotFoundInDb, err)
	assert.NotNil(t, db.Stats())
}

func TestGoMemDB(t *testing.T) {
	db, err := NewDB("test", MemDBBackendStr, "", 16)
	require.NoError(t, err)
	defer db.Close()
	testDBIterator(t, db)

	db2, err := NewDB("test", MemDBBackendStr, "", 16)
	require.NoError(t, err)
	testDBBatch(t, db2)
}

func TestGoMemDBCopy(t *testing.T) {
	db, err := NewGoMemDB("test", "", 0)
	require.NoError(t, err)
	value := []byte("value")
	require.NoError(t, db.Set([]byte("key"), value))
	value[0] = 'x'
	got, err := db.Get([]byte("key"))
	require.NoError(t, err)
	got[1] = 'y'
	got2, _ := db.Get([]byte("key"))
	assert.Equal(t, "value", string(got2))
}

func TestGoLevelDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "goleveldb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	testDBIterator(t, db)
	db.Close()

	db, err = NewDB("test_batch", LevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	defer db.Close()
	testDBBatch(t, db)
}

func TestGoBadgerDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "gobadgerdb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", GoBadgerDBBackendStr, dir, 16)
	require.NoError(t, err)
	testDBIterator(t, db)
	db.Close()

	db, err = NewDB("test_batch", GoBadgerDBBackendStr, dir, 16)
	require.NoError(t, err)
	defer db.Close()
	testDBBatch(t, db)
}

func TestNewDBUnknown(t *testing.T) {
	_, err := NewDB("test", "nodb", "", 16)
	assert.Error(t, err)
}

func TestPrefixLimit(t *testing.T) {
	assert.Equal(t, []byte("mz"), prefixLimit([]byte("my")))
	assert.Equal(t, []byte{0x02}, prefixLimit([]byte{0x01, 0xff}))
	assert.Nil(t, prefixLimit([]byte{0xff, 0xff}))
	assert.Nil(t, prefixLimit(nil))
}
