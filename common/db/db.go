// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 封装了 key/value 数据库的各种后端实现
package db

import (
	"errors"

	log "github.com/inconshreveable/log15"
	pkgerr "github.com/pkg/errors"
)

var dlog = log.New("module", "db")

//ErrNotFoundInDb 数据不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

//KV kv
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) (err error)
}

//KVDB 带列表查询的 kv, 执行器的 localdb 使用这个接口
type KVDB interface {
	KV
	List(prefix, key []byte, count, direction int32) ([][]byte, error)
	PrefixCount(prefix []byte) int64
}

//IteratorDB 迭代器接口, prefix 为 nil 表示遍历整个数据库
type IteratorDB interface {
	Iterator(prefix []byte, reverse bool) Iterator
}

//DB 数据库接口
type DB interface {
	KV
	IteratorDB
	SetSync([]byte, []byte) error
	Delete([]byte) error
	DeleteSync([]byte) error
	Close()
	NewBatch(sync bool) Batch
	Stats() map[string]string
}

//Batch 批量写入
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

//Iterator 迭代器. reverse 时 Next 向前移动, Seek 定位到不大于 key 的最后一个位置
type Iterator interface {
	Rewind() bool
	Seek(key []byte) bool
	Next() bool
	Valid() bool
	Key() []byte
	Value() []byte
	ValueCopy() []byte
	Error() error
	Close()
}

//const
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

//NewDB new db
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		dlog.Error("NewDB", "backend", backend, "err", "unknown backend")
		return nil, pkgerr.Errorf("db: unknown backend %q", backend)
	}
	db, err := creator(name, dir, cache)
	if err != nil {
		return nil, pkgerr.Wrapf(err, "db: open %s %s", backend, name)
	}
	return db, nil
}

//CloneByte 拷贝
func CloneByte(v []byte) []byte {
	if v == nil {
		return nil
	}
	value := make([]byte, len(v))
	copy(value, v)
	return value
}

// prefixLimit 返回比所有以 prefix 开头的 key 都大的最小 key, 全是 0xff 时返回 nil
func prefixLimit(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		c := prefix[i]
		if c < 0xff {
			limit := make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			return limit
		}
	}
	return nil
}
