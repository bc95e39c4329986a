// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"
	"sort"

	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
)

// StateDB 执行一个区块时使用的状态数据库
// 所有的修改都在内存中, 区块执行完成后由 KVList 取出, 和区块一起写入后端数据库
type StateDB struct {
	db      dbm.KV
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
}

// NewStateDB 新建, db 为已经提交的状态数据
func NewStateDB(db dbm.KV) *StateDB {
	return &StateDB{
		db:    db,
		cache: make(map[string][]byte),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = nil
}

// Rollback 丢弃事务中的修改
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 事务中的修改合并进区块缓存
func (s *StateDB) Commit() {
	for k, v := range s.txcache {
		s.cache[k] = v
	}
	s.resetTx()
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			if value == nil {
				return nil, types.ErrNotFound
			}
			return value, nil
		}
	}
	if value, ok := s.cache[skey]; ok {
		if value == nil {
			return nil, types.ErrNotFound
		}
		return value, nil
	}
	if s.db == nil {
		return nil, types.ErrNotFound
	}
	value, err := s.db.Get(key)
	if err != nil || value == nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

// Set 写入, value 为 nil 表示删除
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		s.txcache[skey] = value
	} else {
		s.cache[skey] = value
	}
	return nil
}

// GetSetKeys 当前事务中写过的 key
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// KVList 区块中所有的修改, 按 key 排序
func (s *StateDB) KVList() []*types.KeyValue {
	kvs := make([]*types.KeyValue, 0, len(s.cache))
	for k, v := range s.cache {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: v})
	}
	sort.Slice(kvs, func(i, j int) bool {
		return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0
	})
	return kvs
}
