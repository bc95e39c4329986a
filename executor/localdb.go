// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
)

//LocalDB 本地数据库，不加入区块链的状态。
//数据的get set 主要经过 cache, 区块执行完成后和区块一起落盘
//List 和 PrefixCount 只能查询到已经落盘的数据
type LocalDB struct {
	*StateDB
	list *dbm.ListHelper
}

//NewLocalDB 创建一个新的LocalDB
func NewLocalDB(db dbm.DB) *LocalDB {
	return &LocalDB{
		StateDB: NewStateDB(db),
		list:    dbm.NewListHelper(db),
	}
}

// List 从数据库中查询数据列表
func (l *LocalDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	values, err := l.list.List(prefix, key, count, direction)
	if err != nil {
		return nil, types.ErrNotFound
	}
	return values, nil
}

// PrefixCount 从数据库中查询指定前缀的key的数量
func (l *LocalDB) PrefixCount(prefix []byte) int64 {
	return l.list.PrefixCount(prefix)
}
