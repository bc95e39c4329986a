// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"path"
	"strconv"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	log "github.com/inconshreveable/log15"
)

var blog = log.New("module", "db.gobadgerdb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

//GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

//NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	opts := badger.DefaultOptions(path.Join(dir, name+".db"))
	if cache <= 128 {
		opts.ValueLogLoadingMode = options.FileIO
		opts.TableLoadingMode = options.FileIO
	}
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		blog.Error("NewGoBadgerDB", "error", err)
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

//Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, ErrNotFoundInDb
		}
		blog.Error("Get", "error", err)
		return nil, err
	}
	return val, nil
}

//Set set
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		blog.Error("Set", "error", err)
	}
	return err
}

//SetSync badger 默认 SyncWrites, 与 Set 相同
func (db *GoBadgerDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

//Delete 删除
func (db *GoBadgerDB) Delete(key []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		blog.Error("Delete", "error", err)
	}
	return err
}

//DeleteSync 删除同步
func (db *GoBadgerDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

//DB db
func (db *GoBadgerDB) DB() *badger.DB {
	return db.db
}

//Close 关闭
func (db *GoBadgerDB) Close() {
	err := db.db.Close()
	if err != nil {
		blog.Error("Close", "error", err)
	}
}

//Stats ...
func (db *GoBadgerDB) Stats() map[string]string {
	lsm, vlog := db.db.Size()
	return map[string]string{
		"badger.lsm":  strconv.FormatInt(lsm, 10),
		"badger.vlog": strconv.FormatInt(vlog, 10),
	}
}

//Iterator 迭代器
func (db *GoBadgerDB) Iterator(prefix []byte, reverse bool) Iterator {
	txn := db.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	it := txn.NewIterator(opts)
	return &badgerIt{txn: txn, it: it, prefix: prefix, reverse: reverse}
}

type badgerIt struct {
	txn     *badger.Txn
	it      *badger.Iterator
	prefix  []byte
	reverse bool
	err     error
}

func (it *badgerIt) Rewind() bool {
	if !it.reverse {
		it.it.Seek(it.prefix)
		return it.Valid()
	}
	limit := prefixLimit(it.prefix)
	if limit == nil {
		it.it.Rewind()
		return it.Valid()
	}
	it.it.Seek(limit)
	if it.it.Valid() && bytes.Equal(it.it.Item().Key(), limit) {
		it.it.Next()
	}
	return it.Valid()
}

func (it *badgerIt) Seek(key []byte) bool {
	it.it.Seek(key)
	return it.Valid()
}

func (it *badgerIt) Next() bool {
	it.it.Next()
	return it.Valid()
}

func (it *badgerIt) Valid() bool {
	return it.it.ValidForPrefix(it.prefix)
}

func (it *badgerIt) Key() []byte {
	return it.it.Item().Key()
}

func (it *badgerIt) Value() []byte {
	value, err := it.it.Item().ValueCopy(nil)
	if err != nil {
		it.err = err
	}
	return value
}

func (it *badgerIt) ValueCopy() []byte {
	return it.Value()
}

func (it *badgerIt) Error() error {
	return it.err
}

func (it *badgerIt) Close() {
	it.it.Close()
	it.txn.Discard()
}

//GoBadgerDBBatch batch
type GoBadgerDBBatch struct {
	db    *GoBadgerDB
	batch *badger.Txn
	size  int
	err   error
}

//NewBatch new
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &GoBadgerDBBatch{db: db, batch: db.db.NewTransaction(true)}
}

//Set set
func (mBatch *GoBadgerDBBatch) Set(key, value []byte) {
	if mBatch.err != nil {
		return
	}
	mBatch.err = mBatch.batch.Set(key, value)
	mBatch.size += len(value)
}

//Delete 删除
func (mBatch *GoBadgerDBBatch) Delete(key []byte) {
	if mBatch.err != nil {
		return
	}
	mBatch.err = mBatch.batch.Delete(key)
	mBatch.size++
}

//Write 写入, 提交之后 batch 可以继续使用
func (mBatch *GoBadgerDBBatch) Write() error {
	defer mBatch.Reset()
	if mBatch.err != nil {
		blog.Error("Write", "error", mBatch.err)
		mBatch.batch.Discard()
		return mBatch.err
	}
	if err := mBatch.batch.Commit(); err != nil {
		blog.Error("Write", "error", err)
		return err
	}
	return nil
}

//ValueSize size
func (mBatch *GoBadgerDBBatch) ValueSize() int {
	return mBatch.size
}

//Reset 重置
func (mBatch *GoBadgerDBBatch) Reset() {
	mBatch.batch.Discard()
	mBatch.batch = mBatch.db.db.NewTransaction(true)
	mBatch.size = 0
	mBatch.err = nil
}
