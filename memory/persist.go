// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memory

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/relforge/relforge/sql"
)

func init() {
	for _, v := range []interface{}{
		false, int8(0), int16(0), int32(0), int64(0),
		float32(0), float64(0), "", []byte(nil), time.Time{},
	} {
		gob.Register(v)
	}
}

// Persist snapshots every table in db to a single boltdb file at path, one
// bucket per table, one gob-encoded row per key. The catalog's Catalog
// type stays storage-agnostic (§6.2); this is a memory-package-local
// capability exercised directly against a *Database.
func Persist(path string, db *Database) error {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return err
	}
	defer bdb.Close()

	return bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range db.TableNames() {
			t, _ := db.table(name)
			if err := tx.DeleteBucket([]byte(name)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			bucket, err := tx.CreateBucket([]byte(name))
			if err != nil {
				return err
			}
			for i, row := range t.AllRows() {
				var buf bytes.Buffer
				if err := gob.NewEncoder(&buf).Encode(row); err != nil {
					return err
				}
				if err := bucket.Put(rowKey(i), buf.Bytes()); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Load repopulates every already-registered table in db from the boltdb
// snapshot at path. A bucket whose name doesn't match a table already
// created in db is skipped: Load never creates tables on its own, it only
// fills in the rows of ones the caller has already declared with
// Database.CreateTable (so the persisted schema and the in-memory schema
// can never silently diverge).
func Load(path string, db *Database) error {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return err
	}
	defer bdb.Close()

	ctx := sql.NewEmptyContext()
	return bdb.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, bucket *bolt.Bucket) error {
			t, ok := db.table(string(name))
			if !ok {
				return nil
			}
			return bucket.ForEach(func(k, v []byte) error {
				var row sql.Row
				if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&row); err != nil {
					return err
				}
				return t.Insert(ctx, row)
			})
		})
	})
}

func rowKey(i int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(i))
	return k
}
