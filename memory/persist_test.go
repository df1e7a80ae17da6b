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

package memory_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/memory"
	"github.com/relforge/relforge/sql"
)

func TestPersistAndLoadRoundTrip(t *testing.T) {
	ctx := sql.NewEmptyContext()
	path := filepath.Join(t.TempDir(), "snapshot.db")

	db := memory.NewDatabase("test")
	require.NoError(t, db.CreateTable("widgets", schemaAB()))
	tbl, ok, err := db.GetTableInsensitive(ctx, "widgets")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, tbl.(*memory.Table).Insert(ctx, sql.NewRow(int64(1), "x")))
	require.NoError(t, tbl.(*memory.Table).Insert(ctx, sql.NewRow(int64(2), "y")))

	require.NoError(t, memory.Persist(path, db))

	restored := memory.NewDatabase("test")
	require.NoError(t, restored.CreateTable("widgets", schemaAB()))
	require.NoError(t, memory.Load(path, restored))

	rtbl, ok, err := restored.GetTableInsensitive(ctx, "widgets")
	require.NoError(t, err)
	require.True(t, ok)
	rows := drain(t, ctx, rtbl.(*memory.Table))
	require.ElementsMatch(t, []sql.Row{sql.NewRow(int64(1), "x"), sql.NewRow(int64(2), "y")}, rows)
}

func TestLoadSkipsUnknownTables(t *testing.T) {
	ctx := sql.NewEmptyContext()
	path := filepath.Join(t.TempDir(), "snapshot.db")

	db := memory.NewDatabase("test")
	require.NoError(t, db.CreateTable("widgets", schemaAB()))
	tbl, _, _ := db.GetTableInsensitive(ctx, "widgets")
	require.NoError(t, tbl.(*memory.Table).Insert(ctx, sql.NewRow(int64(1), "x")))
	require.NoError(t, memory.Persist(path, db))

	restored := memory.NewDatabase("test")
	require.NoError(t, memory.Load(path, restored))
	require.Empty(t, restored.Tables())
}
