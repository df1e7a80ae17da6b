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

package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

func TestLimit(t *testing.T) {
	require := require.New(t)

	schema := sql.Schema{{Name: "a", Type: types.Long}}
	table := NewResolvedTable("db", newFakeTable("t", schema))

	l := NewLimit(10, table)
	require.True(l.Resolved())
	require.Equal(schema, l.Schema())
	require.EqualValues(10, l.N)

	other := NewResolvedTable("db", newFakeTable("u", schema))
	nl, err := l.WithChildren(other)
	require.NoError(err)
	require.Same(other, nl.(*Limit).Child)

	_, err = l.WithChildren(table, table)
	require.Error(err)
}
