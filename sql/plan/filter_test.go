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
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/types"
)

func TestFilter(t *testing.T) {
	require := require.New(t)

	schema := sql.Schema{{Name: "a", Type: types.Long}}
	table := NewResolvedTable("db", newFakeTable("t", schema))
	pred := expression.NewEquals(
		expression.NewBoundReference(0, 0, "a", types.Long, false),
		expression.NewLiteral(int64(1), types.Long),
	)

	f := NewFilter(pred, table)
	require.True(f.Resolved())
	require.Equal(schema, f.Schema())
	require.Equal([]sql.Expression{pred}, f.Expressions())

	lit := expression.NewLiteral(true, types.Boolean)
	nf, err := f.WithExpressions(lit)
	require.NoError(err)
	require.Same(lit, nf.(*Filter).Predicate)

	_, err = f.WithExpressions(lit, lit)
	require.Error(err)

	_, err = f.WithChildren(table, table)
	require.Error(err)
}
