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

package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/types"
)

func TestEliminateSubqueries(t *testing.T) {
	require := require.New(t)

	table := plan.NewResolvedTable("db", fakeTable{name: "t", schema: sql.Schema{
		{Name: "a", Type: types.Long, Source: "t"},
	}})
	sub := plan.NewSubquery("s", table)

	result, err := eliminateSubqueries(sql.NewEmptyContext(), sub)
	require.NoError(err)
	require.Same(sql.Node(table), result)
}

func TestEliminateSubqueriesNested(t *testing.T) {
	require := require.New(t)

	table := plan.NewResolvedTable("db", fakeTable{name: "t", schema: sql.Schema{
		{Name: "a", Type: types.Long, Source: "t"},
	}})
	n := plan.NewFilter(expression.NewLiteral(true, types.Boolean), plan.NewSubquery("s", table))

	result, err := eliminateSubqueries(sql.NewEmptyContext(), n)
	require.NoError(err)

	f := result.(*plan.Filter)
	require.Same(sql.Node(table), f.Child)
}
