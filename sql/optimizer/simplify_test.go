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

func filterOver(predicate sql.Expression) *plan.Filter {
	table := plan.NewResolvedTable("db", fakeTable{name: "t", schema: sql.Schema{
		{Name: "a", Type: types.Long, Source: "t"},
	}})
	return plan.NewFilter(predicate, table)
}

func TestSimplifyConstantFolding(t *testing.T) {
	require := require.New(t)

	f := filterOver(expression.NewPlus(
		expression.NewLiteral(int64(2), types.Long),
		expression.NewLiteral(int64(3), types.Long),
	))

	result, err := simplify(sql.NewEmptyContext(), f)
	require.NoError(err)

	lit := result.(*plan.Filter).Predicate.(*expression.Literal)
	require.Equal(int64(5), lit.Value())
}

func TestSimplifyBooleanAndWithTrueLiteral(t *testing.T) {
	require := require.New(t)

	ref := expression.NewBoundReference(0, 0, "a", types.Long, false)
	cmp := expression.NewLessThan(ref, expression.NewLiteral(int64(10), types.Long))
	f := filterOver(expression.NewAnd(expression.NewLiteral(true, types.Boolean), cmp))

	result, err := simplify(sql.NewEmptyContext(), f)
	require.NoError(err)
	require.Same(cmp, result.(*plan.Filter).Predicate)
}

func TestSimplifyBooleanAndWithFalseLiteral(t *testing.T) {
	require := require.New(t)

	ref := expression.NewBoundReference(0, 0, "a", types.Long, false)
	cmp := expression.NewLessThan(ref, expression.NewLiteral(int64(10), types.Long))
	f := filterOver(expression.NewAnd(expression.NewLiteral(false, types.Boolean), cmp))

	result, err := simplify(sql.NewEmptyContext(), f)
	require.NoError(err)

	lit := result.(*plan.Filter).Predicate.(*expression.Literal)
	require.Equal(false, lit.Value())
}

func TestSimplifyBooleanOrWithTrueLiteral(t *testing.T) {
	require := require.New(t)

	ref := expression.NewBoundReference(0, 0, "a", types.Long, false)
	cmp := expression.NewLessThan(ref, expression.NewLiteral(int64(10), types.Long))
	f := filterOver(expression.NewOr(cmp, expression.NewLiteral(true, types.Boolean)))

	result, err := simplify(sql.NewEmptyContext(), f)
	require.NoError(err)

	lit := result.(*plan.Filter).Predicate.(*expression.Literal)
	require.Equal(true, lit.Value())
}

func TestSimplifyCastElimination(t *testing.T) {
	require := require.New(t)

	ref := expression.NewBoundReference(0, 0, "a", types.Long, false)
	f := filterOver(expression.NewLessThan(expression.NewCast(ref, types.Long), expression.NewLiteral(int64(10), types.Long)))

	result, err := simplify(sql.NewEmptyContext(), f)
	require.NoError(err)

	cmp := result.(*plan.Filter).Predicate.(expression.BinaryOperand)
	left, _ := cmp.Operands()
	require.Same(sql.Expression(ref), left)
}
