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

package analyzer

import (
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/transform"
	"github.com/relforge/relforge/sql/types"
)

// typeCoercion is §4.5 step 6: every binary operand pair (arithmetic,
// comparison, the boolean connectives) whose two operand types disagree is
// widened to their least upper bound by grafting a Cast onto the narrower
// side, or the batch fails with ErrIncompatibleTypes if no widening
// exists. expression.BinaryOperand finds the pair regardless of the
// node's own (often unexported) concrete type; rebuilding goes through the
// node's own WithChildren so its kind and other parameters survive
// unchanged. Runs FixedPoint because widening one operand of an outer node
// can change the type an enclosing node sees on its next pass.
func typeCoercion(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	return transform.NodeExprsWithNode(n, func(node sql.Node, e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		binary, ok := e.(expression.BinaryOperand)
		if !ok || !e.Resolved() {
			return e, transform.SameTree, nil
		}

		left, right := binary.Operands()
		lt, rt := left.Type(), right.Type()
		if lt.Equals(rt) {
			return e, transform.SameTree, nil
		}

		widened, err := types.Widen(lt, rt)
		if err != nil {
			return nil, transform.SameTree, err
		}

		newLeft, newRight := left, right
		if !lt.Equals(widened) {
			newLeft = expression.NewCast(left, widened)
		}
		if !rt.Equals(widened) {
			newRight = expression.NewCast(right, widened)
		}

		rebuilt, err := e.WithChildren(newLeft, newRight)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
}
