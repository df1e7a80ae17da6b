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

package sql

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// Error taxonomy, per the engine's error-handling design: unresolved
// errors raised during analysis, type errors, evaluation errors and rule
// engine invariants. Every kind carries the offending plan/expression (or
// its tree-string) so callers can render a diagnostic.
var (
	// ErrRelationNotFound is returned when the catalog collaborator has no
	// relation registered under the given name.
	ErrRelationNotFound = errors.NewKind("relation not found: %s")

	// ErrAmbiguousReference is returned when an unresolved attribute name
	// matches output columns from more than one child.
	ErrAmbiguousReference = errors.NewKind("ambiguous reference %q, could refer to: %s")

	// ErrUnresolvedAttribute is returned when an attribute reference could
	// not be bound to any child output and is not a grouping rewrite
	// candidate either.
	ErrUnresolvedAttribute = errors.NewKind("could not resolve attribute %q")

	// ErrFunctionNotFound is returned by the function registry collaborator
	// when no function is registered under the given name.
	ErrFunctionNotFound = errors.NewKind("function not found: %s")

	// ErrNonGroupingReference is returned when an aggregate-expression
	// subexpression is neither an aggregate nor a grouping expression.
	ErrNonGroupingReference = errors.NewKind("expression %q is neither an aggregate function nor a grouping expression, grouping expressions: %s")

	// ErrIncompatibleTypes is returned when two operand types cannot be
	// widened to a common supertype.
	ErrIncompatibleTypes = errors.NewKind("incompatible types: %s and %s")

	// ErrCastFailed is returned when a Cast could not convert a value to
	// its target type.
	ErrCastFailed = errors.NewKind("cannot cast %v to %s")

	// ErrDivisionByZero is returned by integral Divide/Remainder when the
	// divisor is zero.
	ErrDivisionByZero = errors.NewKind("division by zero")

	// ErrIndexOutOfBounds is returned when a bound reference's field
	// ordinal falls outside the input row.
	ErrIndexOutOfBounds = errors.NewKind("index out of bounds: %d (len %d)")

	// ErrNullDereference is returned by non-null-aware user-defined
	// functions called with a null argument.
	ErrNullDereference = errors.NewKind("unexpected null argument to %s")

	// ErrUnsupportedOperation is returned by operations that are
	// structurally valid but not implemented for the given operand kind.
	ErrUnsupportedOperation = errors.NewKind("unsupported operation: %s")

	// ErrInvariantViolated is raised by the rule executor between batches
	// when a declared invariant (e.g. "plan is fully resolved") fails.
	ErrInvariantViolated = errors.NewKind("invariant violated after batch %q: %s")

	// ErrRuleFixpointExceeded is raised when a FixedPoint batch does not
	// converge within its configured maximum number of iterations.
	ErrRuleFixpointExceeded = errors.NewKind("rule batch %q did not reach a fixed point within %d iterations")

	// ErrTreeShapeMismatch is raised by WithChildren when the number of
	// supplied children does not match the node's arity.
	ErrTreeShapeMismatch = errors.NewKind("cannot replace children of %T: expected %d children, got %d")
)
