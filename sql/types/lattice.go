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

package types

import "github.com/relforge/relforge/sql"

// promotionRank gives each numeric Kind its position in
// Byte ≺ Short ≺ Integer ≺ Long ≺ Float ≺ Double ≺ Decimal (§3.3).
var promotionRank = map[Kind]int{
	KindByte:    0,
	KindShort:   1,
	KindInteger: 2,
	KindLong:    3,
	KindFloat:   4,
	KindDouble:  5,
	KindDecimal: 6,
}

// IsNumeric reports whether t is one of the lattice's numeric members.
func IsNumeric(t sql.Type) bool {
	k, ok := KindOf(t)
	if !ok {
		return false
	}
	_, numeric := promotionRank[k]
	return numeric
}

// IsComparable reports whether two values of type t can be ordered:
// every primitive type is comparable; composite types are not (§4.2).
func IsComparable(t sql.Type) bool {
	_, ok := KindOf(t)
	return ok
}

// Widen returns the least upper bound of two types per the promotion
// lattice (§4.2), or ErrIncompatibleTypes if none exists. Two equal types
// widen to themselves. Boolean only widens with Boolean or Null; String
// and Binary only widen with themselves or Null.
func Widen(t1, t2 sql.Type) (sql.Type, error) {
	if t1.Equals(t2) {
		return t1, nil
	}
	k1, ok1 := KindOf(t1)
	k2, ok2 := KindOf(t2)
	if !ok1 || !ok2 {
		return nil, sql.ErrIncompatibleTypes.New(t1, t2)
	}
	if k1 == KindNull {
		return t2, nil
	}
	if k2 == KindNull {
		return t1, nil
	}
	r1, n1 := promotionRank[k1]
	r2, n2 := promotionRank[k2]
	if !n1 || !n2 {
		// Neither numeric nor identical nor null: no widening exists
		// (e.g. Boolean vs String, String vs Binary).
		return nil, sql.ErrIncompatibleTypes.New(t1, t2)
	}
	if r1 >= r2 {
		return t1, nil
	}
	return t2, nil
}

// NullableJoin is the nullability rule for joins (§4.2): an outer side's
// columns become nullable regardless of their declared nullability;
// otherwise each side keeps its own declared nullability.
func NullableJoin(leftNullable, rightNullable, leftIsOuter, rightIsOuter bool) (left, right bool) {
	left = leftNullable || leftIsOuter
	right = rightNullable || rightIsOuter
	return
}

// DefaultValue returns default_value(t) (§4.2): each type's Zero value.
func DefaultValue(t sql.Type) interface{} {
	return t.Zero()
}
