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
	"reflect"

	"github.com/mitchellh/hashstructure"
)

// HashOf computes a stable structural hash of any value (a Node, an
// Expression or a plain cell value) with hashstructure. CountDistinct
// uses it to key its distinct-value set; the rule executor's fixpoint
// loop does not call it and compares plans with Equal alone.
func HashOf(n interface{}) (uint64, error) {
	return hashstructure.Hash(n, nil)
}

// Equal reports structural equality of two Nodes or Expressions: same
// kind, equal own parameters, and pairwise-equal ordered children (§3.1).
// Concrete node/expression types are plain value/pointer structs whose
// fields are exactly their own parameters and children, so reflect's deep
// equality already implements the spec's definition directly.
func Equal(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}
