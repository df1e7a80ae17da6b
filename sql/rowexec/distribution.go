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

package rowexec

import (
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/plan"
)

// DistributionKind is one point of §4.7's output_partitioning /
// required_child_distribution lattice. AllTuples is satisfied only by an
// AllTuples or Ordered output; a Clustered output never satisfies it,
// whatever the consuming operator's grouping (see Satisfies).
type DistributionKind int

const (
	// Unspecified imposes no requirement; any child output satisfies it.
	Unspecified DistributionKind = iota
	// AllTuples requires every row gathered into a single partition,
	// e.g. a non-decomposable Aggregate or a global Limit.
	AllTuples
	// Clustered requires rows with equal Keys values co-located in the
	// same partition, e.g. a hash join's or partial aggregate's inputs.
	Clustered
	// Ordered requires a single, globally sorted partition.
	Ordered
)

// Distribution is one child's concrete distribution requirement or
// output description.
type Distribution struct {
	Kind       DistributionKind
	Keys       []sql.Expression
	SortOrders []plan.SortOrder
}

// UnspecifiedDistribution is the zero-requirement value most leaf
// operators and pass-through operators output.
var UnspecifiedDistribution = Distribution{Kind: Unspecified}

// AllTuplesDistribution is the "single gathered partition" requirement.
var AllTuplesDistribution = Distribution{Kind: AllTuples}

// ClusteredDistribution requires co-location by keys.
func ClusteredDistribution(keys ...sql.Expression) Distribution {
	return Distribution{Kind: Clustered, Keys: keys}
}

// OrderedDistribution requires a single partition ordered by orders.
func OrderedDistribution(orders ...plan.SortOrder) Distribution {
	return Distribution{Kind: Ordered, SortOrders: orders}
}

// Satisfies reports whether an operator whose own output distribution is
// out meets a child distribution requirement want, per §4.7's lattice:
// AllTuples is satisfied only by AllTuples or Ordered (both already
// single-partition); Clustered is satisfied by an equal-or-finer
// Clustered(keys) or by AllTuples/Ordered (single partition trivially
// co-locates everything); Ordered is satisfied only by an identical
// Ordered requirement, since a weaker distribution does not guarantee
// global order.
func (want Distribution) Satisfies(out Distribution) bool {
	switch want.Kind {
	case Unspecified:
		return true
	case AllTuples:
		return out.Kind == AllTuples || out.Kind == Ordered
	case Clustered:
		if out.Kind == AllTuples || out.Kind == Ordered {
			return true
		}
		return out.Kind == Clustered && sameKeys(want.Keys, out.Keys)
	case Ordered:
		return out.Kind == Ordered && sameSortOrders(want.SortOrders, out.SortOrders)
	default:
		return false
	}
}

func sameKeys(a, b []sql.Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sql.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameSortOrders(a, b []plan.SortOrder) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Direction != b[i].Direction || !sql.Equal(a[i].Expr, b[i].Expr) {
			return false
		}
	}
	return true
}
