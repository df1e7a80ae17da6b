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

// Package rowexec implements the physical operators the planner (C8)
// builds plans out of, and the evaluator's row-at-a-time execution (C9)
// over them. Every type here implements sql.Node like a logical operator
// does, plus Execute (producing the operator's RowIter) and the
// distribution contract the planner uses to decide where an Exchange is
// needed (§4.7).
package rowexec

import (
	"fmt"

	"github.com/relforge/relforge/sql"
)

// Physical is the capability every physical operator adds on top of
// sql.Node: it can be executed, and it declares what it requires from
// its children's output partitioning and what it produces itself.
type Physical interface {
	sql.Node
	// Execute runs the operator, producing its output RowIter. Children
	// are executed on demand as the returned iterator is drained.
	Execute(ctx *sql.Context) (sql.RowIter, error)
	// RequiredChildDistribution returns one Distribution per child,
	// the requirement the planner satisfies by inserting an Exchange
	// when a child's OutputPartitioning does not meet it (§4.7).
	RequiredChildDistribution() []Distribution
	// OutputPartitioning describes this operator's own output
	// distribution, consulted when it is itself someone's child.
	OutputPartitioning() Distribution
}

// unaryPhysical factors the single-child plumbing every unary physical
// operator (Filter, Project, Sort, Limit, Generate, Exchange, ...) shares,
// mirroring plan.UnaryNode.
type unaryPhysical struct {
	Child sql.Node
}

func (n unaryPhysical) Resolved() bool       { return n.Child.Resolved() }
func (n unaryPhysical) Children() []sql.Node { return []sql.Node{n.Child} }

// binaryPhysical is unaryPhysical's two-child counterpart, used by the
// join operators.
type binaryPhysical struct {
	Left, Right sql.Node
}

func (n binaryPhysical) Resolved() bool {
	return n.Left.Resolved() && n.Right.Resolved()
}

func (n binaryPhysical) Children() []sql.Node { return []sql.Node{n.Left, n.Right} }

func oneChild(self sql.Node, children []sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(self, 1, len(children))
	}
	return children[0], nil
}

func twoChildren(self sql.Node, children []sql.Node) (left, right sql.Node, err error) {
	if len(children) != 2 {
		return nil, nil, sql.ErrTreeShapeMismatch.New(self, 2, len(children))
	}
	return children[0], children[1], nil
}

// executeChild runs child, which must itself be a Physical operator --
// true of every node in a tree the planner produced, since planning
// replaces every logical node with one.
func executeChild(ctx *sql.Context, child sql.Node) (sql.RowIter, error) {
	phys, ok := child.(Physical)
	if !ok {
		return nil, sql.ErrUnsupportedOperation.New(fmt.Sprintf("%T is not a physical operator", child))
	}
	return phys.Execute(ctx)
}

// childPartitioning reads a child's declared output distribution,
// defaulting to Unspecified for a non-Physical child (never reached once
// planning has replaced the whole tree, but harmless for a standalone
// unit test that executes a bare physical node over a plain leaf).
func childPartitioning(child sql.Node) Distribution {
	phys, ok := child.(Physical)
	if !ok {
		return UnspecifiedDistribution
	}
	return phys.OutputPartitioning()
}

func treeString(name string, children ...sql.Node) string {
	p := sql.NewTreePrinter()
	p.WriteNode(name)
	lines := make([]string, len(children))
	for i, c := range children {
		lines[i] = c.String()
	}
	p.WriteChildren(lines...)
	return p.String()
}

// PlanLater is the placeholder the planner's strategies wrap an
// as-yet-unplanned logical child in, exactly as Catalyst's own
// `PlanLater` node does: a strategy only commits to the physical
// operator at its own node, deferring its children to a later planning
// step so strategies stay local and composable (§4.7).
type PlanLater struct {
	Logical sql.Node
}

var _ sql.Node = (*PlanLater)(nil)

func NewPlanLater(logical sql.Node) *PlanLater { return &PlanLater{logical} }

func (p *PlanLater) Resolved() bool       { return p.Logical.Resolved() }
func (p *PlanLater) Schema() sql.Schema   { return p.Logical.Schema() }
func (p *PlanLater) Children() []sql.Node { return nil }

func (p *PlanLater) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(p, 0, len(children))
	}
	return p, nil
}

func (p *PlanLater) String() string {
	return fmt.Sprintf("PlanLater(%s)", p.Logical.String())
}
