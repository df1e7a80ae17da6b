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

// Package planner implements the physical planner (C8, §4.7): an
// ordered list of Strategies turns a fully-optimized logical plan into a
// tree of rowexec.Physical operators, inserting rowexec.Exchange nodes
// wherever a child's declared output partitioning doesn't satisfy its
// parent's requirement. There is no cost-based search (a Non-goal): the
// first candidate the first applicable strategy returns for a node wins,
// exactly as Catalyst's own QueryPlanner picks its first plan.
package planner

import (
	"fmt"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/rowexec"
)

// Strategy is a partial function from one logical node to zero or more
// physical candidates. Children the strategy hasn't committed to yet are
// left wrapped in rowexec.PlanLater; the driver plans them in a later
// step so each strategy only has to reason about its own node.
type Strategy func(n sql.Node) []sql.Node

// Planner drives the §4.7 strategy list.
type Planner struct {
	Strategies []Strategy
}

// New returns a Planner with the standard strategy order and partial
// aggregation enabled (sql.DefaultEngineConfig's setting).
func New() *Planner {
	return NewWithConfig(sql.DefaultEngineConfig())
}

// NewWithConfig returns a Planner whose aggregateStrategy honors
// cfg.EnablePartialAggregation (§1.3/§4.7 strategy 5): when disabled,
// every Aggregate plans as a single all-tuples-clustered rowexec.
// Aggregate instead of the two-level partial/final split.
func NewWithConfig(cfg *sql.EngineConfig) *Planner {
	return &Planner{Strategies: []Strategy{
		dataSink,
		tableScan,
		partitionPruning,
		equiJoin,
		aggregateStrategy(cfg),
		broadcastNestedLoopJoin,
		cartesianProduct,
		basicOperators,
	}}
}

// Plan turns a fully-analyzed, optimized logical plan into a physical
// one ready for rowexec.Physical.Execute.
func (p *Planner) Plan(logical sql.Node) (sql.Node, error) {
	phys, err := p.planNode(logical)
	if err != nil {
		return nil, err
	}
	return p.planChildren(phys)
}

// planNode tries each strategy in order against logical and commits to
// the first candidate the first applicable one returns.
func (p *Planner) planNode(logical sql.Node) (sql.Node, error) {
	for _, strategy := range p.Strategies {
		candidates := strategy(logical)
		if len(candidates) > 0 {
			return candidates[0], nil
		}
	}
	return nil, sql.ErrUnsupportedOperation.New(fmt.Sprintf("no physical strategy for %T", logical))
}

// planChildren recursively plans every rowexec.PlanLater placeholder
// reachable from n, inserting an Exchange between a child and its parent
// whenever the child's OutputPartitioning doesn't satisfy the parent's
// RequiredChildDistribution (§4.7).
func (p *Planner) planChildren(n sql.Node) (sql.Node, error) {
	phys, ok := n.(rowexec.Physical)
	if !ok {
		return n, nil
	}
	children := phys.Children()
	if len(children) == 0 {
		return n, nil
	}

	reqs := phys.RequiredChildDistribution()
	newChildren := make([]sql.Node, len(children))
	for i, c := range children {
		planned, err := p.resolveChild(c)
		if err != nil {
			return nil, err
		}
		if i < len(reqs) {
			planned = satisfyDistribution(reqs[i], planned)
		}
		newChildren[i] = planned
	}
	return phys.WithChildren(newChildren...)
}

// resolveChild turns one child -- either a PlanLater placeholder or an
// already-physical node a strategy built directly -- into a fully
// planned physical subtree.
func (p *Planner) resolveChild(child sql.Node) (sql.Node, error) {
	if later, ok := child.(*rowexec.PlanLater); ok {
		phys, err := p.planNode(later.Logical)
		if err != nil {
			return nil, err
		}
		return p.planChildren(phys)
	}
	return p.planChildren(child)
}

// satisfyDistribution wraps child in an Exchange when its own declared
// output partitioning doesn't meet req.
func satisfyDistribution(req rowexec.Distribution, child sql.Node) sql.Node {
	phys, ok := child.(rowexec.Physical)
	if !ok {
		return child
	}
	if req.Satisfies(phys.OutputPartitioning()) {
		return child
	}
	return rowexec.NewExchange(req, child)
}
