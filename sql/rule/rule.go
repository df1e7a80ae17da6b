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

// Package rule implements the rule engine (C5, §4.4): a Rule is a named
// partial transformation on a plan, a Batch bundles rules with an Once or
// FixedPoint(maxIter) strategy, and an Executor runs batches in order,
// asserting declared invariants between them. Package analyzer and
// package optimizer are both just a fixed sequence of Batches run
// through one Executor.
package rule

import (
	"github.com/sirupsen/logrus"

	"github.com/relforge/relforge/sql"
)

// Func is a rule's own transformation: it returns the (possibly
// unchanged) node, or an error. Rules that don't apply to a given node
// simply return it unchanged rather than reporting "undefined" -- the
// caller tells changed from unchanged by structural equality
// (sql.Equal), not by a sentinel return.
type Func func(ctx *sql.Context, n sql.Node) (sql.Node, error)

// Rule is a named partial transformation (§4.4).
type Rule struct {
	Name  string
	Apply Func
}

// Strategy is a Batch's re-run policy.
type Strategy int

const (
	// Once runs every rule in the batch exactly one pass.
	Once Strategy = iota
	// FixedPoint re-runs the whole batch until a pass leaves the plan
	// structurally unchanged, or MaxIter passes have run.
	FixedPoint
)

// Batch bundles rules with a strategy (§4.4).
type Batch struct {
	Name     string
	Strategy Strategy
	// MaxIter bounds a FixedPoint batch's passes; ignored for Once.
	MaxIter int
	Rules   []Rule
}

// Invariant is a predicate the Executor asserts holds of the plan after a
// named batch has run (§4.4: "plan is fully resolved" is the analyzer's
// own invariant after its last batch).
type Invariant struct {
	Name  string
	Check func(n sql.Node) error
}

// Executor runs an ordered sequence of Batches over a plan, logging each
// rule application at Debug and asserting any Invariants registered
// after a given batch name.
type Executor struct {
	Log        *logrus.Entry
	Batches    []Batch
	invariants map[string][]Invariant
}

// NewExecutor returns an Executor with no batches or invariants yet
// registered; logger may be nil, in which case logrus's standard logger
// is used.
func NewExecutor(logger *logrus.Entry) *Executor {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Executor{Log: logger, invariants: make(map[string][]Invariant)}
}

// AddBatch appends a batch to the run sequence.
func (e *Executor) AddBatch(b Batch) { e.Batches = append(e.Batches, b) }

// AddInvariant registers an invariant to check immediately after the
// named batch completes.
func (e *Executor) AddInvariant(afterBatch string, inv Invariant) {
	e.invariants[afterBatch] = append(e.invariants[afterBatch], inv)
}

// Execute runs every batch in order over n, returning the final plan.
func (e *Executor) Execute(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	cur := n
	for _, batch := range e.Batches {
		next, err := e.runBatch(ctx, batch, cur)
		if err != nil {
			return nil, err
		}
		cur = next

		for _, inv := range e.invariants[batch.Name] {
			if err := inv.Check(cur); err != nil {
				return nil, sql.ErrInvariantViolated.New(batch.Name, err.Error())
			}
		}
	}
	return cur, nil
}

func (e *Executor) runBatch(ctx *sql.Context, batch Batch, n sql.Node) (sql.Node, error) {
	switch batch.Strategy {
	case Once:
		return e.runRulesOnce(ctx, batch, n)
	case FixedPoint:
		cur := n
		maxIter := batch.MaxIter
		if maxIter <= 0 {
			maxIter = 1
		}
		for i := 0; i < maxIter; i++ {
			next, err := e.runRulesOnce(ctx, batch, cur)
			if err != nil {
				return nil, err
			}
			if sql.Equal(cur, next) {
				return next, nil
			}
			cur = next
		}
		return nil, sql.ErrRuleFixpointExceeded.New(batch.Name, maxIter)
	default:
		return e.runRulesOnce(ctx, batch, n)
	}
}

func (e *Executor) runRulesOnce(ctx *sql.Context, batch Batch, n sql.Node) (sql.Node, error) {
	cur := n
	for _, r := range batch.Rules {
		next, err := r.Apply(ctx, cur)
		if err != nil {
			e.Log.WithField("batch", batch.Name).WithField("rule", r.Name).
				WithError(err).Error("rule failed")
			return nil, err
		}
		if !sql.Equal(cur, next) {
			e.Log.WithField("batch", batch.Name).WithField("rule", r.Name).Debug("rule applied")
		}
		cur = next
	}
	return cur, nil
}
