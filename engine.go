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

// Package relforge wires the core's collaborators (§6) into a single
// Engine: a catalog-backed Analyzer (C6), an Optimizer (C7) and a
// Planner (C8), composed the way the teacher's own top-level Engine
// composes its Analyzer and ExecBuilder, minus everything that belongs
// to the SQL-text parser and wire-protocol collaborators this core
// deliberately leaves external (§1).
package relforge

import (
	"fmt"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/analyzer"
	"github.com/relforge/relforge/sql/optimizer"
	"github.com/relforge/relforge/sql/planner"
	"github.com/relforge/relforge/sql/rowexec"
)

// Engine turns a logical plan -- built directly with the plan/expression
// constructors by a caller that owns its own parser collaborator (§6.1)
// -- into a resolved, optimized, physically-planned tree ready to
// execute, and can run that tree to completion.
type Engine struct {
	Catalog   *sql.Catalog
	Config    *sql.EngineConfig
	Analyzer  *analyzer.Analyzer
	Optimizer *optimizer.Optimizer
	Planner   *planner.Planner
}

// New builds an Engine over catalog with the given config. A nil config
// falls back to sql.DefaultEngineConfig().
func New(catalog *sql.Catalog, cfg *sql.EngineConfig) *Engine {
	if cfg == nil {
		cfg = sql.DefaultEngineConfig()
	}
	return &Engine{
		Catalog:   catalog,
		Config:    cfg,
		Analyzer:  analyzer.New(catalog),
		Optimizer: optimizer.New(),
		Planner:   planner.NewWithConfig(cfg),
	}
}

// NewDefault builds an Engine over catalog using sql.DefaultEngineConfig.
func NewDefault(catalog *sql.Catalog) *Engine {
	return New(catalog, nil)
}

// Compile runs the analyzer (§4.5), then the optimizer (§4.6), then the
// physical planner (§4.7) over n, in that order, returning the first
// error any stage raises.
func (e *Engine) Compile(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	resolved, err := e.Analyzer.Analyze(ctx, n)
	if err != nil {
		return nil, err
	}
	optimized, err := e.Optimizer.Optimize(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return e.Planner.Plan(optimized)
}

// Execute runs an already-compiled physical plan, producing its output
// schema and a RowIter over its rows. phys must implement
// rowexec.Physical, true of every node the Planner ever returns.
func (e *Engine) Execute(ctx *sql.Context, phys sql.Node) (sql.Schema, sql.RowIter, error) {
	op, ok := phys.(rowexec.Physical)
	if !ok {
		return nil, nil, sql.ErrUnsupportedOperation.New(fmt.Sprintf("%T is not an executable physical plan", phys))
	}
	iter, err := op.Execute(ctx)
	if err != nil {
		return nil, nil, err
	}
	return phys.Schema(), iter, nil
}

// Query compiles and executes n in one call, the shape most callers and
// tests reach for.
func (e *Engine) Query(ctx *sql.Context, n sql.Node) (sql.Schema, sql.RowIter, error) {
	phys, err := e.Compile(ctx, n)
	if err != nil {
		return nil, nil, err
	}
	return e.Execute(ctx, phys)
}
