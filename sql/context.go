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
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"
)

// Context threads a standard context.Context, a query correlation id, a
// logger and an optional tracing span through analysis, optimization,
// planning and evaluation. It is the one value every collaborator
// boundary (§6) and every evaluator call (§4.9) is handed.
type Context struct {
	context.Context
	QueryId string
	Logger  *logrus.Entry
	Span    opentracing.Span
}

// NewContext wraps a context.Context for use by the engine, stamping a
// fresh query correlation id.
func NewContext(ctx context.Context) *Context {
	return &Context{
		Context: ctx,
		QueryId: uuid.NewV4().String(),
		Logger:  logrus.NewEntry(logrus.StandardLogger()),
		Span:    opentracing.NoopTracer{}.StartSpan("query"),
	}
}

// NewEmptyContext returns a Context over context.Background(), the
// default used throughout the test suite and by tools that only need to
// plan or evaluate a single expression.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// WithLogger returns a copy of the context using the given logger,
// allowing a caller (e.g. the rule executor) to attach fields such as the
// current batch/rule name without mutating the shared context.
func (c *Context) WithLogger(l *logrus.Entry) *Context {
	cp := *c
	cp.Logger = l
	return &cp
}
