// Copyright 2026 The DST Authors
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

// Package validate runs semantic checks over a DST syntax tree and reports
// the problems found as diagnostics.
//
// Checks are registered per node type. Validate walks the tree in source
// order and runs, for each node, the checks registered for its type in
// registration order. Checks only read the tree, the resolver and the
// reference index; they keep no state between invocations.
package validate

import (
	"context"
	"fmt"
	"reflect"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/core/resolve"
	"dstlang.org/go/internal/diag"
)

type check struct {
	name string
	typ  reflect.Type
	fn   func(c *Context, n ast.Node)
}

// A Registry holds the checks to run for each type of node.
type Registry struct {
	checks []check
	byType map[reflect.Type][]check
}

// Register adds a check for nodes of type N. N may be a concrete node type
// such as *ast.Story or an interface such as ast.DeclarationScope.
func Register[N ast.Node](reg *Registry, name string, fn func(c *Context, n N)) {
	reg.checks = append(reg.checks, check{
		name: name,
		typ:  reflect.TypeOf((*N)(nil)).Elem(),
		fn:   func(c *Context, n ast.Node) { fn(c, n.(N)) },
	})
	reg.byType = nil
}

// Checks returns the names of the registered checks in registration order.
func (reg *Registry) Checks() []string {
	a := make([]string, len(reg.checks))
	for i, c := range reg.checks {
		a[i] = c.name
	}
	return a
}

func (reg *Registry) lookup(n ast.Node) []check {
	t := reflect.TypeOf(n)
	if reg.byType == nil {
		reg.byType = map[reflect.Type][]check{}
	}
	if list, ok := reg.byType[t]; ok {
		return list
	}
	var list []check
	for _, c := range reg.checks {
		if c.typ == t || (c.typ.Kind() == reflect.Interface && t.Implements(c.typ)) {
			list = append(list, c)
		}
	}
	reg.byType[t] = list
	return list
}

// Context gives a check access to the file being validated and a way to
// report problems.
type Context struct {
	File     *ast.File
	Resolver *resolve.Resolver
	Index    *refindex.Index

	sink  *diag.Sink
	check string
}

// Errorf reports an error anchored at the given property of n.
func (c *Context) Errorf(n ast.Node, property, format string, args ...any) {
	c.report(diag.Error, n, property, format, args)
}

// Warnf reports a warning anchored at the given property of n.
func (c *Context) Warnf(n ast.Node, property, format string, args ...any) {
	c.report(diag.Warning, n, property, format, args)
}

func (c *Context) report(sev diag.Severity, n ast.Node, property, format string, args []any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	d := diag.New(sev, msg, n, property)
	d.Check = c.check
	c.sink.Accept(d)
}

// Validate runs the checks of reg over f and reports to sink. A nil reg
// selects Default. If ctx is cancelled before the walk completes, Validate
// returns ctx.Err() and the diagnostics reported so far are incomplete.
func Validate(ctx context.Context, f *ast.File, r *resolve.Resolver, idx *refindex.Index, reg *Registry, sink *diag.Sink) error {
	if reg == nil {
		reg = Default()
	}
	if f.Model == nil {
		return nil
	}
	c := &Context{
		File:     f,
		Resolver: r,
		Index:    idx,
		sink:     sink,
	}
	var err error
	ast.Inspect(f.Model, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		if err = ctx.Err(); err != nil {
			return false
		}
		for _, chk := range reg.lookup(n) {
			c.check = chk.name
			chk.fn(c, n)
		}
		return true
	})
	return err
}
