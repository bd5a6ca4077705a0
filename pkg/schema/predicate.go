// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-arcade/console/pkg/log"
)

// Predicate is a pure function of the current form values
type Predicate func(v Values) bool

var (
	alwaysTrue  Predicate = func(Values) bool { return true }
	alwaysFalse Predicate = func(Values) bool { return false }
)

// Never is the constant false predicate; the common `show: false`
func Never() Predicate {
	return alwaysFalse
}

func isConst(p Predicate) bool {
	ptr := reflect.ValueOf(p).Pointer()
	return ptr == reflect.ValueOf(alwaysTrue).Pointer() || ptr == reflect.ValueOf(alwaysFalse).Pointer()
}

// FieldIs is true when the field currently holds want (compared with fmt formatting)
func FieldIs(name string, want any) Predicate {
	return func(v Values) bool {
		got, ok := v[name]
		return ok && fmt.Sprint(got) == fmt.Sprint(want)
	}
}

// ExprFuncs are extra functions exposed to expression predicates,
// e.g. isSuperAdmin(values.id)
type ExprFuncs map[string]func(params ...any) (any, error)

// Expr compiles an expr-lang expression into a Predicate. Field values are
// available both by name and under `values`. A runtime error or non bool
// result evaluates to false.
func Expr(src string, funcs ExprFuncs) (Predicate, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}

	opts := []expr.Option{expr.AllowUndefinedVariables()}
	for name, fn := range funcs {
		opts = append(opts, expr.Function(name, fn))
	}

	program, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", src, err)
	}
	return func(v Values) bool {
		ok, err := runBool(program, v)
		if err != nil {
			log.Warnw("evaluate expression failed", "expr", src, "error", err)
			return false
		}
		return ok
	}, nil
}

func runBool(program *vm.Program, v Values) (bool, error) {
	env := make(map[string]any, len(v)+1)
	for k, val := range v {
		env[k] = val
	}
	env["values"] = map[string]any(v)

	result, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression must return bool, got %T", result)
	}
	return b, nil
}
