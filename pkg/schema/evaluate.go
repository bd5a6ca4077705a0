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
)

// FieldState is the evaluated state of a field for a given set of values
type FieldState struct {
	Field    string `json:"field"`
	Hidden   bool   `json:"hidden"`
	Disabled bool   `json:"disabled"`
	Value    any    `json:"value,omitempty"`
}

// Effective merges defaults into values. The input map is not modified.
func Effective(fields []Field, values Values) Values {
	out := make(Values, len(values)+len(fields))
	for k, v := range values {
		out[k] = v
	}
	for _, f := range fields {
		if _, ok := out[f.Field]; !ok && f.DefaultValue != nil {
			out[f.Field] = f.DefaultValue
		}
	}
	return out
}

// EvaluateForm applies defaults and the Show / DynamicDisabled predicates
func EvaluateForm(fields []Field, values Values) []FieldState {
	eff := Effective(fields, values)
	states := make([]FieldState, 0, len(fields))
	for _, f := range fields {
		states = append(states, FieldState{
			Field:    f.Field,
			Hidden:   f.Show != nil && !f.Show(eff),
			Disabled: f.DynamicDisabled != nil && f.DynamicDisabled(eff),
			Value:    eff[f.Field],
		})
	}
	return states
}

// FieldError is a single failed field check
type FieldError struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Msg   string `json:"msg"`
}

// ValidationErrors collects every FieldError of a form
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks required fields that are visible for the given values
func Validate(fields []Field, values Values) error {
	eff := Effective(fields, values)
	var errs ValidationErrors
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if f.Show != nil && !f.Show(eff) {
			continue
		}
		if isEmpty(eff[f.Field]) {
			errs = append(errs, FieldError{Field: f.Field, Label: f.Label, Msg: "is required"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
