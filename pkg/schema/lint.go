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
)

// Lint reports structural problems: duplicate names, unknown components,
// missing labels.
func Lint(v *ViewSchema) []error {
	var problems []error

	seen := make(map[string]bool, len(v.Columns))
	for i, c := range v.Columns {
		if c.DataIndex == "" {
			problems = append(problems, fmt.Errorf("columns[%d]: empty dataIndex", i))
			continue
		}
		if seen[c.DataIndex] {
			problems = append(problems, fmt.Errorf("columns: duplicate dataIndex %q", c.DataIndex))
		}
		seen[c.DataIndex] = true
		if c.Title == "" {
			problems = append(problems, fmt.Errorf("columns[%s]: empty title", c.DataIndex))
		}
	}

	problems = append(problems, lintForm(FormSearch, v.SearchForm)...)
	problems = append(problems, lintForm(FormEdit, v.EditForm)...)

	seen = make(map[string]bool, len(v.Description))
	for i, d := range v.Description {
		if d.Field == "" {
			problems = append(problems, fmt.Errorf("description[%d]: empty field", i))
			continue
		}
		if seen[d.Field] {
			problems = append(problems, fmt.Errorf("description: duplicate field %q", d.Field))
		}
		seen[d.Field] = true
		if d.Span < 0 {
			problems = append(problems, fmt.Errorf("description[%s]: negative span", d.Field))
		}
	}
	return problems
}

func lintForm(name string, fields []Field) []error {
	var problems []error
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Field == "" {
			problems = append(problems, fmt.Errorf("%s[%d]: empty field", name, i))
			continue
		}
		if seen[f.Field] {
			problems = append(problems, fmt.Errorf("%s: duplicate field %q", name, f.Field))
		}
		seen[f.Field] = true
		if f.Label == "" {
			problems = append(problems, fmt.Errorf("%s[%s]: empty label", name, f.Field))
		}
		if !f.Component.Valid() {
			problems = append(problems, fmt.Errorf("%s[%s]: unknown component %q, want one of %v", name, f.Field, f.Component, Components()))
		}
	}
	return problems
}
