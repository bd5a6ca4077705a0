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

	"sigs.k8s.io/yaml"
)

type fileDesc struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Span     int    `json:"span,omitempty"`
	ShowWhen string `json:"showWhen,omitempty"`
}

type fileView struct {
	Name        string     `json:"name"`
	Columns     []Column   `json:"columns"`
	SearchForm  []Field    `json:"searchForm"`
	EditForm    []Field    `json:"editForm"`
	Description []fileDesc `json:"description"`
}

type hiddenFlag struct {
	Hidden bool `json:"hidden"`
}

// LoadYAML parses a view declared in YAML. showWhen / disabledWhen are
// compiled with Expr; `hidden: true` is accepted as a constant Show.
func LoadYAML(data []byte, funcs ExprFuncs) (*ViewSchema, error) {
	var fv fileView
	if err := yaml.Unmarshal(data, &fv); err != nil {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}

	// Field 本身没有 hidden 属性，单独读取
	var flags struct {
		SearchForm []hiddenFlag `json:"searchForm"`
		EditForm   []hiddenFlag `json:"editForm"`
	}
	if err := yaml.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}

	v := &ViewSchema{
		Name:       fv.Name,
		Columns:    fv.Columns,
		SearchForm: fv.SearchForm,
		EditForm:   fv.EditForm,
	}
	if err := compileFields(v.SearchForm, flags.SearchForm, funcs); err != nil {
		return nil, err
	}
	if err := compileFields(v.EditForm, flags.EditForm, funcs); err != nil {
		return nil, err
	}
	for _, d := range fv.Description {
		show, err := Expr(d.ShowWhen, funcs)
		if err != nil {
			return nil, fmt.Errorf("description[%s]: %w", d.Field, err)
		}
		v.Description = append(v.Description, DescItem{Field: d.Field, Label: d.Label, Span: d.Span, Show: show})
	}
	return v, nil
}

func compileFields(fields []Field, hidden []hiddenFlag, funcs ExprFuncs) error {
	for i := range fields {
		f := &fields[i]
		if i < len(hidden) && hidden[i].Hidden {
			f.Show = Never()
		}
		if f.ShowWhen != "" {
			show, err := Expr(f.ShowWhen, funcs)
			if err != nil {
				return fmt.Errorf("field %s showWhen: %w", f.Field, err)
			}
			f.Show = show
		}
		if f.DisabledWhen != "" {
			disabled, err := Expr(f.DisabledWhen, funcs)
			if err != nil {
				return fmt.Errorf("field %s disabledWhen: %w", f.Field, err)
			}
			f.DynamicDisabled = disabled
		}
	}
	return nil
}

// DumpYAML renders a view back to YAML. Go predicates are reported as
// hidden / dynamic flags only.
func DumpYAML(v *ViewSchema) ([]byte, error) {
	return yaml.Marshal(v)
}
