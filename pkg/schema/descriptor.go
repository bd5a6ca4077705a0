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
	"context"

	"github.com/bytedance/sonic"
)

// Values is the current state of a form, keyed by field name
type Values map[string]any

// RenderContext is passed to column and description renderers.
// Extras carries request scoped inputs such as the acting subject.
type RenderContext struct {
	Ctx    context.Context
	Record any
	Value  any
	Extras map[string]any
}

// RenderFunc produces a render hint (TagHint, TagListHint, SwitchHint, ...)
type RenderFunc func(rc RenderContext) any

// Column describes one table column
type Column struct {
	Title      string     `json:"title"`
	DataIndex  string     `json:"dataIndex"`
	Width      int        `json:"width,omitempty"`
	RenderKind string     `json:"render,omitempty"`
	Render     RenderFunc `json:"-"`
}

// Field describes one form field. Show and DynamicDisabled are evaluated
// against the current form values; a nil Show means always visible.
type Field struct {
	Field          string         `json:"field"`
	Label          string         `json:"label"`
	Component      Component      `json:"component"`
	DefaultValue   any            `json:"defaultValue,omitempty"`
	Required       bool           `json:"required,omitempty"`
	ComponentProps map[string]any `json:"componentProps,omitempty"`
	ColProps       map[string]any `json:"colProps,omitempty"`
	ShowWhen       string         `json:"showWhen,omitempty"`
	DisabledWhen   string         `json:"disabledWhen,omitempty"`

	Show            Predicate `json:"-"`
	DynamicDisabled Predicate `json:"-"`
}

type fieldJSON struct {
	field
	Hidden          bool `json:"hidden,omitempty"`
	DynamicShow     bool `json:"dynamicShow,omitempty"`
	DynamicDisabled bool `json:"dynamicDisabled,omitempty"`
}

type field Field

// MarshalJSON flags predicate driven attributes so the client knows to
// call the evaluate endpoint when values change.
func (f Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{field: field(f)}
	switch {
	case f.Show == nil:
	case isConst(f.Show):
		out.Hidden = !f.Show(nil)
	default:
		out.DynamicShow = true
	}
	out.DynamicDisabled = f.DynamicDisabled != nil
	return sonic.Marshal(out)
}

// DescItem describes one entry of a description (read only detail) view
type DescItem struct {
	Field      string     `json:"field"`
	Label      string     `json:"label"`
	Span       int        `json:"span,omitempty"`
	RenderKind string     `json:"render,omitempty"`
	Show       Predicate  `json:"-"`
	Render     RenderFunc `json:"-"`
}

// ViewSchema groups every descriptor set declared for one view
type ViewSchema struct {
	Name        string     `json:"name"`
	Columns     []Column   `json:"columns"`
	SearchForm  []Field    `json:"searchForm"`
	EditForm    []Field    `json:"editForm"`
	Description []DescItem `json:"description,omitempty"`
}

const (
	FormSearch = "search"
	FormEdit   = "edit"
)

// Form returns the named form's fields
func (v *ViewSchema) Form(name string) ([]Field, bool) {
	switch name {
	case FormSearch:
		return v.SearchForm, true
	case FormEdit:
		return v.EditForm, true
	}
	return nil, false
}

// TagHint renders a single colored tag
type TagHint struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// TagListHint renders a list of plain tags
type TagListHint struct {
	Kind  string   `json:"kind"`
	Items []string `json:"items"`
}

// SwitchHint renders a toggle switch
type SwitchHint struct {
	Kind          string `json:"kind"`
	Checked       bool   `json:"checked"`
	CheckedText   string `json:"checkedChildren"`
	UncheckedText string `json:"unCheckedChildren"`
	Disabled      bool   `json:"disabled"`
	Loading       bool   `json:"loading"`
}

const (
	KindTag    = "tag"
	KindTags   = "tags"
	KindSwitch = "switch"
)

func Tag(text, color string) TagHint {
	return TagHint{Kind: KindTag, Text: text, Color: color}
}

// Tags never returns a nil Items slice so the client always gets a list
func Tags(items []string) TagListHint {
	if items == nil {
		items = []string{}
	}
	return TagListHint{Kind: KindTags, Items: items}
}

// YesNoTag renders yes/no style tags: green for ok, red otherwise
func YesNoTag(ok bool, yes, no string) TagHint {
	if ok {
		return Tag(yes, "green")
	}
	return Tag(no, "red")
}
