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

// Package schema holds the declarative descriptors consumed by the console
// renderers: table columns, form fields and description items, grouped per
// view and served from a Registry.
package schema

// Component is the input widget kind a form field is rendered with
type Component string

const (
	Input            Component = "Input"
	InputPassword    Component = "InputPassword"
	InputTextArea    Component = "InputTextArea"
	Select           Component = "Select"
	TreeSelect       Component = "TreeSelect"
	RadioButtonGroup Component = "RadioButtonGroup"
	DatePicker       Component = "DatePicker"
)

var components = map[Component]struct{}{
	Input:            {},
	InputPassword:    {},
	InputTextArea:    {},
	Select:           {},
	TreeSelect:       {},
	RadioButtonGroup: {},
	DatePicker:       {},
}

// Valid reports whether c is one of the known component kinds
func (c Component) Valid() bool {
	_, ok := components[c]
	return ok
}

// Components lists every known component kind
func Components() []Component {
	return []Component{Input, InputPassword, InputTextArea, Select, TreeSelect, RadioButtonGroup, DatePicker}
}

// Option is a label/value pair for Select and RadioButtonGroup
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}
