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
)

// RenderRow 计算一行中所有带 Render 的列，key 为 dataIndex
func RenderRow(ctx context.Context, cols []Column, record any, values Values, extras map[string]any) map[string]any {
	out := make(map[string]any)
	for _, col := range cols {
		if col.Render == nil {
			continue
		}
		out[col.DataIndex] = col.Render(RenderContext{
			Ctx:    ctx,
			Record: record,
			Value:  values[col.DataIndex],
			Extras: extras,
		})
	}
	return out
}

// DescEntry 渲染后的描述项
type DescEntry struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Span  int    `json:"span,omitempty"`
	Value any    `json:"value"`
}

// RenderDescription 跳过 Show 为 false 的项，没有 Render 的项使用原值
func RenderDescription(ctx context.Context, items []DescItem, record any, values Values, extras map[string]any) []DescEntry {
	out := make([]DescEntry, 0, len(items))
	for _, item := range items {
		if item.Show != nil && !item.Show(values) {
			continue
		}
		value := values[item.Field]
		if item.Render != nil {
			value = item.Render(RenderContext{
				Ctx:    ctx,
				Record: record,
				Value:  value,
				Extras: extras,
			})
		}
		out = append(out, DescEntry{
			Field: item.Field,
			Label: item.Label,
			Span:  item.Span,
			Value: value,
		})
	}
	return out
}
