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

package views

import (
	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/service/resolver"
	"github.com/go-arcade/console/pkg/schema"
)

var (
	searchColProps = map[string]any{"lg": 4, "md": 6}
	fullRow        = map[string]any{"span": 24}

	statusOptions = []schema.Option{
		{Label: "启用", Value: model.StatusEnabled},
		{Label: "停用", Value: model.StatusDisabled},
	}
	sexOptions = []schema.Option{
		{Label: "男", Value: model.SexMale},
		{Label: "女", Value: model.SexFemale},
	}
)

// Account 账号视图
func Account(deps Deps) (*schema.ViewSchema, error) {
	superAdmin, err := schema.Expr("isSuperAdmin(id)", Funcs)
	if err != nil {
		return nil, err
	}

	return &schema.ViewSchema{
		Name:        ViewAccount,
		Columns:     accountColumns(deps),
		SearchForm:  accountSearchForm(),
		EditForm:    accountEditForm(superAdmin),
		Description: accountDescription(deps),
	}, nil
}

func accountRecord(rc schema.RenderContext) (*model.AccountRecord, bool) {
	rec, ok := rc.Record.(*model.AccountRecord)
	return rec, ok && rec != nil
}

func accountColumns(deps Deps) []schema.Column {
	return []schema.Column{
		{Title: "用户名", DataIndex: "account", Width: 180},
		{Title: "昵称", DataIndex: "nickname", Width: 180},
		{Title: "手机号", DataIndex: "phone", Width: 120},
		{Title: "邮箱", DataIndex: "email", Width: 180},
		{
			Title:      "性别",
			DataIndex:  "sex",
			Width:      60,
			RenderKind: schema.KindTag,
			Render: func(rc schema.RenderContext) any {
				rec, ok := accountRecord(rc)
				return schema.YesNoTag(ok && rec.Sex == model.SexMale, "男", "女")
			},
		},
		{
			Title:      "所属组织",
			DataIndex:  "orgNames",
			Width:      180,
			RenderKind: schema.KindTags,
			Render: func(rc schema.RenderContext) any {
				rec, ok := accountRecord(rc)
				if !ok || deps.Orgs == nil {
					return schema.Tags(nil)
				}
				return schema.Tags(deps.Orgs.Render(rc.Ctx, rec.ID, rec.OrgIds))
			},
		},
		{
			Title:      "状态",
			DataIndex:  "status",
			Width:      80,
			RenderKind: schema.KindSwitch,
			Render: func(rc schema.RenderContext) any {
				rec, ok := accountRecord(rc)
				if !ok {
					return nil
				}
				hint := schema.SwitchHint{
					Kind:          schema.KindSwitch,
					Checked:       rec.Status == model.StatusEnabled,
					CheckedText:   "已启用",
					UncheckedText: "已停用",
					Disabled:      true,
					Loading:       rec.PendingStatus,
				}
				if deps.Toggle != nil {
					hint.Disabled = !deps.Toggle.Controllable(rc.Ctx, rec, subjectOf(rc.Extras))
					hint.Loading = hint.Loading || deps.Toggle.Pending(rec.ID)
				}
				return hint
			},
		},
	}
}

func accountSearchForm() []schema.Field {
	return []schema.Field{
		{Field: "account", Label: "用户名", Component: schema.Input, ColProps: searchColProps},
		{Field: "nickname", Label: "昵称", Component: schema.Input, ColProps: searchColProps},
		{Field: "phone", Label: "手机号", Component: schema.Input, ColProps: searchColProps},
		{
			Field:          "status",
			Label:          "状态",
			Component:      schema.Select,
			ComponentProps: map[string]any{"options": statusOptions},
			ColProps:       searchColProps,
		},
	}
}

func accountEditForm(superAdmin schema.Predicate) []schema.Field {
	return []schema.Field{
		{Field: "id", Label: "唯一ID", Component: schema.Input, Show: schema.Never()},
		{Field: "account", Label: "用户名", Component: schema.Input, Required: true},
		{Field: "password", Label: "密码", Component: schema.InputPassword, Required: true},
		{Field: "nickname", Label: "昵称", Component: schema.Input},
		{
			Field:     "orgIds",
			Label:     "所属部门",
			Component: schema.TreeSelect,
			ComponentProps: map[string]any{
				"maxTagCount": 8,
				"fieldNames":  map[string]any{"label": "orgName", "key": "id", "value": "id"},
				"multiple":    true,
			},
			ColProps:        fullRow,
			DisabledWhen:    "isSuperAdmin(id)",
			DynamicDisabled: superAdmin,
			Required:        true,
		},
		{
			Field:     "roleIds",
			Label:     "角色",
			Component: schema.Select,
			ComponentProps: map[string]any{
				"maxTagCount": 8,
				"mode":        "multiple",
			},
			ColProps:        fullRow,
			DisabledWhen:    "isSuperAdmin(id)",
			DynamicDisabled: superAdmin,
		},
		{Field: "phone", Label: "手机号", Component: schema.Input},
		{Field: "email", Label: "邮箱", Component: schema.Input},
		{Field: "telephone", Label: "座机", Component: schema.Input},
		{
			Field:     "birthday",
			Label:     "生日",
			Component: schema.DatePicker,
			ComponentProps: map[string]any{
				"valueFormat": "YYYY-MM-DD",
				"format":      "YYYY-MM-DD",
			},
		},
		{
			Field:          "sex",
			Label:          "性别",
			Component:      schema.RadioButtonGroup,
			DefaultValue:   model.SexMale,
			ComponentProps: map[string]any{"options": sexOptions},
			Required:       true,
		},
		{
			Field:           "status",
			Label:           "状态",
			Component:       schema.RadioButtonGroup,
			DefaultValue:    model.StatusEnabled,
			ComponentProps:  map[string]any{"options": statusOptions},
			DisabledWhen:    "isSuperAdmin(id)",
			DynamicDisabled: superAdmin,
			Required:        true,
		},
		{Field: "remark", Label: "备注", Component: schema.InputTextArea, ColProps: fullRow},
	}
}

func accountDescription(deps Deps) []schema.DescItem {
	return []schema.DescItem{
		{Field: "id", Label: "id", Show: schema.Never()},
		{Field: "account", Label: "用户名"},
		{Field: "nickname", Label: "昵称"},
		{
			Field:      "orgIds",
			Label:      "所属部门",
			Span:       2,
			RenderKind: schema.KindTags,
			Render:     resolveTags(deps.Orgs, func(rec *model.AccountRecord) []string { return rec.OrgIds }),
		},
		{
			Field:      "roleIds",
			Label:      "角色",
			Span:       2,
			RenderKind: schema.KindTags,
			Render:     resolveTags(deps.Roles, func(rec *model.AccountRecord) []string { return rec.RoleIds }),
		},
		{Field: "phone", Label: "手机号"},
		{Field: "email", Label: "邮箱"},
		{Field: "telephone", Label: "座机"},
		{Field: "birthday", Label: "生日"},
		{
			Field:      "sex",
			Label:      "性别",
			RenderKind: schema.KindTag,
			Render: func(rc schema.RenderContext) any {
				rec, ok := accountRecord(rc)
				return schema.YesNoTag(ok && rec.Sex == model.SexMale, "男", "女")
			},
		},
		{
			Field:      "status",
			Label:      "状态",
			RenderKind: schema.KindTag,
			Render: func(rc schema.RenderContext) any {
				rec, ok := accountRecord(rc)
				return schema.YesNoTag(ok && rec.Status == model.StatusEnabled, "启用", "停用")
			},
		},
		{Field: "remark", Label: "备注"},
	}
}

// resolveTags 描述页同步解析名称，查询失败按无名称处理
func resolveTags(r *resolver.Resolver, ids func(*model.AccountRecord) []string) schema.RenderFunc {
	return func(rc schema.RenderContext) any {
		rec, ok := accountRecord(rc)
		if !ok || r == nil {
			return schema.Tags(nil)
		}
		labels, err := r.Resolve(rc.Ctx, rec.ID, ids(rec))
		if err != nil {
			return schema.Tags(nil)
		}
		return schema.Tags(labels)
	}
}
