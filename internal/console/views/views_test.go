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
	"context"
	"testing"
	"time"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/resolver"
	"github.com/go-arcade/console/internal/console/service/toggle"
	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopUpdater struct{}

func (noopUpdater) SetStatus(context.Context, string, int) error { return nil }

func testDeps() Deps {
	checker := permission.NewChecker(nil, nil, 0)
	labels := func(names map[string]string) resolver.LookupFunc {
		return func(_ context.Context, ids []string) ([]string, error) {
			var out []string
			for _, id := range ids {
				if n, ok := names[id]; ok {
					out = append(out, n)
				}
			}
			return out, nil
		}
	}
	opts := resolver.Options{Cache: cache.NewFastCache(0), TTL: time.Minute}
	return Deps{
		Orgs:    resolver.New(resolver.KindOrg, labels(map[string]string{"10": "研发部", "20": "运维部"}), opts),
		Roles:   resolver.New(resolver.KindRole, labels(map[string]string{"r1": "管理员"}), opts),
		Toggle:  toggle.NewController(noopUpdater{}, checker, nil),
		Checker: checker,
	}
}

func stateOf(states []schema.FieldState, field string) schema.FieldState {
	for _, s := range states {
		if s.Field == field {
			return s
		}
	}
	return schema.FieldState{}
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(Deps{})
	require.NoError(t, err)
	assert.Equal(t, []string{ViewAccount, ViewMfApi}, reg.Names())
}

func TestAccountEditForm_SuperAdmin(t *testing.T) {
	v, err := Account(Deps{})
	require.NoError(t, err)

	states := schema.EvaluateForm(v.EditForm, schema.Values{"id": model.SuperAdminId})
	assert.True(t, stateOf(states, "id").Hidden)
	assert.True(t, stateOf(states, "orgIds").Disabled)
	assert.True(t, stateOf(states, "roleIds").Disabled)
	assert.True(t, stateOf(states, "status").Disabled)
	assert.False(t, stateOf(states, "account").Disabled)
	assert.Equal(t, model.SexMale, stateOf(states, "sex").Value)
	assert.Equal(t, model.StatusEnabled, stateOf(states, "status").Value)

	states = schema.EvaluateForm(v.EditForm, schema.Values{"id": "2"})
	assert.False(t, stateOf(states, "orgIds").Disabled)
	assert.False(t, stateOf(states, "status").Disabled)

	err = schema.Validate(v.EditForm, schema.Values{"account": "bob"})
	var verrs schema.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"password", "orgIds"}, fields)
}

func TestAccountColumns_StatusSwitch(t *testing.T) {
	deps := testDeps()
	v, err := Account(deps)
	require.NoError(t, err)
	ctx := context.Background()
	editor := Extras(permission.Subject{UserId: "9", Permissions: []string{permission.AccountUpdate}})

	rec := model.NewAccountRecord("2", "bob")
	row := schema.RenderRow(ctx, v.Columns, rec, rec.Values(), editor)
	sw := row["status"].(schema.SwitchHint)
	assert.True(t, sw.Checked)
	assert.False(t, sw.Disabled)
	assert.False(t, sw.Loading)
	assert.Equal(t, "已启用", sw.CheckedText)
	assert.Equal(t, schema.Tag("男", "green"), row["sex"])

	rec.Status = model.StatusDisabled
	rec.PendingStatus = true
	sw = schema.RenderRow(ctx, v.Columns, rec, rec.Values(), Extras(permission.Subject{UserId: "8"}))["status"].(schema.SwitchHint)
	assert.False(t, sw.Checked)
	assert.True(t, sw.Disabled)
	assert.True(t, sw.Loading)

	admin := model.NewAccountRecord(model.SuperAdminId, "admin")
	sw = schema.RenderRow(ctx, v.Columns, admin, admin.Values(), editor)["status"].(schema.SwitchHint)
	assert.True(t, sw.Disabled)

	deps.Orgs.Wait()
}

func TestAccountDescription(t *testing.T) {
	v, err := Account(testDeps())
	require.NoError(t, err)

	rec := model.NewAccountRecord("2", "bob")
	rec.Sex = model.SexFemale
	rec.OrgIds = []string{"10", "20"}
	rec.RoleIds = []string{"r1"}

	entries := schema.RenderDescription(context.Background(), v.Description, rec, rec.Values(), nil)
	byField := map[string]any{}
	for _, e := range entries {
		byField[e.Field] = e.Value
	}
	assert.NotContains(t, byField, "id")
	assert.Equal(t, schema.Tags([]string{"研发部", "运维部"}), byField["orgIds"])
	assert.Equal(t, schema.Tags([]string{"管理员"}), byField["roleIds"])
	assert.Equal(t, schema.Tag("女", "red"), byField["sex"])
	assert.Equal(t, schema.Tag("启用", "green"), byField["status"])
	assert.Equal(t, "bob", byField["account"])
}

func TestAccountDescription_EmptyIds(t *testing.T) {
	v, err := Account(testDeps())
	require.NoError(t, err)

	rec := model.NewAccountRecord("3", "carol")
	entries := schema.RenderDescription(context.Background(), v.Description, rec, rec.Values(), nil)
	for _, e := range entries {
		if e.Field == "orgIds" {
			assert.Equal(t, schema.Tags(nil), e.Value)
			assert.NotNil(t, e.Value.(schema.TagListHint).Items)
		}
	}
}

func TestMfApiView(t *testing.T) {
	v, err := MfApi()
	require.NoError(t, err)
	assert.Equal(t, ViewMfApi, v.Name)
	assert.Len(t, v.Columns, 4)
	assert.Len(t, v.SearchForm, 3)
	require.Len(t, v.EditForm, 11)
	assert.Empty(t, schema.Lint(v))

	states := schema.EvaluateForm(v.EditForm, schema.Values{})
	assert.True(t, stateOf(states, "id").Hidden)
	assert.False(t, stateOf(states, "name").Hidden)
}

func TestFuncs_IsSuperAdmin(t *testing.T) {
	fn := Funcs["isSuperAdmin"]
	ok, err := fn("1")
	require.NoError(t, err)
	assert.Equal(t, true, ok)

	ok, err = fn(nil)
	require.NoError(t, err)
	assert.Equal(t, false, ok)

	_, err = fn()
	assert.Error(t, err)
}
