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

package description_test

import (
	"context"
	"testing"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/internal/console/service/description"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/resolver"
	"github.com/go-arcade/console/internal/console/views"
	"github.com/go-arcade/console/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oneAccount struct {
	repo.IAccountRepository
	rec *model.AccountRecord
}

func (o oneAccount) GetAccount(_ context.Context, id string) (*model.AccountRecord, error) {
	if id != o.rec.ID {
		return nil, repo.ErrRecordNotFound
	}
	return o.rec, nil
}

type orgs map[string]string

func (o orgs) GetOrgsByIds(_ context.Context, ids []string) ([]model.Org, error) {
	var out []model.Org
	for _, id := range ids {
		if name, ok := o[id]; ok {
			out = append(out, model.Org{ID: id, OrgName: name})
		}
	}
	return out, nil
}

func TestDescribe(t *testing.T) {
	rec := model.NewAccountRecord("2", "bob")
	rec.OrgIds = []string{"20", "10"}

	orgResolver := resolver.New(resolver.KindOrg, resolver.OrgLabels(orgs{"10": "A", "20": "B"}), resolver.Options{})
	reg, err := views.NewRegistry(views.Deps{Orgs: orgResolver})
	require.NoError(t, err)

	svc, err := description.NewDescriptionService(oneAccount{rec: rec}, reg)
	require.NoError(t, err)

	entries, err := svc.Describe(context.Background(), "2", permission.Subject{UserId: "9"})
	require.NoError(t, err)

	values := map[string]any{}
	for _, e := range entries {
		values[e.Field] = e.Value
	}
	assert.Equal(t, schema.Tags([]string{"B", "A"}), values["orgIds"])
	assert.Equal(t, schema.Tags(nil), values["roleIds"])
	assert.Equal(t, "bob", values["account"])

	_, err = svc.Describe(context.Background(), "3", permission.Subject{})
	assert.ErrorIs(t, err, repo.ErrRecordNotFound)
}
