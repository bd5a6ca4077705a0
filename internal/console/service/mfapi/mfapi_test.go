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

package mfapi_test

import (
	"context"
	"testing"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/internal/console/service/mfapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memApis struct {
	items   map[string]*model.MfApi
	updates map[string]any
}

func (m *memApis) ListMfApis(_ context.Context, _ *model.MfApiQuery) ([]model.MfApi, int64, error) {
	return nil, 0, nil
}

func (m *memApis) GetMfApi(_ context.Context, id string) (*model.MfApi, error) {
	if api, ok := m.items[id]; ok {
		return api, nil
	}
	return nil, repo.ErrRecordNotFound
}

func (m *memApis) CreateMfApi(_ context.Context, api *model.MfApi) error {
	m.items[api.ID] = api
	return nil
}

func (m *memApis) UpdateMfApi(_ context.Context, _ string, updates map[string]any) error {
	m.updates = updates
	return nil
}

func (m *memApis) DeleteMfApi(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func TestMfApiService(t *testing.T) {
	store := &memApis{items: map[string]*model.MfApi{}}
	svc := mfapi.NewMfApiService(store)
	ctx := context.Background()

	page, err := svc.List(ctx, &model.MfApiQuery{PageSize: 1000})
	require.NoError(t, err)
	assert.NotNil(t, page.List)
	assert.Equal(t, 200, page.PageSize)

	_, err = svc.Create(ctx, &model.MfApiReq{Name: "users", SourceType: "SQL"}, "9")
	assert.Error(t, err)

	api, err := svc.Create(ctx, &model.MfApiReq{Name: "users", SourceType: model.SourceTypeDB}, "9")
	require.NoError(t, err)
	assert.Equal(t, "9", api.CreateBy)

	require.NoError(t, svc.Update(ctx, api.ID, &model.MfApiReq{Name: "members", SourceType: model.SourceTypeAPI}))
	assert.Equal(t, "members", store.updates["name"])

	require.NoError(t, svc.Delete(ctx, api.ID))
	assert.ErrorIs(t, svc.Delete(ctx, api.ID), repo.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Update(ctx, "nope", &model.MfApiReq{Name: "x", SourceType: model.SourceTypeDB}), repo.ErrRecordNotFound)
}
