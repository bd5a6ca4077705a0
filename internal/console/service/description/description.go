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

package description

import (
	"context"

	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/views"
	"github.com/go-arcade/console/pkg/schema"
)

// DescriptionService 账号详情，组织和角色名称同步解析
type DescriptionService struct {
	repo repo.IAccountRepository
	view *schema.ViewSchema
}

func NewDescriptionService(accountRepo repo.IAccountRepository, registry *schema.Registry) (*DescriptionService, error) {
	view, err := registry.Get(views.ViewAccount)
	if err != nil {
		return nil, err
	}
	return &DescriptionService{repo: accountRepo, view: view}, nil
}

func (ds *DescriptionService) Describe(ctx context.Context, accountId string, subject permission.Subject) ([]schema.DescEntry, error) {
	rec, err := ds.repo.GetAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}
	return schema.RenderDescription(ctx, ds.view.Description, rec, rec.Values(), views.Extras(subject)), nil
}
