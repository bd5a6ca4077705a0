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

package repo

import (
	"context"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/pkg/database"
)

type OrgRepo struct {
	database.IDatabase
}

func NewOrgRepo(db database.IDatabase) IOrgRepository {
	return &OrgRepo{
		IDatabase: db,
	}
}

// GetOrgsByIds 根据组织ID列表获取组织，按 ids 顺序返回
func (r *OrgRepo) GetOrgsByIds(ctx context.Context, ids []string) ([]model.Org, error) {
	if len(ids) == 0 {
		return []model.Org{}, nil
	}
	var orgs []model.Org
	err := database.ReadDB(r.Database().WithContext(ctx)).
		Select("id", "org_name").
		Where("id IN ?", ids).Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return SortByIds(ids, orgs, func(o model.Org) string { return o.ID }), nil
}

type RoleRepo struct {
	database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{
		IDatabase: db,
	}
}

// GetRolesByIds 根据角色ID列表获取角色，按 ids 顺序返回
func (r *RoleRepo) GetRolesByIds(ctx context.Context, ids []string) ([]model.Role, error) {
	if len(ids) == 0 {
		return []model.Role{}, nil
	}
	var roles []model.Role
	err := database.ReadDB(r.Database().WithContext(ctx)).
		Select("id", "role_name").
		Where("id IN ?", ids).Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return SortByIds(ids, roles, func(o model.Role) string { return o.ID }), nil
}

type PermissionRepo struct {
	database.IDatabase
}

func NewPermissionRepo(db database.IDatabase) IPermissionRepository {
	return &PermissionRepo{
		IDatabase: db,
	}
}

// GetPermissionsByAccountId 账号的权限点
func (r *PermissionRepo) GetPermissionsByAccountId(ctx context.Context, accountId string) ([]string, error) {
	var perms []string
	err := database.ReadDB(r.Database().WithContext(ctx)).
		Model(&model.AccountPermission{}).
		Where("account_id = ?", accountId).
		Pluck("permission", &perms).Error
	return perms, err
}
