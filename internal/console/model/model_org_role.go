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

package model

// Org 组织
type Org struct {
	ID      string `gorm:"column:id;primaryKey;size:64" json:"id"`
	OrgName string `gorm:"column:org_name;not null" json:"orgName"`
}

func (o *Org) TableName() string {
	return "t_org"
}

// Role 角色
type Role struct {
	ID       string `gorm:"column:id;primaryKey;size:64" json:"id"`
	RoleName string `gorm:"column:role_name;not null" json:"roleName"`
}

func (r *Role) TableName() string {
	return "t_role"
}

// AccountPermission 账号拥有的权限点，如 sys:account:update
type AccountPermission struct {
	AccountId  string `gorm:"column:account_id;primaryKey;size:64" json:"accountId"`
	Permission string `gorm:"column:permission;primaryKey;size:128" json:"permission"`
}

func (p *AccountPermission) TableName() string {
	return "t_account_permission"
}

// BatchIdsReq 批量查询
type BatchIdsReq struct {
	Ids []string `json:"ids" validate:"required,min=1,max=500"`
}
