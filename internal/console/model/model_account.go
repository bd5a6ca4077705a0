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

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/pkg/schema"
	"gorm.io/gorm"
)

// SuperAdminId 超级管理员账号，状态与组织角色不允许修改
const SuperAdminId = "1"

const (
	StatusEnabled  = 0
	StatusDisabled = 1

	SexFemale = 0
	SexMale   = 1
)

// AccountRecord 账号
type AccountRecord struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Account   string    `gorm:"column:account;not null;uniqueIndex;size:64" json:"account"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Nickname  string    `gorm:"column:nickname" json:"nickname"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Email     string    `gorm:"column:email" json:"email"`
	Telephone string    `gorm:"column:telephone" json:"telephone"`
	Birthday  string    `gorm:"column:birthday;size:10" json:"birthday"` // YYYY-MM-DD
	Sex       int       `gorm:"column:sex;not null;default:1" json:"sex"`
	Status    int       `gorm:"column:status;not null;default:0" json:"status"` // 0: enabled, 1: disabled
	OrgIds    []string  `gorm:"column:org_ids;type:json;serializer:json" json:"orgIds"`
	RoleIds   []string  `gorm:"column:role_ids;type:json;serializer:json" json:"roleIds"`
	Remark    string    `gorm:"column:remark" json:"remark"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	// PendingStatus 状态切换进行中，仅存在于内存
	PendingStatus bool `gorm:"-" json:"pendingStatus"`
}

func (a *AccountRecord) TableName() string {
	return "t_account"
}

// NewAccountRecord 创建账号记录，PendingStatus 显式置为 false
func NewAccountRecord(id, account string) *AccountRecord {
	return &AccountRecord{
		ID:            id,
		Account:       account,
		Sex:           SexMale,
		Status:        StatusEnabled,
		OrgIds:        []string{},
		RoleIds:       []string{},
		PendingStatus: false,
	}
}

// ResetTransient 重置非持久化字段，用于从存储或外部接口读取后
func (a *AccountRecord) ResetTransient() {
	a.PendingStatus = false
	if a.OrgIds == nil {
		a.OrgIds = []string{}
	}
	if a.RoleIds == nil {
		a.RoleIds = []string{}
	}
}

// AfterFind gorm 查询后重置非持久化字段
func (a *AccountRecord) AfterFind(tx *gorm.DB) error {
	a.ResetTransient()
	return nil
}

// UnmarshalJSON 外部输入的 pendingStatus 一律忽略
func (a *AccountRecord) UnmarshalJSON(data []byte) error {
	type record AccountRecord
	var r record
	if err := sonic.Unmarshal(data, &r); err != nil {
		return err
	}
	*a = AccountRecord(r)
	a.ResetTransient()
	return nil
}

func (a *AccountRecord) IsSuperAdmin() bool {
	return a.ID == SuperAdminId
}

// Values 转换为表单值，供 predicate 与渲染使用
func (a *AccountRecord) Values() schema.Values {
	return schema.Values{
		"id":            a.ID,
		"account":       a.Account,
		"nickname":      a.Nickname,
		"phone":         a.Phone,
		"email":         a.Email,
		"telephone":     a.Telephone,
		"birthday":      a.Birthday,
		"sex":           a.Sex,
		"status":        a.Status,
		"orgIds":        a.OrgIds,
		"roleIds":       a.RoleIds,
		"remark":        a.Remark,
		"pendingStatus": a.PendingStatus,
	}
}

// AccountQuery 账号列表查询，字段与 search 表单一致
type AccountQuery struct {
	Account  string `query:"account" json:"account"`
	Nickname string `query:"nickname" json:"nickname"`
	Phone    string `query:"phone" json:"phone"`
	Status   *int   `query:"status" json:"status" validate:"omitempty,oneof=0 1"`
	PageNum  int    `query:"pageNum" json:"pageNum"`
	PageSize int    `query:"pageSize" json:"pageSize"`
}

// Normalize 填充默认分页
func (q *AccountQuery) Normalize() {
	q.PageNum, q.PageSize = normalizePage(q.PageNum, q.PageSize)
}

// CreateAccountReq 新增账号
type CreateAccountReq struct {
	Account   string   `json:"account" validate:"required,max=64"`
	Password  string   `json:"password" validate:"required,min=6,max=64"`
	Nickname  string   `json:"nickname" validate:"max=64"`
	Phone     string   `json:"phone" validate:"omitempty,max=20"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Telephone string   `json:"telephone" validate:"omitempty,max=20"`
	Birthday  string   `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Sex       *int     `json:"sex" validate:"required,oneof=0 1"`
	Status    *int     `json:"status" validate:"required,oneof=0 1"`
	OrgIds    []string `json:"orgIds" validate:"required,min=1"`
	RoleIds   []string `json:"roleIds"`
	Remark    string   `json:"remark" validate:"max=255"`
}

// UpdateAccountReq 修改账号，nil 字段不更新
type UpdateAccountReq struct {
	Nickname  *string  `json:"nickname,omitempty" validate:"omitempty,max=64"`
	Phone     *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
	Telephone *string  `json:"telephone,omitempty" validate:"omitempty,max=20"`
	Birthday  *string  `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Sex       *int     `json:"sex,omitempty" validate:"omitempty,oneof=0 1"`
	Status    *int     `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	OrgIds    []string `json:"orgIds,omitempty"`
	RoleIds   []string `json:"roleIds,omitempty"`
	Remark    *string  `json:"remark,omitempty" validate:"omitempty,max=255"`
}

// Updates 转为 gorm 更新字段
func (r *UpdateAccountReq) Updates() map[string]any {
	updates := make(map[string]any)
	if r.Nickname != nil {
		updates["nickname"] = *r.Nickname
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Telephone != nil {
		updates["telephone"] = *r.Telephone
	}
	if r.Birthday != nil {
		updates["birthday"] = *r.Birthday
	}
	if r.Sex != nil {
		updates["sex"] = *r.Sex
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.OrgIds != nil {
		updates["org_ids"] = r.OrgIds
	}
	if r.RoleIds != nil {
		updates["role_ids"] = r.RoleIds
	}
	if r.Remark != nil {
		updates["remark"] = *r.Remark
	}
	return updates
}

// ToggleStatusReq 状态开关，checked 为开关切换后的位置
type ToggleStatusReq struct {
	Checked *bool `json:"checked" validate:"required"`
}
