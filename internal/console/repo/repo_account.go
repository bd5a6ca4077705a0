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
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/pkg/database"
	"gorm.io/gorm"
)

var accountColumns = []string{
	"id", "account", "nickname", "phone", "email", "telephone", "birthday",
	"sex", "status", "org_ids", "role_ids", "remark", "created_at", "updated_at",
}

type AccountRepo struct {
	database.IDatabase
}

func NewAccountRepo(db database.IDatabase) IAccountRepository {
	return &AccountRepo{
		IDatabase: db,
	}
}

// accountFilter search 表单条件
func accountFilter(q *model.AccountQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.Account != "" {
			tx = tx.Where("account LIKE ?", "%"+q.Account+"%")
		}
		if q.Nickname != "" {
			tx = tx.Where("nickname LIKE ?", "%"+q.Nickname+"%")
		}
		if q.Phone != "" {
			tx = tx.Where("phone LIKE ?", "%"+q.Phone+"%")
		}
		if q.Status != nil {
			tx = tx.Where("status = ?", *q.Status)
		}
		return tx
	}
}

// ListAccounts 账号列表（支持分页）
func (r *AccountRepo) ListAccounts(ctx context.Context, q *model.AccountQuery) ([]model.AccountRecord, int64, error) {
	var accounts []model.AccountRecord
	var count int64
	offset := (q.PageNum - 1) * q.PageSize

	db := database.ReadDB(r.Database().WithContext(ctx)).Model(&model.AccountRecord{}).Scopes(accountFilter(q)).Session(&gorm.Session{})
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Select(accountColumns).
		Offset(offset).Limit(q.PageSize).
		Order("created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, count, nil
}

// GetAccount 获取账号
func (r *AccountRepo) GetAccount(ctx context.Context, id string) (*model.AccountRecord, error) {
	var account model.AccountRecord
	err := r.Database().WithContext(ctx).Select(accountColumns).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) ExistsAccount(ctx context.Context, account string) (bool, error) {
	var count int64
	err := r.Database().WithContext(ctx).Model(&model.AccountRecord{}).Where("account = ?", account).Count(&count).Error
	return count > 0, err
}

// CreateAccount 创建账号
func (r *AccountRepo) CreateAccount(ctx context.Context, rec *model.AccountRecord) error {
	return r.Database().WithContext(ctx).Create(rec).Error
}

// UpdateAccount 根据ID更新账号
func (r *AccountRepo) UpdateAccount(ctx context.Context, id string, updates map[string]any) error {
	updates, err := encodeJSONColumns(updates)
	if err != nil {
		return err
	}
	var account model.AccountRecord
	res := r.Database().WithContext(ctx).Model(&account).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.existsOrNotFound(ctx, id)
	}
	return nil
}

// SetStatus 修改账号状态
func (r *AccountRepo) SetStatus(ctx context.Context, id string, status int) error {
	return r.UpdateAccount(ctx, id, map[string]any{"status": status})
}

// map 形式的 Updates 不走字段的 serializer，json 列需要自行编码
func encodeJSONColumns(updates map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(updates))
	for k, v := range updates {
		if k == "org_ids" || k == "role_ids" {
			data, err := sonic.MarshalString(v)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", k, err)
			}
			v = data
		}
		out[k] = v
	}
	return out, nil
}

// RowsAffected 为 0 时可能是值未变化，需要区分记录不存在
func (r *AccountRepo) existsOrNotFound(ctx context.Context, id string) error {
	var count int64
	if err := r.Database().WithContext(ctx).Model(&model.AccountRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecordNotFound
	}
	return nil
}
