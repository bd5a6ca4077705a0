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

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/pkg/database"
	"gorm.io/gorm"
)

type MfApiRepo struct {
	database.IDatabase
}

func NewMfApiRepo(db database.IDatabase) IMfApiRepository {
	return &MfApiRepo{
		IDatabase: db,
	}
}

func mfApiFilter(q *model.MfApiQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("del_flag = ?", 0)
		if q.Name != "" {
			tx = tx.Where("name LIKE ?", "%"+q.Name+"%")
		}
		if q.SourceType != "" {
			tx = tx.Where("source_type = ?", q.SourceType)
		}
		if q.FolderId != "" {
			tx = tx.Where("folder_id = ?", q.FolderId)
		}
		return tx
	}
}

// ListMfApis API 列表（支持分页）
func (r *MfApiRepo) ListMfApis(ctx context.Context, q *model.MfApiQuery) ([]model.MfApi, int64, error) {
	var apis []model.MfApi
	var count int64
	offset := (q.PageNum - 1) * q.PageSize

	db := database.ReadDB(r.Database().WithContext(ctx)).Model(&model.MfApi{}).Scopes(mfApiFilter(q)).Session(&gorm.Session{})
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(offset).Limit(q.PageSize).
		Order("create_time DESC").
		Find(&apis).Error; err != nil {
		return nil, 0, err
	}
	return apis, count, nil
}

func (r *MfApiRepo) GetMfApi(ctx context.Context, id string) (*model.MfApi, error) {
	var api model.MfApi
	err := r.Database().WithContext(ctx).Where("id = ? AND del_flag = ?", id, 0).First(&api).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &api, nil
}

func (r *MfApiRepo) CreateMfApi(ctx context.Context, api *model.MfApi) error {
	return r.Database().WithContext(ctx).Create(api).Error
}

func (r *MfApiRepo) UpdateMfApi(ctx context.Context, id string, updates map[string]any) error {
	res := r.Database().WithContext(ctx).Model(&model.MfApi{}).
		Where("id = ? AND del_flag = ?", id, 0).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetMfApi(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMfApi 软删除，设置 del_flag=1
func (r *MfApiRepo) DeleteMfApi(ctx context.Context, id string) error {
	res := r.Database().WithContext(ctx).Model(&model.MfApi{}).
		Where("id = ? AND del_flag = ?", id, 0).Update("del_flag", 1)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
