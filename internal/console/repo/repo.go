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
)

// ErrRecordNotFound 记录不存在，db 与 http 两种实现统一返回
var ErrRecordNotFound = errors.New("record not found")

type IAccountRepository interface {
	ListAccounts(ctx context.Context, q *model.AccountQuery) ([]model.AccountRecord, int64, error)
	GetAccount(ctx context.Context, id string) (*model.AccountRecord, error)
	ExistsAccount(ctx context.Context, account string) (bool, error)
	CreateAccount(ctx context.Context, rec *model.AccountRecord) error
	UpdateAccount(ctx context.Context, id string, updates map[string]any) error
	SetStatus(ctx context.Context, id string, status int) error
}

type IOrgRepository interface {
	GetOrgsByIds(ctx context.Context, ids []string) ([]model.Org, error)
}

type IRoleRepository interface {
	GetRolesByIds(ctx context.Context, ids []string) ([]model.Role, error)
}

type IPermissionRepository interface {
	GetPermissionsByAccountId(ctx context.Context, accountId string) ([]string, error)
}

type IMfApiRepository interface {
	ListMfApis(ctx context.Context, q *model.MfApiQuery) ([]model.MfApi, int64, error)
	GetMfApi(ctx context.Context, id string) (*model.MfApi, error)
	CreateMfApi(ctx context.Context, api *model.MfApi) error
	UpdateMfApi(ctx context.Context, id string, updates map[string]any) error
	DeleteMfApi(ctx context.Context, id string) error
}

// Repositories 统一管理所有 repository
type Repositories struct {
	Account    IAccountRepository
	Org        IOrgRepository
	Role       IRoleRepository
	Permission IPermissionRepository
	MfApi      IMfApiRepository
}

// NewRepositories gorm 实现
func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		Account:    NewAccountRepo(db),
		Org:        NewOrgRepo(db),
		Role:       NewRoleRepo(db),
		Permission: NewPermissionRepo(db),
		MfApi:      NewMfApiRepo(db),
	}
}

func init() {
	database.RegisterModels(
		&model.AccountRecord{},
		&model.Org{},
		&model.Role{},
		&model.AccountPermission{},
		&model.MfApi{},
	)
}

// SortByIds 按请求 id 顺序排列结果，缺失的 id 跳过
func SortByIds[T any](ids []string, items []T, idOf func(T) string) []T {
	index := make(map[string]T, len(items))
	for _, it := range items {
		index[idOf(it)] = it
	}
	out := make([]T, 0, len(items))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if it, ok := index[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
