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

package permission

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/log"
)

// 权限点
const (
	AccountView   = "sys:account:view"
	AccountAdd    = "sys:account:add"
	AccountUpdate = "sys:account:update"
	MfApiView     = "nocode:mfapi:view"
	MfApiEdit     = "nocode:mfapi:edit"
)

const permissionCacheKey = "console:permission:%s"

// Subject 当前操作人及其权限点
type Subject struct {
	UserId      string   `json:"userId"`
	Permissions []string `json:"permissions"`
}

// Has 权限点匹配，仅做精确比较
func (s Subject) Has(token string) bool {
	return slices.Contains(s.Permissions, token)
}

type subjectKey struct{}

func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, s)
}

// FromContext 未设置时返回空 Subject，没有任何权限
func FromContext(ctx context.Context) Subject {
	s, _ := ctx.Value(subjectKey{}).(Subject)
	return s
}

// Checker 权限校验，权限点列表经 cache 缓存
type Checker struct {
	perms *cache.CachedQuery[[]string]
	repo  repo.IPermissionRepository
}

func NewChecker(permRepo repo.IPermissionRepository, c cache.ICache, ttl time.Duration) *Checker {
	keyFunc := func(params ...any) string {
		return fmt.Sprintf(permissionCacheKey, params...)
	}
	return &Checker{
		repo: permRepo,
		perms: cache.NewCachedQuery[[]string](c, keyFunc, nil,
			cache.WithTTL[[]string](ttl),
			cache.WithLogPrefix[[]string]("[Permission]"),
		),
	}
}

// IsSuperAdmin 同步判断，不访问存储
func (c *Checker) IsSuperAdmin(id string) bool {
	return id == model.SuperAdminId
}

// HasPermission 超级管理员拥有全部权限
func (c *Checker) HasPermission(ctx context.Context, subject Subject, token string) bool {
	if c.IsSuperAdmin(subject.UserId) {
		return true
	}
	return subject.Has(token)
}

// Subject 加载用户权限点
func (c *Checker) Subject(ctx context.Context, userId string) (Subject, error) {
	perms, err := c.perms.GetOrSet(ctx, func(ctx context.Context) ([]string, error) {
		return c.repo.GetPermissionsByAccountId(ctx, userId)
	}, userId)
	if err != nil {
		return Subject{UserId: userId}, err
	}
	return Subject{UserId: userId, Permissions: perms}, nil
}

// Allow 适配 middleware.PermissionFunc
func (c *Checker) Allow(ctx context.Context, userId, token string) bool {
	if c.IsSuperAdmin(userId) {
		return true
	}
	subject, err := c.Subject(ctx, userId)
	if err != nil {
		log.Warnw("load permissions failed", "userId", userId, "error", err)
		return false
	}
	return c.HasPermission(ctx, subject, token)
}

// Invalidate 权限变更后清除缓存
func (c *Checker) Invalidate(ctx context.Context, userId string) error {
	return c.perms.Invalidate(ctx, userId)
}
