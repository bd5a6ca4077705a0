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

// Package toggle implements the optimistic status switch: the record is
// marked pending, the backend is asked to change the status, and the
// record is only updated once the backend confirms.
package toggle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/metrics"
)

var (
	ErrToggleForbidden = errors.New("status toggle not allowed")
	ErrTogglePending   = errors.New("status toggle already in progress")
)

const (
	resultSuccess   = "success"
	resultFailed    = "failed"
	resultForbidden = "forbidden"
	resultPending   = "pending"
)

// StatusUpdater 后端状态修改接口
type StatusUpdater interface {
	SetStatus(ctx context.Context, id string, status int) error
}

// Event pending 状态变化通知
type Event struct {
	ID      string `json:"id"`
	Pending bool   `json:"pending"`
	Status  int    `json:"status"`
}

type Controller struct {
	updater  StatusUpdater
	checker  *permission.Checker
	metrics  *metrics.ConsoleMetrics
	inflight sync.Map // id -> struct{}

	mu        sync.RWMutex
	listeners []func(Event)
}

func NewController(updater StatusUpdater, checker *permission.Checker, m *metrics.ConsoleMetrics) *Controller {
	return &Controller{
		updater: updater,
		checker: checker,
		metrics: m,
	}
}

// TargetStatus 开关打开为启用(0)，关闭为停用(1)
func TargetStatus(checked bool) int {
	if checked {
		return model.StatusEnabled
	}
	return model.StatusDisabled
}

// Controllable 超级管理员或无 sys:account:update 权限时不可操作
func (c *Controller) Controllable(ctx context.Context, rec *model.AccountRecord, subject permission.Subject) bool {
	if rec == nil || c.checker.IsSuperAdmin(rec.ID) {
		return false
	}
	return c.checker.HasPermission(ctx, subject, permission.AccountUpdate)
}

// Pending 该记录是否有进行中的切换
func (c *Controller) Pending(id string) bool {
	_, ok := c.inflight.Load(id)
	return ok
}

// OnPending 注册 pending 变化监听
func (c *Controller) OnPending(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) notify(ev Event) {
	c.mu.RLock()
	listeners := c.listeners
	c.mu.RUnlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

// Toggle 切换账号状态
// 成功后 rec.Status 为目标状态；失败时状态不变并返回错误；两种情况下 PendingStatus 都会被清除
func (c *Controller) Toggle(ctx context.Context, rec *model.AccountRecord, checked bool, subject permission.Subject) error {
	if !c.Controllable(ctx, rec, subject) {
		c.metrics.ObserveToggle(resultForbidden)
		return ErrToggleForbidden
	}
	if _, loaded := c.inflight.LoadOrStore(rec.ID, struct{}{}); loaded {
		c.metrics.ObserveToggle(resultPending)
		return ErrTogglePending
	}

	target := TargetStatus(checked)
	rec.PendingStatus = true
	c.notify(Event{ID: rec.ID, Pending: true, Status: rec.Status})

	defer func() {
		rec.PendingStatus = false
		c.inflight.Delete(rec.ID)
		c.notify(Event{ID: rec.ID, Pending: false, Status: rec.Status})
	}()

	if err := c.updater.SetStatus(ctx, rec.ID, target); err != nil {
		c.metrics.ObserveToggle(resultFailed)
		log.Errorw("set account status failed",
			"id", rec.ID,
			"target", target,
			"error", err,
		)
		return fmt.Errorf("set status of account %s: %w", rec.ID, err)
	}

	rec.Status = target
	c.metrics.ObserveToggle(resultSuccess)
	log.Infow("account status changed", "id", rec.ID, "status", target, "operator", subject.UserId)
	return nil
}
