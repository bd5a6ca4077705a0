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

package router

import (
	"context"

	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/resolver"
	"github.com/go-arcade/console/internal/console/service/toggle"
	"github.com/go-arcade/console/pkg/http/jwt"
	"github.com/go-arcade/console/pkg/http/middleware"
	"github.com/go-arcade/console/pkg/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	EventLabels  = "labels"
	EventPending = "pending"
)

// Message websocket 推送消息，收到后前端重新渲染对应行
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// wsRouter 推送内容包含账号的组织与角色，需要账号查看权限
func (rt *Router) wsRouter(r fiber.Router, auth fiber.Handler) {
	r.Get("/ws", auth, rt.require(permission.AccountView), ws.Upgrade, ws.Handle(rt.Hub, nil, func(wsConn *websocket.Conn) context.Context {
		ctx := context.Background()
		if claims, ok := wsConn.Locals(middleware.CLAIMS).(*jwt.AuthClaims); ok {
			ctx = permission.WithSubject(ctx, permission.Subject{UserId: claims.UserId})
		}
		return ctx
	}))
}

// forwardEvents 名称解析结果与开关状态变化推送给仍有账号查看权限的连接
func (rt *Router) forwardEvents() {
	if rt.Services == nil {
		return
	}
	onLabels := func(ev resolver.Event) {
		rt.Hub.BroadcastJSONIf(Message{Type: EventLabels, Data: ev}, rt.canViewAccounts)
	}
	rt.Services.Orgs.OnResolved(onLabels)
	rt.Services.Roles.OnResolved(onLabels)
	rt.Services.Toggle.OnPending(func(ev toggle.Event) {
		rt.Hub.BroadcastJSONIf(Message{Type: EventPending, Data: ev}, rt.canViewAccounts)
	})
}

// canViewAccounts 握手后权限可能被收回，推送前按连接重新校验
func (rt *Router) canViewAccounts(conn ws.Conn) bool {
	ctx := conn.Context()
	subject := permission.FromContext(ctx)
	if subject.UserId == "" {
		return false
	}
	return rt.Services.Checker.Allow(ctx, subject.UserId, permission.AccountView)
}
