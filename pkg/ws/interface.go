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

package ws

import (
	"context"
	"errors"
)

// ErrConnectionClosed 连接已关闭后继续写入
var ErrConnectionClosed = errors.New("websocket connection closed")

// Conn 单个客户端连接，WriteJSON 可并发调用
type Conn interface {
	ID() string
	WriteJSON(v any) error
	Close() error
	// Context 握手时构造，携带当前用户
	Context() context.Context
}

// Hub 连接管理，服务端事件通过 BroadcastJSON 推送
type Hub interface {
	Register(conn Conn)
	Unregister(conn Conn)
	BroadcastJSON(v any)
	BroadcastJSONIf(v any, allow func(Conn) bool)
	Count() int
}

// Handler 可选，客户端上行消息处理；为 nil 时只推送不处理
type Handler interface {
	OnConnect(conn Conn) error
	OnMessage(conn Conn, messageType int, data []byte) error
	OnDisconnect(conn Conn, err error)
}
