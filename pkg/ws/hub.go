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
	"slices"
	"sync"

	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/safe"
)

// DefaultHub 默认的连接管理器实现
type DefaultHub struct {
	conns map[string]Conn
	mu    sync.RWMutex

	// onCount 连接数变化时回调（用于指标）
	onCount func(n int)
}

// NewHub 创建一个新的连接管理器
func NewHub(onCount func(n int)) *DefaultHub {
	return &DefaultHub{
		conns:   make(map[string]Conn),
		onCount: onCount,
	}
}

func (h *DefaultHub) Register(conn Conn) {
	h.mu.Lock()
	h.conns[conn.ID()] = conn
	n := len(h.conns)
	h.mu.Unlock()
	h.notify(n)
}

func (h *DefaultHub) Unregister(conn Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn.ID()]
	delete(h.conns, conn.ID())
	n := len(h.conns)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
		h.notify(n)
	}
}

func (h *DefaultHub) notify(n int) {
	if h.onCount != nil {
		h.onCount(n)
	}
}

// BroadcastJSON 异步写入每个连接，写失败的连接被注销
func (h *DefaultHub) BroadcastJSON(v any) {
	h.BroadcastJSONIf(v, nil)
}

// BroadcastJSONIf 只写入 allow 返回 true 的连接，allow 为 nil 时等同 BroadcastJSON
func (h *DefaultHub) BroadcastJSONIf(v any, allow func(Conn) bool) {
	h.mu.RLock()
	conns := make([]Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	if allow != nil {
		conns = slices.DeleteFunc(conns, func(c Conn) bool { return !allow(c) })
	}

	for _, c := range conns {
		safe.GoWith(func(c Conn) {
			if err := c.WriteJSON(v); err != nil {
				log.Debugw("websocket write failed, dropping connection", "conn", c.ID(), "error", err)
				h.Unregister(c)
			}
		}, c)
	}
}

func (h *DefaultHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
