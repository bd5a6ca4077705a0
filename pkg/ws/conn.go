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
	"sync"
	"time"

	"github.com/go-arcade/console/pkg/id"
	"github.com/go-arcade/console/pkg/safe"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	readLimit  = 64 * 1024
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10 // 应该小于 pongWait
	writeWait  = 10 * time.Second
)

// conn wraps a fiber websocket. Writes are serialised by writeMu.
type conn struct {
	ws        *websocket.Conn
	id        string
	ctx       context.Context
	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(wsConn *websocket.Conn, ctx context.Context) *conn {
	return &conn{
		ws:     wsConn,
		id:     id.NewDashed(),
		ctx:    ctx,
		closed: make(chan struct{}),
	}
}

func (c *conn) ID() string {
	return c.id
}

func (c *conn) Context() context.Context {
	return c.ctx
}

func (c *conn) WriteJSON(v any) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.ws.Close()
	})
	return err
}

// Upgrade rejects non websocket requests before Handle
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle 处理 WebSocket 连接，ctxFunc 从 fiber locals 构造连接上下文
func Handle(hub Hub, handler Handler, ctxFunc func(wsConn *websocket.Conn) context.Context) fiber.Handler {
	return websocket.New(func(wsConn *websocket.Conn) {
		ctx := context.Background()
		if ctxFunc != nil {
			ctx = ctxFunc(wsConn)
		}
		conn := newConn(wsConn, ctx)

		wsConn.SetReadLimit(readLimit)
		_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
		wsConn.SetPongHandler(func(string) error {
			return wsConn.SetReadDeadline(time.Now().Add(pongWait))
		})

		hub.Register(conn)
		if handler != nil {
			if err := handler.OnConnect(conn); err != nil {
				hub.Unregister(conn)
				handler.OnDisconnect(conn, err)
				return
			}
		}

		safe.Go(func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := conn.ping(); err != nil {
						return
					}
				case <-conn.closed:
					return
				}
			}
		})

		var readErr error
		for {
			messageType, message, err := wsConn.ReadMessage()
			if err != nil {
				readErr = err
				break
			}
			_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
			if handler != nil {
				if err := handler.OnMessage(conn, messageType, message); err != nil {
					readErr = err
					break
				}
			}
		}

		hub.Unregister(conn)
		_ = conn.Close()
		if handler != nil {
			handler.OnDisconnect(conn, readErr)
		}
	})
}
