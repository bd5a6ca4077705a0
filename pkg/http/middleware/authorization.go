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

package middleware

import (
	"errors"
	"strings"

	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/http/jwt"
	"github.com/go-arcade/console/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
)

// AuthorizationMiddleware 认证中间件
// 优先读取 Authorization: Bearer <token>，websocket 握手可以使用 ?token=
func AuthorizationMiddleware(secretKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(token, secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Warnw("parse token failed", "path", c.Path(), "error", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		c.Locals(CLAIMS, claims)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	if aToken := c.Get(fiber.HeaderAuthorization); aToken != "" {
		parts := strings.SplitN(aToken, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}
	// 浏览器 websocket 无法设置请求头，仅握手请求接受 query 中的 token
	if !websocket.IsWebSocketUpgrade(c) {
		return "", false
	}
	if q := c.Query("token"); q != "" {
		return q, true
	}
	return "", false
}

// GetClaims 返回认证中间件写入的 claims
func GetClaims(c *fiber.Ctx) (*jwt.AuthClaims, bool) {
	claims, ok := c.Locals(CLAIMS).(*jwt.AuthClaims)
	return claims, ok && claims != nil
}
