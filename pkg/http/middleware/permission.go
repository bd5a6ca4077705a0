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
	"context"

	"github.com/go-arcade/console/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// PermissionFunc reports whether userId holds the capability token
type PermissionFunc func(ctx context.Context, userId, token string) bool

// PermissionMiddleware 权限点校验，必须挂在 AuthorizationMiddleware 之后
func PermissionMiddleware(has PermissionFunc, token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok {
			return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
		}
		if !has(c.UserContext(), claims.UserId, token) {
			return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg+": "+token, c.Path())
		}
		return c.Next()
	}
}
