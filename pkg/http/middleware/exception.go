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
	"runtime/debug"

	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware 捕获 panic，返回 InternalError 信封
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic recovered", "path", c.Path(), "panic", r, "stack", string(debug.Stack()))
			err = http.WithRepErrMsg(c, http.InternalError.Code, errorToString(r), c.Path())
		}
	}()

	return c.Next()
}

func errorToString(r any) string {
	switch v := r.(type) {
	case http.ResponseErr:
		// 符合预期的错误，可以直接返回给客户端
		if errMsg, ok := v.ErrMsg.(string); ok {
			return errMsg
		}
		return http.InternalError.Msg
	case string:
		return v
	default:
		// 一律返回服务器错误，避免返回堆栈错误给客户端
		return http.InternalError.Msg
	}
}
