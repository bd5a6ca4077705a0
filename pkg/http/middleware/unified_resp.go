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
	"github.com/go-arcade/console/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware 统一响应拦截器
// c.Locals(DETAIL, value) 用于设置响应数据
// c.Locals(OPERATION, "") 用于只返回操作结果
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status == 0 {
			c.Status(fiber.StatusOK)
			status = fiber.StatusOK
		}

		// 业务逻辑错误
		if status >= fiber.StatusBadRequest {
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return http.WithRepErrMsg(c, http.Failed.Code, http.Failed.Msg, c.Path())
		}

		if status >= fiber.StatusOK && status < fiber.StatusMultipleChoices {
			if detail := c.Locals(DETAIL); detail != nil {
				return http.WithRepJSON(c, detail)
			}
			// 业务逻辑正确, 无响应数据, 只返回结果
			if c.Locals(OPERATION) != nil {
				return http.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
