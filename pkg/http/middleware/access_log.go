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
	"strings"
	"time"

	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// tips: 这里的路径是不需要记录日志的路径，url为端口后的全部路径
var excludedPaths = []string{
	"/health",
	"/metrics",
	"/api/v1/ws",
}

// AccessLogMiddleware 访问日志
func AccessLogMiddleware(httpConf *http.Http) fiber.Handler {
	if httpConf != nil && !httpConf.AccessLog {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		if skipAccessLog(c.Path()) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		log.Infow("HTTP request",
			"request_id", c.Locals(REQUEST_ID),
			"method", c.Method(),
			"path", c.Path(),
			"query", string(c.Request().URI().QueryString()),
			"status", c.Response().StatusCode(),
			"ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
			"latency", time.Since(start).String(),
		)
		return err
	}
}

func skipAccessLog(path string) bool {
	for _, rule := range excludedPaths {
		if prefix, ok := strings.CutSuffix(rule, "/*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if path == rule {
			return true
		}
	}
	return false
}
