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
	"github.com/go-arcade/console/internal/console/service"
	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
)

// ProviderSet 提供路由层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideRouter,
	ProvideApp,
)

func ProvideRouter(
	httpConf *http.Http,
	services *service.Services,
	metricsServer *metrics.Server,
	consoleMetrics *metrics.ConsoleMetrics,
) *Router {
	return NewRouter(httpConf, services, metricsServer, consoleMetrics)
}

// ProvideApp 提供 fiber 应用
func ProvideApp(rt *Router) *fiber.App {
	return rt.Router()
}
