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
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/internal/console/client"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/internal/console/service"
	"github.com/go-arcade/console/internal/console/service/account"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/toggle"
	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/http/middleware"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/go-arcade/console/pkg/schema"
	"github.com/go-arcade/console/pkg/version"
	"github.com/go-arcade/console/pkg/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Router struct {
	Http     *http.Http
	Services *service.Services
	Metrics  *metrics.Server
	Hub      *ws.DefaultHub
}

func NewRouter(
	httpConf *http.Http,
	services *service.Services,
	metricsServer *metrics.Server,
	consoleMetrics *metrics.ConsoleMetrics,
) *Router {
	rt := &Router{
		Http:     httpConf,
		Services: services,
		Metrics:  metricsServer,
		Hub:      ws.NewHub(consoleMetrics.SetWsClients),
	}
	rt.forwardEvents()
	return rt
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Arcade Console",
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:             rt.Http.BodyLimit,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	})

	app.Use(
		middleware.RequestMiddleware(),
		middleware.CorsMiddleware(rt.Http),
		middleware.ExceptionMiddleware,
		middleware.AccessLogMiddleware(rt.Http),
		middleware.UnifiedResponseMiddleware(),
	)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey)
	api := app.Group(rt.Http.ContextPath)
	{
		rt.wsRouter(api, auth)
		rt.schemaRouter(api, auth)
		rt.accountRouter(api, auth)
		rt.lookupRouter(api, auth)
		rt.mfApiRouter(api, auth)
	}

	// 找不到路径时的处理，必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c, http.NotFound.Code, "request path not found", c.Path())
	})

	return app
}

// require 权限点校验
func (rt *Router) require(token string) fiber.Handler {
	return middleware.PermissionMiddleware(rt.Services.Checker.Allow, token)
}

// subject 当前操作人及其权限点
func (rt *Router) subject(c *fiber.Ctx) permission.Subject {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return permission.Subject{}
	}
	s, err := rt.Services.Checker.Subject(c.UserContext(), claims.UserId)
	if err != nil {
		log.Warnw("failed to load subject", "userId", claims.UserId, "error", err)
	}
	return s
}

// fail 将 service 错误映射为业务码，notFound 为资源不存在时使用的错误码
func fail(c *fiber.Ctx, err error, notFound *http.Response) error {
	var verrs schema.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.WithRepErrDetail(c, http.ValidationError.Code, verrs)
	case errors.Is(err, repo.ErrRecordNotFound):
		if notFound == nil {
			notFound = http.NotFound
		}
		return http.WithRepErr(c, notFound)
	case errors.Is(err, schema.ErrViewNotFound):
		return http.WithRepErr(c, http.ViewNotExist)
	case errors.Is(err, schema.ErrFormNotFound):
		return http.WithRepErr(c, http.FormNotExist)
	case errors.Is(err, toggle.ErrToggleForbidden):
		return http.WithRepErr(c, http.StatusProtected)
	case errors.Is(err, toggle.ErrTogglePending):
		return http.WithRepErr(c, http.StatusChangePending)
	case errors.Is(err, account.ErrAccountExists):
		return http.WithRepErr(c, http.AccountAlreadyExist)
	case errors.Is(err, account.ErrFieldReadonly):
		return http.WithRepErrMsg(c, http.Forbidden.Code, err.Error(), c.Path())
	case client.IsUpstreamError(err):
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	log.Errorw("request failed", "path", c.Path(), "error", err)
	return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
}

func badRequest(c *fiber.Ctx, err error) error {
	return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, err.Error(), c.Path())
}
