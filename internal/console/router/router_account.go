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

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/toggle"
	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) accountRouter(r fiber.Router, auth fiber.Handler) {
	accountGroup := r.Group("/accounts", auth)
	{
		accountGroup.Get("/", rt.require(permission.AccountView), rt.listAccounts)
		accountGroup.Post("/", rt.require(permission.AccountAdd), rt.createAccount)
		accountGroup.Get("/:id", rt.require(permission.AccountView), rt.getAccount)
		accountGroup.Get("/:id/desc", rt.require(permission.AccountView), rt.describeAccount)
		accountGroup.Put("/:id", rt.require(permission.AccountUpdate), rt.updateAccount)
		// 开关是否可操作由 toggle 判断，这里不挂权限中间件
		accountGroup.Put("/:id/status", rt.toggleStatus)
	}
}

func (rt *Router) listAccounts(c *fiber.Ctx) error {
	var q model.AccountQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, err)
	}

	page, err := rt.Services.Account.List(c.UserContext(), &q, rt.subject(c))
	if err != nil {
		return fail(c, err, http.AccountNotExist)
	}
	c.Locals(middleware.DETAIL, page)
	return nil
}

func (rt *Router) getAccount(c *fiber.Ctx) error {
	rec, err := rt.Services.Account.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, http.AccountNotExist)
	}
	c.Locals(middleware.DETAIL, rec)
	return nil
}

func (rt *Router) describeAccount(c *fiber.Ctx) error {
	entries, err := rt.Services.Description.Describe(c.UserContext(), c.Params("id"), rt.subject(c))
	if err != nil {
		return fail(c, err, http.AccountNotExist)
	}
	c.Locals(middleware.DETAIL, entries)
	return nil
}

func (rt *Router) createAccount(c *fiber.Ctx) error {
	var req model.CreateAccountReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	claims, _ := middleware.GetClaims(c)
	rec, err := rt.Services.Account.Create(c.UserContext(), &req, claims.UserId)
	if err != nil {
		return fail(c, err, nil)
	}
	c.Locals(middleware.DETAIL, rec)
	return nil
}

func (rt *Router) updateAccount(c *fiber.Ctx) error {
	var req model.UpdateAccountReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	if err := rt.Services.Account.Update(c.UserContext(), c.Params("id"), &req, rt.subject(c)); err != nil {
		return fail(c, err, http.AccountNotExist)
	}
	c.Locals(middleware.OPERATION, "")
	return nil
}

func (rt *Router) toggleStatus(c *fiber.Ctx) error {
	var req model.ToggleStatusReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := model.Validate(&req); err != nil {
		return fail(c, err, nil)
	}

	rec, err := rt.Services.Account.ToggleStatus(c.UserContext(), c.Params("id"), *req.Checked, rt.subject(c))
	switch {
	case err == nil:
		c.Locals(middleware.DETAIL, rec)
		return nil
	case errors.Is(err, toggle.ErrToggleForbidden), errors.Is(err, toggle.ErrTogglePending), rec == nil:
		return fail(c, err, http.AccountNotExist)
	default:
		// 状态保持原值，由前端回滚开关
		return http.WithRepErrMsg(c, http.StatusUpdateFailed.Code, err.Error(), c.Path())
	}
}
