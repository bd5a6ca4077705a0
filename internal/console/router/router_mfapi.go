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
	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) mfApiRouter(r fiber.Router, auth fiber.Handler) {
	mfApiGroup := r.Group("/mf-apis", auth)
	{
		mfApiGroup.Get("/", rt.require(permission.MfApiView), rt.listMfApis)
		mfApiGroup.Post("/", rt.require(permission.MfApiEdit), rt.createMfApi)
		mfApiGroup.Get("/:id", rt.require(permission.MfApiView), rt.getMfApi)
		mfApiGroup.Put("/:id", rt.require(permission.MfApiEdit), rt.updateMfApi)
		mfApiGroup.Delete("/:id", rt.require(permission.MfApiEdit), rt.deleteMfApi)
	}
}

func (rt *Router) listMfApis(c *fiber.Ctx) error {
	var q model.MfApiQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, err)
	}
	page, err := rt.Services.MfApi.List(c.UserContext(), &q)
	if err != nil {
		return fail(c, err, nil)
	}
	c.Locals(middleware.DETAIL, page)
	return nil
}

func (rt *Router) getMfApi(c *fiber.Ctx) error {
	api, err := rt.Services.MfApi.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, http.MfApiNotExist)
	}
	c.Locals(middleware.DETAIL, api)
	return nil
}

func (rt *Router) createMfApi(c *fiber.Ctx) error {
	var req model.MfApiReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	claims, _ := middleware.GetClaims(c)
	api, err := rt.Services.MfApi.Create(c.UserContext(), &req, claims.UserId)
	if err != nil {
		return fail(c, err, nil)
	}
	c.Locals(middleware.DETAIL, api)
	return nil
}

func (rt *Router) updateMfApi(c *fiber.Ctx) error {
	var req model.MfApiReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := rt.Services.MfApi.Update(c.UserContext(), c.Params("id"), &req); err != nil {
		return fail(c, err, http.MfApiNotExist)
	}
	c.Locals(middleware.OPERATION, "")
	return nil
}

func (rt *Router) deleteMfApi(c *fiber.Ctx) error {
	if err := rt.Services.MfApi.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, http.MfApiNotExist)
	}
	c.Locals(middleware.OPERATION, "")
	return nil
}
