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
	"github.com/go-arcade/console/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

// lookupRouter 按 id 批量查询组织和角色名称
func (rt *Router) lookupRouter(r fiber.Router, auth fiber.Handler) {
	r.Post("/orgs/batch", auth, rt.orgsByIds)
	r.Post("/roles/batch", auth, rt.rolesByIds)
}

func (rt *Router) orgsByIds(c *fiber.Ctx) error {
	var req model.BatchIdsReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := model.Validate(&req); err != nil {
		return fail(c, err, nil)
	}
	orgs, err := rt.Services.OrgRepo.GetOrgsByIds(c.UserContext(), req.Ids)
	if err != nil {
		return fail(c, err, nil)
	}
	if orgs == nil {
		orgs = []model.Org{}
	}
	c.Locals(middleware.DETAIL, orgs)
	return nil
}

func (rt *Router) rolesByIds(c *fiber.Ctx) error {
	var req model.BatchIdsReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := model.Validate(&req); err != nil {
		return fail(c, err, nil)
	}
	roles, err := rt.Services.RoleRepo.GetRolesByIds(c.UserContext(), req.Ids)
	if err != nil {
		return fail(c, err, nil)
	}
	if roles == nil {
		roles = []model.Role{}
	}
	c.Locals(middleware.DETAIL, roles)
	return nil
}
