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

	"github.com/go-arcade/console/pkg/http/middleware"
	"github.com/go-arcade/console/pkg/schema"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) schemaRouter(r fiber.Router, auth fiber.Handler) {
	schemaGroup := r.Group("/schemas", auth)
	{
		schemaGroup.Get("/", rt.listSchemas)
		schemaGroup.Get("/:view", rt.getSchema)
		schemaGroup.Post("/:view/form/:form/evaluate", rt.evaluateForm)
	}
}

// EvaluateResp 表单求值结果，errors 仅在 ?validate=true 时返回
type EvaluateResp struct {
	Fields []schema.FieldState     `json:"fields"`
	Errors schema.ValidationErrors `json:"errors,omitempty"`
}

func (rt *Router) listSchemas(c *fiber.Ctx) error {
	c.Locals(middleware.DETAIL, rt.Services.Registry.Names())
	return nil
}

func (rt *Router) getSchema(c *fiber.Ctx) error {
	view, err := rt.Services.Registry.Get(c.Params("view"))
	if err != nil {
		return fail(c, err, nil)
	}
	c.Locals(middleware.DETAIL, view)
	return nil
}

func (rt *Router) evaluateForm(c *fiber.Ctx) error {
	fields, err := rt.Services.Registry.Form(c.Params("view"), c.Params("form"))
	if err != nil {
		return fail(c, err, nil)
	}

	values := schema.Values{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&values); err != nil {
			return badRequest(c, err)
		}
	}

	resp := EvaluateResp{Fields: schema.EvaluateForm(fields, values)}
	if c.QueryBool("validate") {
		var verrs schema.ValidationErrors
		if err := schema.Validate(fields, values); errors.As(err, &verrs) {
			resp.Errors = verrs
		}
	}
	c.Locals(middleware.DETAIL, resp)
	return nil
}
