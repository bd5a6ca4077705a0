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

// Package views declares the schema sets served to the console UI.
package views

import (
	"fmt"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/resolver"
	"github.com/go-arcade/console/internal/console/service/toggle"
	"github.com/go-arcade/console/pkg/schema"
)

const (
	ViewAccount = "account"
	ViewMfApi   = "mfApi"

	// ExtraSubject RenderContext.Extras 中的当前操作人
	ExtraSubject = "subject"
)

// Deps 渲染回调使用的服务，CLI 导出 schema 时可以为空
type Deps struct {
	Orgs    *resolver.Resolver
	Roles   *resolver.Resolver
	Toggle  *toggle.Controller
	Checker *permission.Checker
}

// Funcs 表达式可用的函数
var Funcs = schema.ExprFuncs{
	"isSuperAdmin": func(params ...any) (any, error) {
		if len(params) != 1 {
			return false, fmt.Errorf("isSuperAdmin expects 1 argument, got %d", len(params))
		}
		return fmt.Sprint(params[0]) == model.SuperAdminId, nil
	},
}

// Extras 构造渲染参数
func Extras(subject permission.Subject) map[string]any {
	return map[string]any{ExtraSubject: subject}
}

func subjectOf(extras map[string]any) permission.Subject {
	s, _ := extras[ExtraSubject].(permission.Subject)
	return s
}

// NewRegistry 注册全部视图
func NewRegistry(deps Deps) (*schema.Registry, error) {
	account, err := Account(deps)
	if err != nil {
		return nil, err
	}
	mfApi, err := MfApi()
	if err != nil {
		return nil, err
	}

	reg := schema.NewRegistry()
	for _, v := range []*schema.ViewSchema{account, mfApi} {
		if err := reg.Register(v); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
