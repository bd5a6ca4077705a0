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

package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-arcade/console/pkg/schema"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// 错误字段使用 json 名称，与表单 field 一致
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate 校验请求结构体，错误转换为 schema.ValidationErrors
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return err
	}
	out := make(schema.ValidationErrors, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		out = append(out, schema.FieldError{
			Field: e.Field(),
			Msg:   validationMessage(e),
		})
	}
	return out
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "email":
		return "must be a valid email"
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}
