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

package id

import (
	"strings"

	"github.com/google/uuid"
)

// New 记录主键，去掉横线的 32 位十六进制串
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewDashed 连接、请求等临时标识
func NewDashed() string {
	return uuid.NewString()
}

// Valid 外部传入的标识是否为合法 uuid，带不带横线都接受
func Valid(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
