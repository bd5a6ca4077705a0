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

package views

import (
	_ "embed"
	"fmt"

	"github.com/go-arcade/console/pkg/schema"
)

//go:embed mfapi.yaml
var mfApiYAML []byte

// MfApi 自定义API视图
func MfApi() (*schema.ViewSchema, error) {
	v, err := schema.LoadYAML(mfApiYAML, Funcs)
	if err != nil {
		return nil, fmt.Errorf("load mfApi view: %w", err)
	}
	return v, nil
}
