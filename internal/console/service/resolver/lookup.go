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

package resolver

import (
	"context"

	"github.com/go-arcade/console/internal/console/repo"
)

// OrgLabels 组织名称
func OrgLabels(orgs repo.IOrgRepository) LookupFunc {
	return func(ctx context.Context, ids []string) ([]string, error) {
		list, err := orgs.GetOrgsByIds(ctx, ids)
		if err != nil {
			return nil, err
		}
		labels := make([]string, 0, len(list))
		for _, o := range list {
			labels = append(labels, o.OrgName)
		}
		return labels, nil
	}
}

// RoleLabels 角色名称
func RoleLabels(roles repo.IRoleRepository) LookupFunc {
	return func(ctx context.Context, ids []string) ([]string, error) {
		list, err := roles.GetRolesByIds(ctx, ids)
		if err != nil {
			return nil, err
		}
		labels := make([]string, 0, len(list))
		for _, r := range list {
			labels = append(labels, r.RoleName)
		}
		return labels, nil
	}
}
