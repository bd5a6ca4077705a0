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

package service

import (
	"github.com/go-arcade/console/internal/console/conf"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/internal/console/service/account"
	"github.com/go-arcade/console/internal/console/service/description"
	"github.com/go-arcade/console/internal/console/service/mfapi"
	"github.com/go-arcade/console/internal/console/service/permission"
	"github.com/go-arcade/console/internal/console/service/resolver"
	"github.com/go-arcade/console/internal/console/service/toggle"
	"github.com/go-arcade/console/internal/console/views"
	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/go-arcade/console/pkg/schema"
)

// Services 统一管理所有 service
type Services struct {
	Account     *account.AccountService
	Description *description.DescriptionService
	MfApi       *mfapi.MfApiService

	Checker  *permission.Checker
	Toggle   *toggle.Controller
	Orgs     *resolver.Resolver
	Roles    *resolver.Resolver
	Registry *schema.Registry

	// 批量名称查询直接走 repository
	OrgRepo  repo.IOrgRepository
	RoleRepo repo.IRoleRepository
}

// NewServices 初始化所有 service
func NewServices(
	repos *repo.Repositories,
	c cache.ICache,
	resolverConf conf.Resolver,
	m *metrics.ConsoleMetrics,
) (*Services, error) {
	checker := permission.NewChecker(repos.Permission, c, resolverConf.TTL())
	toggleCtl := toggle.NewController(repos.Account, checker, m)

	opts := resolver.Options{
		Cache:   c,
		TTL:     resolverConf.TTL(),
		Timeout: resolverConf.Timeout(),
		Metrics: m,
	}
	orgs := resolver.New(resolver.KindOrg, resolver.OrgLabels(repos.Org), opts)
	roles := resolver.New(resolver.KindRole, resolver.RoleLabels(repos.Role), opts)

	registry, err := views.NewRegistry(views.Deps{
		Orgs:    orgs,
		Roles:   roles,
		Toggle:  toggleCtl,
		Checker: checker,
	})
	if err != nil {
		return nil, err
	}

	accountService, err := account.NewAccountService(repos.Account, toggleCtl, checker, registry)
	if err != nil {
		return nil, err
	}
	descriptionService, err := description.NewDescriptionService(repos.Account, registry)
	if err != nil {
		return nil, err
	}

	return &Services{
		Account:     accountService,
		Description: descriptionService,
		MfApi:       mfapi.NewMfApiService(repos.MfApi),
		Checker:     checker,
		Toggle:      toggleCtl,
		Orgs:        orgs,
		Roles:       roles,
		Registry:    registry,
		OrgRepo:     repos.Org,
		RoleRepo:    repos.Role,
	}, nil
}

// Close 等待后台名称刷新结束
func (s *Services) Close() {
	s.Orgs.Wait()
	s.Roles.Wait()
}
