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
	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/google/wire"
)

// ProviderSet 提供服务层相关的依赖
var ProviderSet = wire.NewSet(ProvideServices)

// ProvideServices 提供统一的 Services 实例
func ProvideServices(
	repos *repo.Repositories,
	c cache.ICache,
	resolverConf conf.Resolver,
	m *metrics.ConsoleMetrics,
) (*Services, func(), error) {
	s, err := NewServices(repos, c, resolverConf, m)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
