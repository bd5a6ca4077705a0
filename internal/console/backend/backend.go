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

// Package backend selects where accounts, orgs, roles and apis come from:
// the console's own MySQL schema or an upstream admin API.
package backend

import (
	"fmt"

	"github.com/go-arcade/console/internal/console/client"
	"github.com/go-arcade/console/internal/console/conf"
	"github.com/go-arcade/console/internal/console/repo"
	"github.com/go-arcade/console/pkg/database"
	"github.com/go-arcade/console/pkg/log"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(ProvideRepositories)

// ProvideRepositories 根据 backend.mode 构建 repositories，db 模式才会连接数据库
func ProvideRepositories(backend conf.Backend, dbConf database.Database, upstream conf.Upstream) (*repo.Repositories, func(), error) {
	switch backend.Mode {
	case "", conf.BackendDB:
		db, cleanup, err := database.ProvideGormDB(dbConf)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("backend selected", "mode", conf.BackendDB)
		return repo.NewRepositories(db), cleanup, nil
	case conf.BackendHttp:
		log.Infow("backend selected", "mode", conf.BackendHttp, "baseUrl", upstream.BaseUrl)
		return client.NewRepositories(client.New(upstream)), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend mode: %s", backend.Mode)
	}
}
