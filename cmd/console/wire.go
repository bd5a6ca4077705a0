//go:build wireinject
// +build wireinject

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

package main

import (
	"github.com/go-arcade/console/internal/console/backend"
	"github.com/go-arcade/console/internal/console/bootstrap"
	"github.com/go-arcade/console/internal/console/conf"
	"github.com/go-arcade/console/internal/console/router"
	"github.com/go-arcade/console/internal/console/service"
	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		conf.ProviderSet,
		// 日志
		log.ProviderSet,
		// 缓存层
		cache.ProviderSet,
		// 指标
		metrics.ProviderSet,
		// 仓储层（db 或 http）
		backend.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
