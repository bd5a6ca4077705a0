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

package conf

import (
	"time"

	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/database"
	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/google/wire"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideCacheConfig,
	ProvideMetricsConfig,
	ProvideBackendConfig,
	ProvideUpstreamConfig,
	ProvideResolverConfig,
)

// ProvideConf 提供应用配置
func ProvideConf(configPath string) *AppConfig {
	return NewConf(configPath)
}

// ProvideHttpConfig 提供 HTTP 配置
func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	httpConfig := &appConf.Http
	httpConfig.SetDefaults()
	return httpConfig
}

// ProvideLogConfig 提供日志配置
func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

// ProvideDatabaseConfig 提供数据库配置
func ProvideDatabaseConfig(appConf *AppConfig) database.Database {
	return appConf.Database
}

// ProvideRedisConfig 提供 Redis 配置
func ProvideRedisConfig(appConf *AppConfig) cache.Redis {
	return appConf.Redis
}

// ProvideCacheConfig 提供缓存配置
func ProvideCacheConfig(appConf *AppConfig) cache.Conf {
	return appConf.Cache
}

// ProvideMetricsConfig 提供 Metrics 配置
func ProvideMetricsConfig(appConf *AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}

func ProvideBackendConfig(appConf *AppConfig) Backend {
	return appConf.Backend
}

func ProvideUpstreamConfig(appConf *AppConfig) Upstream {
	return appConf.Upstream
}

func ProvideResolverConfig(appConf *AppConfig) Resolver {
	return appConf.Resolver
}

func (r Resolver) Timeout() time.Duration {
	return time.Duration(r.LookupTimeout) * time.Second
}

func (r Resolver) TTL() time.Duration {
	return time.Duration(r.LabelTTL) * time.Second
}
