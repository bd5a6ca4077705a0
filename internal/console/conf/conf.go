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
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/database"
	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/spf13/viper"
)

const (
	BackendDB   = "db"
	BackendHttp = "http"
)

// Backend 选择账号/组织/角色数据来源
type Backend struct {
	Mode string `mapstructure:"mode"` // db | http
}

// Upstream 上游管理接口，Backend.Mode = http 时使用
type Upstream struct {
	BaseUrl string `mapstructure:"baseUrl"`
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"` // 秒
}

// Resolver 组织/角色名称解析
type Resolver struct {
	LookupTimeout int `mapstructure:"lookupTimeout"` // 秒
	LabelTTL      int `mapstructure:"labelTTL"`      // 秒
}

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Cache    cache.Conf
	Backend  Backend
	Upstream Upstream
	Resolver Resolver
	Metrics  metrics.MetricsConfig
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confDir string) *AppConfig {
	once.Do(func() {
		loaded, err := LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		cfg = loaded
	})
	c := cfg
	return &c
}

// LoadConfigFile load config file
func LoadConfigFile(confDir string) (AppConfig, error) {
	var loaded AppConfig

	config := viper.New()
	config.SetConfigFile(confDir) //文件名
	if err := config.ReadInConfig(); err != nil {
		return loaded, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed, reloading", "file", e.Name)
		var reloaded AppConfig
		if err := config.Unmarshal(&reloaded); err != nil {
			log.Errorw("failed to unmarshal configuration file", "error", err)
			return
		}
		reloaded.SetDefaults()
		applyRuntime(reloaded)
	})
	if err := config.Unmarshal(&loaded); err != nil {
		return loaded, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	loaded.SetDefaults()
	if err := loaded.Validate(); err != nil {
		return loaded, err
	}
	log.Infow("config file loaded",
		"path", confDir,
		"backend", loaded.Backend.Mode,
	)

	return loaded, nil
}

// applyRuntime 热更新只作用于日志级别，其余配置需要重启生效
func applyRuntime(c AppConfig) {
	log.SetLevel(c.Log.Level)
	log.Infow("runtime config applied", "logLevel", c.Log.Level)
}

// SetDefaults 填充未配置的字段
func (c *AppConfig) SetDefaults() {
	c.Http.SetDefaults()
	if c.Backend.Mode == "" {
		c.Backend.Mode = BackendDB
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = 10
	}
	if c.Resolver.LookupTimeout <= 0 {
		c.Resolver.LookupTimeout = 5
	}
	if c.Resolver.LabelTTL <= 0 {
		c.Resolver.LabelTTL = 300
	}
	if c.Cache.LocalMaxBytes <= 0 {
		c.Cache.LocalMaxBytes = 32 * 1024 * 1024
	}
	if c.Cache.LocalTTLRatio <= 0 || c.Cache.LocalTTLRatio > 1 {
		c.Cache.LocalTTLRatio = 0.5
	}
}

func (c *AppConfig) Validate() error {
	switch c.Backend.Mode {
	case BackendDB:
	case BackendHttp:
		if c.Upstream.BaseUrl == "" {
			return fmt.Errorf("upstream.baseUrl is required when backend.mode = %s", BackendHttp)
		}
	default:
		return fmt.Errorf("unsupported backend mode: %s", c.Backend.Mode)
	}
	if c.Http.Auth.SecretKey == "" {
		return fmt.Errorf("http.auth.secretKey is required")
	}
	return nil
}
