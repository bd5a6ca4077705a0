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

package http

import "time"

// Http fiber 服务配置
type Http struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ContextPath     string `mapstructure:"contextPath"`
	AccessLog       bool   `mapstructure:"accessLog"`
	CorsOrigins     string `mapstructure:"corsOrigins"` // 逗号分隔，默认 *
	ExposeMetrics   bool   `mapstructure:"exposeMetrics"`
	BodyLimit       int    `mapstructure:"bodyLimit"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	IdleTimeout     int    `mapstructure:"idleTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	Auth            Auth   `mapstructure:"auth"`
}

type Auth struct {
	SecretKey     string        `mapstructure:"secretKey"`
	AccessExpire  time.Duration `mapstructure:"accessExpire"`  // minutes
	RefreshExpire time.Duration `mapstructure:"refreshExpire"` // minutes
}

// SetDefaults 填充未配置的字段
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.ContextPath == "" {
		h.ContextPath = "/api/v1"
	}
	if h.CorsOrigins == "" {
		h.CorsOrigins = "*"
	}
	if h.BodyLimit <= 0 {
		h.BodyLimit = 4 * 1024 * 1024
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 60
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 60
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 120
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 30
	}
	if h.Auth.AccessExpire <= 0 {
		h.Auth.AccessExpire = 60 * 24
	}
	if h.Auth.RefreshExpire <= 0 {
		h.Auth.RefreshExpire = 60 * 24 * 7
	}
}
