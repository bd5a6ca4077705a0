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

package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/console/pkg/log"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Mode             string        `mapstructure:"mode"`
	Address          string        `mapstructure:"address"`
	Password         string        `mapstructure:"password"`
	DB               int           `mapstructure:"db"`
	PoolSize         int           `mapstructure:"poolSize"`
	UseTLS           bool          `mapstructure:"useTLS"`
	MasterName       string        `mapstructure:"masterName"`
	SentinelUsername string        `mapstructure:"sentinelUsername"`
	SentinelPassword string        `mapstructure:"sentinelPassword"`
	DialTimeout      time.Duration `mapstructure:"dialTimeout"`  // 连接超时（秒）
	ReadTimeout      time.Duration `mapstructure:"readTimeout"`  // 读超时（秒）
	WriteTimeout     time.Duration `mapstructure:"writeTimeout"` // 写超时（秒）
	KeyPrefix        string        `mapstructure:"keyPrefix"`    // 多个控制台共用实例时区分 key
}

// NewRedisCmdable 创建 Redis 客户端（支持单节点、Sentinel 和集群模式）
func NewRedisCmdable(cfg Redis) (redis.UniversalClient, error) {
	var tlsConfig *tls.Config
	if cfg.UseTLS {
		tlsConfig = &tls.Config{}
	}

	var client redis.UniversalClient
	switch cfg.Mode {
	case "", "single":
		client = redis.NewClient(&redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  cfg.DialTimeout * time.Second,
			ReadTimeout:  cfg.ReadTimeout * time.Second,
			WriteTimeout: cfg.WriteTimeout * time.Second,
			TLSConfig:    tlsConfig,
		})
	case "sentinel":
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.MasterName,
			SentinelAddrs:    strings.Split(cfg.Address, ","),
			Password:         cfg.Password,
			DB:               cfg.DB,
			PoolSize:         cfg.PoolSize,
			SentinelUsername: cfg.SentinelUsername,
			SentinelPassword: cfg.SentinelPassword,
			DialTimeout:      cfg.DialTimeout * time.Second,
			ReadTimeout:      cfg.ReadTimeout * time.Second,
			WriteTimeout:     cfg.WriteTimeout * time.Second,
			TLSConfig:        tlsConfig,
		})
	case "cluster":
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        strings.Split(cfg.Address, ","),
			Password:     cfg.Password,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  cfg.DialTimeout * time.Second,
			ReadTimeout:  cfg.ReadTimeout * time.Second,
			WriteTimeout: cfg.WriteTimeout * time.Second,
			TLSConfig:    tlsConfig,
		})
	default:
		return nil, fmt.Errorf("unsupported redis mode: %s", cfg.Mode)
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Errorw("failed to connect redis", "mode", cfg.Mode, "error", err)
		return nil, err
	}

	log.Infow("redis connected", "mode", cfg.Mode)
	return client, nil
}

// RedisCache 远程缓存，所有 key 追加 KeyPrefix，值统一按 toBytes 编码
type RedisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCache 创建 Redis 缓存实例
func NewRedisCache(client redis.Cmdable, prefix string) ICache {
	return &RedisCache{client: client, prefix: prefix}
}

func (r *RedisCache) key(k string) string { return r.prefix + k }

func (r *RedisCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, r.key(key))
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	data, err := toBytes(value)
	if err != nil {
		cmd := redis.NewStatusCmd(ctx, "set", r.key(key))
		cmd.SetErr(err)
		return cmd
	}
	return r.client.Set(ctx, r.key(key), data, expiration)
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.client.Del(ctx, full...)
}

func (r *RedisCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return r.client.Expire(ctx, r.key(key), expiration)
}
