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
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 未命中，本地与远程实现统一返回 redis.Nil
var ErrCacheMiss = redis.Nil

// ICache 本地、远程、混合缓存的公共接口，沿用 go-redis 的 Cmd 返回值
type ICache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Conf 本地缓存与远程缓存的组合配置
type Conf struct {
	LocalEnabled  bool    `mapstructure:"localEnabled"`
	RemoteEnabled bool    `mapstructure:"remoteEnabled"`
	LocalMaxBytes int     `mapstructure:"localMaxBytes"`
	LocalTTLRatio float64 `mapstructure:"localTTLRatio"` // 本地 ttl = 远程 ttl * ratio
}

// GetJSON 读取并解码，未命中时 ok 为 false 且 err 为 nil
func GetJSON[T any](ctx context.Context, c ICache, key string) (v T, ok bool, err error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, ErrCacheMiss) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err = sonic.Unmarshal(data, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// SetJSON 编码后写入
func SetJSON(ctx context.Context, c ICache, key string, v any, ttl time.Duration) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl).Err()
}
