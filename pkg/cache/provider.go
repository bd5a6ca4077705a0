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
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet 提供缓存依赖（本地 FastCache + 可选 Redis）
var ProviderSet = wire.NewSet(
	ProvideRedisCmdable,
	ProvideFastCache,
	ProvideICache,
)

// ProvideRedisCmdable 远程缓存关闭时返回 nil
func ProvideRedisCmdable(conf Conf, redisConf Redis) (redis.Cmdable, error) {
	if !conf.RemoteEnabled {
		return nil, nil
	}
	return NewRedisCmdable(redisConf)
}

// ProvideFastCache 提供 FastCache 实例（默认 32MB）
func ProvideFastCache(conf Conf) *FastCache {
	return NewFastCache(conf.LocalMaxBytes)
}

// ProvideICache 提供混合缓存实例
func ProvideICache(conf Conf, redisConf Redis, local *FastCache, cmdable redis.Cmdable) ICache {
	var remote ICache
	if cmdable != nil {
		remote = NewRedisCache(cmdable, redisConf.KeyPrefix)
	}
	return NewHybridCache(local, remote, conf)
}
