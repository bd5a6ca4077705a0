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

	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/safe"
	"github.com/redis/go-redis/v9"
)

// HybridCache combines local cache (fastcache) and remote cache (Redis).
// Reads try local first; a remote hit is copied back to local asynchronously.
type HybridCache struct {
	local  *FastCache
	remote ICache
	conf   Conf
}

// NewHybridCache creates a new HybridCache instance. remote may be nil.
func NewHybridCache(local *FastCache, remote ICache, conf Conf) *HybridCache {
	if remote == nil {
		conf.RemoteEnabled = false
	}
	if local == nil {
		conf.LocalEnabled = false
	}
	return &HybridCache{local: local, remote: remote, conf: conf}
}

type localSetArgs struct {
	key   string
	value string
	ttl   time.Duration
}

func (hc *HybridCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if hc.conf.LocalEnabled {
		cmd := hc.local.Get(ctx, key)
		if cmd.Err() == nil {
			log.Debugw("hybrid cache hit (local)", "key", key)
			return cmd
		}
	}

	if hc.conf.RemoteEnabled {
		cmd := hc.remote.Get(ctx, key)
		switch err := cmd.Err(); {
		case err == nil:
			log.Debugw("hybrid cache hit (remote)", "key", key)
			if hc.conf.LocalEnabled {
				safe.GoWith(func(args localSetArgs) {
					hc.local.Set(context.Background(), args.key, args.value, args.ttl)
				}, localSetArgs{key: key, value: cmd.Val(), ttl: hc.localTTL(time.Hour)})
			}
			return cmd
		case !errors.Is(err, redis.Nil):
			log.Warnw("hybrid cache remote get failed", "key", key, "error", err)
		}
	}

	cmd := redis.NewStringCmd(ctx, "get", key)
	cmd.SetErr(redis.Nil)
	return cmd
}

func (hc *HybridCache) localTTL(remoteTTL time.Duration) time.Duration {
	if hc.conf.LocalTTLRatio > 0 && hc.conf.LocalTTLRatio < 1.0 {
		return time.Duration(float64(remoteTTL) * hc.conf.LocalTTLRatio)
	}
	return remoteTTL
}

func (hc *HybridCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	data, err := toBytes(value)
	if err != nil {
		log.Warnw("failed to marshal value for caching", "key", key, "error", err)
		cmd.SetErr(err)
		return cmd
	}

	if hc.conf.LocalEnabled {
		hc.local.Set(ctx, key, data, hc.localTTL(expiration))
	}
	if hc.conf.RemoteEnabled {
		if err := hc.remote.Set(ctx, key, string(data), expiration).Err(); err != nil {
			log.Warnw("hybrid cache remote set failed", "key", key, "error", err)
			cmd.SetErr(err)
			return cmd
		}
	}
	cmd.SetVal("OK")
	return cmd
}

func (hc *HybridCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var count int64
	if hc.conf.LocalEnabled {
		count += hc.local.Del(ctx, keys...).Val()
	}
	if hc.conf.RemoteEnabled {
		count += hc.remote.Del(ctx, keys...).Val()
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(count)
	return cmd
}

func (hc *HybridCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	success := false
	if hc.conf.LocalEnabled && hc.local.Expire(ctx, key, hc.localTTL(expiration)).Val() {
		success = true
	}
	if hc.conf.RemoteEnabled && hc.remote.Expire(ctx, key, expiration).Val() {
		success = true
	}
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	cmd.SetVal(success)
	return cmd
}

// Clear drops the local tier only
func (hc *HybridCache) Clear() {
	if hc.conf.LocalEnabled {
		hc.local.Clear()
	}
}
