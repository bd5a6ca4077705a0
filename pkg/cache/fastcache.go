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
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/pkg/safe"
	"github.com/redis/go-redis/v9"
)

const defaultLocalMaxBytes = 32 * 1024 * 1024

// FastCache is a process-local ICache backed by VictoriaMetrics fastcache.
// fastcache has no expiry of its own so deadlines are tracked beside it.
type FastCache struct {
	cache *fastcache.Cache
	ttls  sync.Map // map[string]time.Time
	mu    sync.RWMutex
}

// NewFastCache creates a new FastCache instance
func NewFastCache(maxBytes int) *FastCache {
	if maxBytes <= 0 {
		maxBytes = defaultLocalMaxBytes
	}
	return &FastCache{cache: fastcache.New(maxBytes)}
}

func (fc *FastCache) expired(key string) bool {
	if exp, ok := fc.ttls.Load(key); ok {
		return time.Now().After(exp.(time.Time))
	}
	return false
}

// Get returns the value for the given key, redis.Nil on miss
func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	cmd := redis.NewStringCmd(ctx, "get", key)
	if fc.expired(key) {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	value, ok := fc.cache.HasGet(nil, []byte(key))
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(value))
	return cmd
}

// Set stores value under key. Non string values are encoded with sonic.
func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	data, err := toBytes(value)
	if err != nil {
		cmd.SetErr(err)
		return cmd
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.cache.Set([]byte(key), data)
	if expiration > 0 {
		fc.scheduleExpiry(key, expiration)
	} else {
		fc.ttls.Delete(key)
	}
	cmd.SetVal("OK")
	return cmd
}

// Del deletes the given keys
func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var count int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) {
			fc.cache.Del([]byte(key))
			count++
		}
		fc.ttls.Delete(key)
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(count)
	return cmd
}

// Expire sets the expiration time for a key
func (fc *FastCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	cmd := redis.NewBoolCmd(ctx, "expire", key)
	if !fc.cache.Has([]byte(key)) || fc.expired(key) {
		cmd.SetVal(false)
		return cmd
	}
	if expiration > 0 {
		fc.scheduleExpiry(key, expiration)
	}
	cmd.SetVal(true)
	return cmd
}

type cleanupArgs struct {
	key   string
	delay time.Duration
}

// scheduleExpiry must be called with fc.mu held
func (fc *FastCache) scheduleExpiry(key string, delay time.Duration) {
	fc.ttls.Store(key, time.Now().Add(delay))
	safe.GoWith(func(args cleanupArgs) {
		<-time.After(args.delay)
		fc.cleanupExpiredKey(args.key)
	}, cleanupArgs{key: key, delay: delay})
}

func (fc *FastCache) cleanupExpiredKey(key string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.expired(key) {
		fc.cache.Del([]byte(key))
		fc.ttls.Delete(key)
	}
}

// Clear removes all items from the cache
func (fc *FastCache) Clear() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.cache.Reset()
	fc.ttls.Range(func(key, _ any) bool {
		fc.ttls.Delete(key)
		return true
	})
}

// Stats returns cache statistics
func (fc *FastCache) Stats() fastcache.Stats {
	var stats fastcache.Stats
	fc.cache.UpdateStats(&stats)
	return stats
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return sonic.Marshal(v)
	}
}
