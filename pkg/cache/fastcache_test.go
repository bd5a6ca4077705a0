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
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastCache_SetGet(t *testing.T) {
	fc := NewFastCache(0)
	ctx := context.Background()

	require.NoError(t, fc.Set(ctx, "k1", "v1", 0).Err())
	assert.Equal(t, "v1", fc.Get(ctx, "k1").Val())

	require.NoError(t, fc.Set(ctx, "k2", []byte("v2"), 0).Err())
	assert.Equal(t, "v2", fc.Get(ctx, "k2").Val())

	require.NoError(t, fc.Set(ctx, "k3", []string{"a", "b"}, 0).Err())
	assert.JSONEq(t, `["a","b"]`, fc.Get(ctx, "k3").Val())
}

func TestFastCache_Miss(t *testing.T) {
	fc := NewFastCache(0)
	err := fc.Get(context.Background(), "absent").Err()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFastCache_Expiration(t *testing.T) {
	fc := NewFastCache(0)
	ctx := context.Background()

	fc.Set(ctx, "short", "v", 50*time.Millisecond)
	assert.Equal(t, "v", fc.Get(ctx, "short").Val())

	assert.Eventually(t, func() bool {
		return fc.Get(ctx, "short").Err() == redis.Nil
	}, time.Second, 10*time.Millisecond)
}

func TestFastCache_Del(t *testing.T) {
	fc := NewFastCache(0)
	ctx := context.Background()
	fc.Set(ctx, "a", "1", 0)
	fc.Set(ctx, "b", "2", 0)

	assert.Equal(t, int64(2), fc.Del(ctx, "a", "b", "c").Val())
	assert.ErrorIs(t, fc.Get(ctx, "a").Err(), redis.Nil)
}

func TestFastCache_Expire(t *testing.T) {
	fc := NewFastCache(0)
	ctx := context.Background()

	assert.False(t, fc.Expire(ctx, "missing", time.Minute).Val())

	fc.Set(ctx, "k", "v", 0)
	assert.True(t, fc.Expire(ctx, "k", 30*time.Millisecond).Val())
	assert.Eventually(t, func() bool {
		return fc.Get(ctx, "k").Err() == redis.Nil
	}, time.Second, 10*time.Millisecond)
}

func TestFastCache_Clear(t *testing.T) {
	fc := NewFastCache(0)
	ctx := context.Background()
	fc.Set(ctx, "k", "v", time.Hour)
	fc.Clear()
	assert.ErrorIs(t, fc.Get(ctx, "k").Err(), redis.Nil)
	assert.Equal(t, uint64(0), fc.Stats().EntriesCount)
}

func TestHybridCache_LocalOnly(t *testing.T) {
	hc := NewHybridCache(NewFastCache(0), nil, Conf{LocalEnabled: true, RemoteEnabled: true})
	ctx := context.Background()

	require.NoError(t, hc.Set(ctx, "k", "v", time.Minute).Err())
	assert.Equal(t, "v", hc.Get(ctx, "k").Val())
	assert.Equal(t, int64(1), hc.Del(ctx, "k").Val())
	assert.ErrorIs(t, hc.Get(ctx, "k").Err(), redis.Nil)
}

func TestHybridCache_RemoteHitPopulatesLocal(t *testing.T) {
	local := NewFastCache(0)
	remote := newMockCache()
	hc := NewHybridCache(local, remote, Conf{LocalEnabled: true, RemoteEnabled: true, LocalTTLRatio: 0.5})
	ctx := context.Background()

	remote.Set(ctx, "k", "remote-v", time.Minute)
	assert.Equal(t, "remote-v", hc.Get(ctx, "k").Val())

	assert.Eventually(t, func() bool {
		return local.Get(ctx, "k").Val() == "remote-v"
	}, time.Second, 10*time.Millisecond)
}

func TestHybridCache_WritesBothTiers(t *testing.T) {
	local := NewFastCache(0)
	remote := newMockCache()
	hc := NewHybridCache(local, remote, Conf{LocalEnabled: true, RemoteEnabled: true})
	ctx := context.Background()

	hc.Set(ctx, "k", map[string]int{"n": 1}, time.Minute)
	assert.JSONEq(t, `{"n":1}`, local.Get(ctx, "k").Val())
	assert.JSONEq(t, `{"n":1}`, remote.data["k"])

	assert.True(t, hc.Expire(ctx, "k", time.Minute).Val())
	hc.Del(ctx, "k")
	assert.NotContains(t, remote.data, "k")
}
