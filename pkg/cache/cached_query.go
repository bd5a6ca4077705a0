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
	"fmt"
	"time"

	"github.com/go-arcade/console/pkg/log"
)

// QueryFunc loads the value on cache miss
type QueryFunc[T any] func(ctx context.Context) (T, error)

// KeyFunc defines a function that generates cache key from parameters
type KeyFunc func(params ...any) string

// CachedQuery is a generic cache-aside helper: cache first, queryFunc on miss.
type CachedQuery[T any] struct {
	cache     ICache
	keyFunc   KeyFunc
	queryFunc QueryFunc[T]
	ttl       time.Duration
	logPrefix string
}

type CachedQueryOption[T any] func(*CachedQuery[T])

// WithTTL sets the cache expiration time
func WithTTL[T any](ttl time.Duration) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.ttl = ttl
	}
}

// WithLogPrefix sets the log prefix for debugging
func WithLogPrefix[T any](prefix string) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.logPrefix = prefix
	}
}

// NewCachedQuery creates a new CachedQuery. cache may be nil, in which case
// every Get goes straight to queryFunc.
func NewCachedQuery[T any](cache ICache, keyFunc KeyFunc, queryFunc QueryFunc[T], opts ...CachedQueryOption[T]) *CachedQuery[T] {
	cq := &CachedQuery[T]{
		cache:     cache,
		keyFunc:   keyFunc,
		queryFunc: queryFunc,
		ttl:       time.Hour,
		logPrefix: "[CachedQuery]",
	}
	for _, opt := range opts {
		opt(cq)
	}
	return cq
}

// Get returns the cached value for params or loads it with queryFunc
func (cq *CachedQuery[T]) Get(ctx context.Context, params ...any) (T, error) {
	return cq.GetOrSet(ctx, cq.queryFunc, params...)
}

// GetOrSet is Get with a caller supplied loader
func (cq *CachedQuery[T]) GetOrSet(ctx context.Context, setFunc QueryFunc[T], params ...any) (T, error) {
	var zero T
	cacheKey := cq.keyFunc(params...)

	if result, ok := cq.lookup(ctx, cacheKey); ok {
		return result, nil
	}

	log.Debugw(cq.logPrefix+" cache miss, querying", "key", cacheKey)
	result, err := setFunc(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to query: %w", err)
	}
	cq.store(ctx, cacheKey, result)
	return result, nil
}

// Invalidate removes the cached data
func (cq *CachedQuery[T]) Invalidate(ctx context.Context, params ...any) error {
	if cq.cache == nil {
		return nil
	}
	cacheKey := cq.keyFunc(params...)
	if err := cq.cache.Del(ctx, cacheKey).Err(); err != nil {
		log.Warnw(cq.logPrefix+" failed to invalidate cache", "key", cacheKey, "error", err)
		return err
	}
	log.Debugw(cq.logPrefix+" cache invalidated", "key", cacheKey)
	return nil
}

func (cq *CachedQuery[T]) lookup(ctx context.Context, cacheKey string) (T, bool) {
	var zero T
	if cq.cache == nil {
		return zero, false
	}
	result, ok, err := GetJSON[T](ctx, cq.cache, cacheKey)
	if err != nil {
		log.Warnw(cq.logPrefix+" cache get error", "key", cacheKey, "error", err)
		return zero, false
	}
	if ok {
		log.Debugw(cq.logPrefix+" cache hit", "key", cacheKey)
	}
	return result, ok
}

func (cq *CachedQuery[T]) store(ctx context.Context, cacheKey string, result T) {
	if cq.cache == nil {
		return
	}
	if err := SetJSON(ctx, cq.cache, cacheKey, result, cq.ttl); err != nil {
		log.Warnw(cq.logPrefix+" failed to cache result", "key", cacheKey, "error", err)
	}
}
