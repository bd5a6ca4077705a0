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

// Package resolver turns id lists into display labels. Render returns the
// cached labels immediately and refreshes them in the background; Resolve
// waits for the lookup. Labels are cached per (record, id set) and a
// response is only applied if no newer request for the same key was made
// after it.
package resolver

import (
	"context"
	"hash/fnv"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-arcade/console/pkg/cache"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/go-arcade/console/pkg/safe"
	"golang.org/x/sync/singleflight"
)

const (
	KindOrg  = "org"
	KindRole = "role"

	labelCacheKey = "console:labels:"

	applyStripes = 32

	resultOK    = "ok"
	resultEmpty = "empty"
	resultError = "error"
)

// LookupFunc 批量查询名称，按返回顺序作为展示顺序
type LookupFunc func(ctx context.Context, ids []string) ([]string, error)

// Key 缓存键：记录 + id 集合
type Key struct {
	Record string
	IDs    string
}

func NewKey(record string, ids []string) Key {
	return Key{Record: record, IDs: strings.Join(ids, ",")}
}

// Event 某个 key 的名称发生变化
type Event struct {
	Kind   string   `json:"kind"`
	Record string   `json:"record"`
	IDs    []string `json:"ids"`
	Labels []string `json:"labels"`
}

type Options struct {
	Cache   cache.ICache
	TTL     time.Duration
	Timeout time.Duration
	Metrics *metrics.ConsoleMetrics
}

type Resolver struct {
	kind    string
	lookup  LookupFunc
	cache   cache.ICache
	ttl     time.Duration
	timeout time.Duration
	metrics *metrics.ConsoleMetrics

	group singleflight.Group
	wg    sync.WaitGroup

	mu   sync.Mutex
	seq  uint64
	gens map[Key]uint64

	// 同一 key 的缓存写入按 stripe 串行，不同 key 互不阻塞
	applyMu [applyStripes]sync.Mutex

	listenerMu sync.RWMutex
	listeners  []func(Event)
}

func New(kind string, lookup LookupFunc, opts Options) *Resolver {
	if opts.Cache == nil {
		opts.Cache = cache.NewFastCache(0)
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Resolver{
		kind:    kind,
		lookup:  lookup,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		timeout: opts.Timeout,
		metrics: opts.Metrics,
		gens:    make(map[Key]uint64),
	}
}

// OnResolved 注册名称变化监听
func (r *Resolver) OnResolved(fn func(Event)) {
	r.listenerMu.Lock()
	defer r.listenerMu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Render 返回当前缓存的名称（首次可能为空），同时在后台刷新
// ids 为空时不查询，返回 nil
func (r *Resolver) Render(ctx context.Context, record string, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	key := NewKey(record, ids)
	gen := r.nextGen(key)
	ids = slices.Clone(ids)

	r.wg.Add(1)
	safe.Go(func() {
		defer r.wg.Done()
		_, _ = r.fetch(context.WithoutCancel(ctx), key, ids, gen, false)
	})
	return r.Cached(ctx, key)
}

// Resolve 同步查询，总是发起新的查询，旧的查询结果将被丢弃
func (r *Resolver) Resolve(ctx context.Context, record string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	key := NewKey(record, ids)
	gen := r.nextGen(key)
	return r.fetch(ctx, key, ids, gen, true)
}

// Cached 读取缓存
func (r *Resolver) Cached(ctx context.Context, key Key) []string {
	labels, _, err := cache.GetJSON[[]string](ctx, r.cache, r.cacheKey(key))
	if err != nil {
		log.Warnw("read label cache failed", "kind", r.kind, "record", key.Record, "error", err)
		return nil
	}
	return labels
}

// Wait 等待后台刷新结束
func (r *Resolver) Wait() {
	r.wg.Wait()
}

func (r *Resolver) cacheKey(key Key) string {
	return labelCacheKey + r.kind + ":" + key.Record + ":" + key.IDs
}

func (r *Resolver) nextGen(key Key) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.gens[key] = r.seq
	return r.seq
}

// fetch 查询 id 集合，相同 id 集合的并发查询合并；fresh 为 true 时不复用进行中的查询
func (r *Resolver) fetch(ctx context.Context, key Key, ids []string, gen uint64, fresh bool) ([]string, error) {
	flight := key.IDs
	if fresh {
		r.group.Forget(flight)
	}

	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	v, err, _ := r.group.Do(flight, func() (any, error) {
		start := time.Now()
		labels, err := r.lookup(lookupCtx, ids)
		switch {
		case err != nil:
			r.metrics.ObserveLookup(r.kind, resultError, time.Since(start))
		case len(labels) == 0:
			r.metrics.ObserveLookup(r.kind, resultEmpty, time.Since(start))
		default:
			r.metrics.ObserveLookup(r.kind, resultOK, time.Since(start))
		}
		return labels, err
	})

	labels, _ := v.([]string)
	if err != nil {
		log.Warnw("lookup labels failed",
			"kind", r.kind,
			"record", key.Record,
			"ids", key.IDs,
			"error", err,
		)
		labels = nil
	}

	if !r.apply(ctx, key, ids, gen, labels) {
		log.Debugw("drop stale lookup response", "kind", r.kind, "record", key.Record, "gen", gen)
		return r.Cached(ctx, key), err
	}
	return labels, err
}

func (r *Resolver) stripe(key Key) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key.Record))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key.IDs))
	return &r.applyMu[h.Sum32()%applyStripes]
}

// apply 仅最新一次请求的结果会写入缓存；空结果清除缓存
// r.mu 只保护 generation，缓存读写在 stripe 锁内完成
func (r *Resolver) apply(ctx context.Context, key Key, ids []string, gen uint64, labels []string) bool {
	km := r.stripe(key)
	km.Lock()

	r.mu.Lock()
	if r.gens[key] != gen {
		r.mu.Unlock()
		km.Unlock()
		return false
	}
	delete(r.gens, key)
	r.mu.Unlock()

	prev := r.Cached(ctx, key)
	ck := r.cacheKey(key)
	if len(labels) == 0 {
		if err := r.cache.Del(ctx, ck).Err(); err != nil {
			log.Warnw("clear label cache failed", "kind", r.kind, "record", key.Record, "error", err)
		}
	} else if err := cache.SetJSON(ctx, r.cache, ck, labels, r.ttl); err != nil {
		log.Warnw("write label cache failed", "kind", r.kind, "record", key.Record, "error", err)
	}
	km.Unlock()

	if !slices.Equal(prev, labels) {
		r.notify(Event{Kind: r.kind, Record: key.Record, IDs: ids, Labels: labels})
	}
	return true
}

func (r *Resolver) notify(ev Event) {
	r.listenerMu.RLock()
	listeners := r.listeners
	r.listenerMu.RUnlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
