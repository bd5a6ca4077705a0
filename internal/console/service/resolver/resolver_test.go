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

package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrgs struct {
	mu    sync.Mutex
	orgs  map[string]string
	err   error
	calls atomic.Int32
}

func (f *fakeOrgs) GetOrgsByIds(_ context.Context, ids []string) ([]model.Org, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Org
	for _, id := range ids {
		if name, ok := f.orgs[id]; ok {
			out = append(out, model.Org{ID: id, OrgName: name})
		}
	}
	return out, nil
}

func (f *fakeOrgs) set(orgs map[string]string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orgs = orgs
	f.err = err
}

func newResolver(lookup LookupFunc) *Resolver {
	return New(KindOrg, lookup, Options{Cache: cache.NewFastCache(0), TTL: time.Minute, Timeout: time.Second})
}

func TestRender_EmptyIdsNoFetch(t *testing.T) {
	orgs := &fakeOrgs{}
	r := newResolver(OrgLabels(orgs))

	assert.Nil(t, r.Render(context.Background(), "2", nil))
	assert.Nil(t, r.Render(context.Background(), "2", []string{}))
	labels, err := r.Resolve(context.Background(), "2", nil)
	assert.NoError(t, err)
	assert.Nil(t, labels)

	r.Wait()
	assert.EqualValues(t, 0, orgs.calls.Load())
}

func TestResolve_LabelsInResponseOrder(t *testing.T) {
	orgs := &fakeOrgs{orgs: map[string]string{"10": "A", "20": "B"}}
	r := newResolver(OrgLabels(orgs))

	labels, err := r.Resolve(context.Background(), "2", []string{"10", "20"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, labels)
	assert.Equal(t, []string{"A", "B"}, r.Cached(context.Background(), NewKey("2", []string{"10", "20"})))
}

func TestResolve_EmptyResponseClearsCache(t *testing.T) {
	orgs := &fakeOrgs{orgs: map[string]string{"10": "A"}}
	r := newResolver(OrgLabels(orgs))
	ctx := context.Background()
	key := NewKey("2", []string{"10"})

	_, err := r.Resolve(ctx, "2", []string{"10"})
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, r.Cached(ctx, key))

	orgs.set(map[string]string{}, nil)
	labels, err := r.Resolve(ctx, "2", []string{"10"})
	require.NoError(t, err)
	assert.Empty(t, labels)
	assert.Nil(t, r.Cached(ctx, key))
}

func TestResolve_ErrorClearsCache(t *testing.T) {
	orgs := &fakeOrgs{orgs: map[string]string{"10": "A"}}
	r := newResolver(OrgLabels(orgs))
	ctx := context.Background()

	_, err := r.Resolve(ctx, "2", []string{"10"})
	require.NoError(t, err)

	orgs.set(nil, errors.New("timeout"))
	labels, err := r.Resolve(ctx, "2", []string{"10"})
	assert.Error(t, err)
	assert.Empty(t, labels)
	assert.Nil(t, r.Cached(ctx, NewKey("2", []string{"10"})))
}

func TestRender_ReturnsCachedThenRefreshes(t *testing.T) {
	orgs := &fakeOrgs{orgs: map[string]string{"10": "A", "20": "B"}}
	r := newResolver(OrgLabels(orgs))
	ctx := context.Background()

	events := make(chan Event, 4)
	r.OnResolved(func(ev Event) { events <- ev })

	first := r.Render(ctx, "2", []string{"10", "20"})
	r.Wait()
	assert.True(t, first == nil || assert.ObjectsAreEqual([]string{"A", "B"}, first))

	select {
	case ev := <-events:
		assert.Equal(t, KindOrg, ev.Kind)
		assert.Equal(t, "2", ev.Record)
		assert.Equal(t, []string{"A", "B"}, ev.Labels)
	case <-time.After(time.Second):
		t.Fatal("expected resolved event")
	}

	assert.Equal(t, []string{"A", "B"}, r.Render(ctx, "2", []string{"10", "20"}))
	r.Wait()
	assert.Empty(t, events, "unchanged labels are not re-announced")
}

func TestResolve_KeyedPerRecord(t *testing.T) {
	orgs := &fakeOrgs{orgs: map[string]string{"10": "A", "20": "B"}}
	r := newResolver(OrgLabels(orgs))
	ctx := context.Background()

	_, err := r.Resolve(ctx, "2", []string{"10"})
	require.NoError(t, err)
	_, err = r.Resolve(ctx, "3", []string{"20"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, r.Cached(ctx, NewKey("2", []string{"10"})))
	assert.Equal(t, []string{"B"}, r.Cached(ctx, NewKey("3", []string{"20"})))
}

func TestResolve_StaleResponseDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32

	lookup := func(ctx context.Context, ids []string) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []string{"OLD"}, nil
		}
		return []string{"NEW"}, nil
	}
	r := newResolver(lookup)
	ctx := context.Background()

	r.Render(ctx, "2", []string{"10"})
	<-started

	labels, err := r.Resolve(ctx, "2", []string{"10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"NEW"}, labels)

	close(release)
	r.Wait()
	assert.Equal(t, []string{"NEW"}, r.Cached(ctx, NewKey("2", []string{"10"})))
}

func TestRender_ConcurrentLookupsShared(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32

	lookup := func(ctx context.Context, ids []string) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []string{"A"}, nil
	}
	r := newResolver(lookup)
	ctx := context.Background()

	r.Render(ctx, "2", []string{"10"})
	<-started
	r.Render(ctx, "2", []string{"10"})
	r.Render(ctx, "3", []string{"10"})

	// 等待后两次 Render 加入进行中的查询
	time.Sleep(20 * time.Millisecond)
	close(release)
	r.Wait()

	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, []string{"A"}, r.Cached(ctx, NewKey("2", []string{"10"})))
	assert.Equal(t, []string{"A"}, r.Cached(ctx, NewKey("3", []string{"10"})))
}

func TestRoleLabels(t *testing.T) {
	lookup := RoleLabels(roleRepoFunc(func(_ context.Context, ids []string) ([]model.Role, error) {
		return []model.Role{{ID: "r1", RoleName: "管理员"}}, nil
	}))
	labels, err := lookup(context.Background(), []string{"r1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"管理员"}, labels)
}

type roleRepoFunc func(ctx context.Context, ids []string) ([]model.Role, error)

func (f roleRepoFunc) GetRolesByIds(ctx context.Context, ids []string) ([]model.Role, error) {
	return f(ctx, ids)
}

// gatedCache 写入匹配 key 时阻塞，模拟远程缓存慢
type gatedCache struct {
	cache.ICache
	match   string
	entered chan struct{}
	release chan struct{}
}

func (g *gatedCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if strings.Contains(key, g.match) {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.ICache.Set(ctx, key, value, ttl)
}

func TestResolve_SlowCacheWriteDoesNotBlockOtherKeys(t *testing.T) {
	orgs := &fakeOrgs{orgs: map[string]string{"10": "A"}}
	gc := &gatedCache{
		ICache:  cache.NewFastCache(0),
		match:   ":slow:",
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	r := New(KindOrg, OrgLabels(orgs), Options{Cache: gc, TTL: time.Minute, Timeout: time.Second})
	ctx := context.Background()

	slow := NewKey("slow", []string{"10"})
	other := ""
	for i := 0; i < 100; i++ {
		rec := "r" + strings.Repeat("x", i)
		if r.stripe(NewKey(rec, []string{"10"})) != r.stripe(slow) {
			other = rec
			break
		}
	}
	require.NotEmpty(t, other)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Resolve(ctx, "slow", []string{"10"})
	}()
	<-gc.entered

	labels, err := r.Resolve(ctx, other, []string{"10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, labels)

	close(gc.release)
	<-done
	assert.Equal(t, []string{"A"}, r.Cached(ctx, slow))
}
