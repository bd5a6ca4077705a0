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

package ws

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	id      string
	ctx     context.Context
	mu      sync.Mutex
	written []any
	fail    bool
	closed  bool
}

func (f *fakeConn) ID() string { return f.id }
func (f *fakeConn) Context() context.Context {
	if f.ctx != nil {
		return f.ctx
	}
	return context.Background()
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

func TestHub_RegisterUnregister(t *testing.T) {
	var counts []int
	hub := NewHub(func(n int) { counts = append(counts, n) })

	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.Count())

	hub.Unregister(a)
	hub.Unregister(a)
	assert.Equal(t, 1, hub.Count())
	assert.True(t, a.closed)
	assert.Equal(t, []int{1, 2, 1}, counts)
}

func TestHub_BroadcastDropsBrokenConn(t *testing.T) {
	hub := NewHub(nil)
	good := &fakeConn{id: "good"}
	bad := &fakeConn{id: "bad", fail: true}
	hub.Register(good)
	hub.Register(bad)

	hub.BroadcastJSON(map[string]string{"event": "labels"})

	assert.Eventually(t, func() bool {
		return good.count() == 1 && hub.Count() == 1
	}, time.Second, 10*time.Millisecond)
}

type roleKey struct{}

func TestHub_BroadcastIfFiltersConns(t *testing.T) {
	hub := NewHub(nil)
	viewer := &fakeConn{id: "viewer", ctx: context.WithValue(context.Background(), roleKey{}, "viewer")}
	guest := &fakeConn{id: "guest"}
	hub.Register(viewer)
	hub.Register(guest)

	hub.BroadcastJSONIf(map[string]string{"event": "labels"}, func(c Conn) bool {
		return c.Context().Value(roleKey{}) == "viewer"
	})

	assert.Eventually(t, func() bool { return viewer.count() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, guest.count())
	assert.Equal(t, 2, hub.Count())
}
