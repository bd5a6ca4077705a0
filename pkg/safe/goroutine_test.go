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

package safe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	err := Do(func() {
		panic("test panic")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test panic")

	assert.NoError(t, Do(func() {}))
}

func TestGo(t *testing.T) {
	done := make(chan struct{})
	Go(func() {
		defer close(done)
		panic("test panic in goroutine")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Go did not run")
	}
}

func TestGoWith(t *testing.T) {
	got := make(chan string, 1)
	GoWith(func(s string) {
		got <- s
	}, "hello")

	select {
	case v := <-got:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("GoWith did not run")
	}
}
