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

package permission

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-arcade/console/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePermRepo struct {
	perms map[string][]string
	err   error
	calls atomic.Int32
}

func (f *fakePermRepo) GetPermissionsByAccountId(_ context.Context, accountId string) ([]string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.perms[accountId], nil
}

func TestChecker_HasPermission(t *testing.T) {
	c := NewChecker(&fakePermRepo{}, nil, time.Minute)
	ctx := context.Background()

	assert.True(t, c.HasPermission(ctx, Subject{UserId: "1"}, AccountUpdate))
	assert.True(t, c.HasPermission(ctx, Subject{UserId: "2", Permissions: []string{AccountUpdate}}, AccountUpdate))
	assert.False(t, c.HasPermission(ctx, Subject{UserId: "2", Permissions: []string{AccountView}}, AccountUpdate))
	assert.True(t, c.IsSuperAdmin("1"))
	assert.False(t, c.IsSuperAdmin("10"))
}

func TestChecker_SubjectIsCached(t *testing.T) {
	fake := &fakePermRepo{perms: map[string][]string{"2": {AccountView, AccountUpdate}}}
	c := NewChecker(fake, cache.NewFastCache(0), time.Minute)
	ctx := context.Background()

	s, err := c.Subject(ctx, "2")
	require.NoError(t, err)
	assert.True(t, s.Has(AccountUpdate))

	assert.True(t, c.Allow(ctx, "2", AccountView))
	assert.False(t, c.Allow(ctx, "2", MfApiEdit))
	assert.EqualValues(t, 1, fake.calls.Load())

	require.NoError(t, c.Invalidate(ctx, "2"))
	_, err = c.Subject(ctx, "2")
	require.NoError(t, err)
	assert.EqualValues(t, 2, fake.calls.Load())
}

func TestChecker_AllowOnError(t *testing.T) {
	c := NewChecker(&fakePermRepo{err: errors.New("db down")}, nil, time.Minute)
	assert.False(t, c.Allow(context.Background(), "2", AccountView))
	assert.True(t, c.Allow(context.Background(), "1", AccountView))
}

func TestSubjectContext(t *testing.T) {
	ctx := WithSubject(context.Background(), Subject{UserId: "5"})
	assert.Equal(t, "5", FromContext(ctx).UserId)
	assert.Empty(t, FromContext(context.Background()).UserId)
}
