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

package model

import (
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewAccountRecord(t *testing.T) {
	rec := NewAccountRecord("7", "alice")
	assert.False(t, rec.PendingStatus)
	assert.Equal(t, StatusEnabled, rec.Status)
	assert.NotNil(t, rec.OrgIds)
	assert.False(t, rec.IsSuperAdmin())
	assert.True(t, NewAccountRecord(SuperAdminId, "admin").IsSuperAdmin())
}

func TestAccountRecord_UnmarshalResetsPending(t *testing.T) {
	var rec AccountRecord
	err := sonic.Unmarshal([]byte(`{"id":"2","account":"bob","status":1,"pendingStatus":true,"password":"x"}`), &rec)
	require.NoError(t, err)
	assert.Equal(t, "2", rec.ID)
	assert.Equal(t, StatusDisabled, rec.Status)
	assert.False(t, rec.PendingStatus)
	assert.Empty(t, rec.Password)
	assert.Equal(t, []string{}, rec.RoleIds)
}

func TestAccountRecord_Values(t *testing.T) {
	rec := NewAccountRecord("3", "carol")
	rec.OrgIds = []string{"10"}
	v := rec.Values()
	assert.Equal(t, "3", v["id"])
	assert.Equal(t, []string{"10"}, v["orgIds"])
	assert.Equal(t, 0, v["status"])
}

func TestUpdateAccountReq_Updates(t *testing.T) {
	nick := "n"
	req := UpdateAccountReq{Nickname: &nick, Status: intPtr(1), OrgIds: []string{"1"}}
	assert.Equal(t, map[string]any{
		"nickname": "n",
		"status":   1,
		"org_ids":  []string{"1"},
	}, req.Updates())
}

func TestValidate(t *testing.T) {
	req := CreateAccountReq{
		Account:  "alice",
		Password: "123",
		Email:    "not-an-email",
		Sex:      intPtr(1),
		Status:   intPtr(3),
	}
	err := Validate(&req)
	var verrs schema.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Msg
	}
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "email")
	assert.Equal(t, "must be one of: 0 1", fields["status"])
	assert.Equal(t, "is required", fields["orgIds"])

	req = CreateAccountReq{
		Account:  "alice",
		Password: "123456",
		Birthday: "1990-02-01",
		Sex:      intPtr(0),
		Status:   intPtr(0),
		OrgIds:   []string{"10"},
	}
	assert.NoError(t, Validate(&req))
}

func TestQueryNormalize(t *testing.T) {
	q := AccountQuery{PageSize: 1000}
	q.Normalize()
	assert.Equal(t, 1, q.PageNum)
	assert.Equal(t, 200, q.PageSize)

	m := MfApiQuery{}
	m.Normalize()
	assert.Equal(t, 20, m.PageSize)
}
