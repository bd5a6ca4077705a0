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

package repo

import (
	"testing"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// dryRunDB 不连接数据库，只生成 SQL
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "console:console@tcp(127.0.0.1:3306)/console?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestAccountFilter(t *testing.T) {
	db := dryRunDB(t)
	status := 1
	q := &model.AccountQuery{Account: "adm", Status: &status, PageNum: 2, PageSize: 10}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []model.AccountRecord
		return tx.Model(&model.AccountRecord{}).Scopes(accountFilter(q)).Offset(10).Limit(10).Find(&out)
	})
	assert.Contains(t, sql, "FROM `t_account`")
	assert.Contains(t, sql, "account LIKE '%adm%'")
	assert.Contains(t, sql, "status = 1")
	assert.NotContains(t, sql, "nickname")
}

func TestMfApiFilter(t *testing.T) {
	db := dryRunDB(t)
	q := &model.MfApiQuery{SourceType: model.SourceTypeDB, FolderId: "f1"}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []model.MfApi
		return tx.Model(&model.MfApi{}).Scopes(mfApiFilter(q)).Find(&out)
	})
	assert.Contains(t, sql, "FROM `t_mf_api`")
	assert.Contains(t, sql, "del_flag = 0")
	assert.Contains(t, sql, "source_type = 'DB'")
	assert.Contains(t, sql, "folder_id = 'f1'")
}

func TestSortByIds(t *testing.T) {
	orgs := []model.Org{{ID: "20", OrgName: "B"}, {ID: "10", OrgName: "A"}}
	got := SortByIds([]string{"10", "30", "20", "10"}, orgs, func(o model.Org) string { return o.ID })
	assert.Equal(t, []model.Org{{ID: "10", OrgName: "A"}, {ID: "20", OrgName: "B"}}, got)
}

func TestUpdateAccountJSONColumns(t *testing.T) {
	db := dryRunDB(t)
	req := &model.UpdateAccountReq{OrgIds: []string{"10", "20"}, RoleIds: []string{}}

	updates, err := encodeJSONColumns(req.Updates())
	require.NoError(t, err)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&model.AccountRecord{}).Where("id = ?", "5").Updates(updates)
	})
	assert.Contains(t, sql, "UPDATE `t_account`")
	assert.Contains(t, sql, "`org_ids`='[\"10\",\"20\"]'")
	assert.Contains(t, sql, "`role_ids`='[]'")
	assert.NotContains(t, sql, "('10','20')")
}
