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

import "time"

const (
	SourceTypeDB   = "DB"
	SourceTypeFile = "FILE"
	SourceTypeAPI  = "API"

	QueryTypeCustom = 0
	QueryTypeNative = 1
)

// MfApi 低代码 API 管理
type MfApi struct {
	ID         string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	FolderId   string    `gorm:"column:folder_id;index" json:"folderId"`
	SourceId   string    `gorm:"column:source_id" json:"sourceId"`
	SourceType string    `gorm:"column:source_type;size:16" json:"sourceType"` // DB FILE API
	Remark     string    `gorm:"column:remark" json:"remark"`
	SourceSql  string    `gorm:"column:source_sql;type:text" json:"sourceSql"`
	Config     string    `gorm:"column:config;type:text" json:"config"`
	ParamFlag  string    `gorm:"column:param_flag" json:"paramFlag"`
	DelFlag    int       `gorm:"column:del_flag;not null;default:0" json:"delFlag"`
	QueryType  int       `gorm:"column:query_type;not null;default:0" json:"queryType"` // 0 自定义查询 1 原生查询
	TenantId   string    `gorm:"column:tenant_id;index" json:"tenantId"`
	CreateBy   string    `gorm:"column:create_by" json:"createBy"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
}

func (m *MfApi) TableName() string {
	return "t_mf_api"
}

// MfApiQuery 列表查询
type MfApiQuery struct {
	Name       string `query:"name" json:"name"`
	SourceType string `query:"sourceType" json:"sourceType" validate:"omitempty,oneof=DB FILE API"`
	FolderId   string `query:"folderId" json:"folderId"`
	PageNum    int    `query:"pageNum" json:"pageNum"`
	PageSize   int    `query:"pageSize" json:"pageSize"`
}

func (q *MfApiQuery) Normalize() {
	q.PageNum, q.PageSize = normalizePage(q.PageNum, q.PageSize)
}

// MfApiReq 新增/修改
type MfApiReq struct {
	Name       string `json:"name" validate:"required,max=128"`
	FolderId   string `json:"folderId"`
	SourceId   string `json:"sourceId"`
	SourceType string `json:"sourceType" validate:"required,oneof=DB FILE API"`
	Remark     string `json:"remark" validate:"max=255"`
	SourceSql  string `json:"sourceSql"`
	Config     string `json:"config"`
	ParamFlag  string `json:"paramFlag"`
	QueryType  int    `json:"queryType" validate:"oneof=0 1"`
	TenantId   string `json:"tenantId"`
}

// Apply 写入记录
func (r *MfApiReq) Apply(m *MfApi) {
	m.Name = r.Name
	m.FolderId = r.FolderId
	m.SourceId = r.SourceId
	m.SourceType = r.SourceType
	m.Remark = r.Remark
	m.SourceSql = r.SourceSql
	m.Config = r.Config
	m.ParamFlag = r.ParamFlag
	m.QueryType = r.QueryType
	m.TenantId = r.TenantId
}

// Updates 转为 gorm 更新字段
func (r *MfApiReq) Updates() map[string]any {
	return map[string]any{
		"name":        r.Name,
		"folder_id":   r.FolderId,
		"source_id":   r.SourceId,
		"source_type": r.SourceType,
		"remark":      r.Remark,
		"source_sql":  r.SourceSql,
		"config":      r.Config,
		"param_flag":  r.ParamFlag,
		"query_type":  r.QueryType,
		"tenant_id":   r.TenantId,
	}
}
