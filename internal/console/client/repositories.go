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

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-arcade/console/internal/console/model"
	"github.com/go-arcade/console/internal/console/repo"
)

// NewRepositories http 实现，与 gorm 实现满足相同接口
func NewRepositories(c *Client) *repo.Repositories {
	return &repo.Repositories{
		Account:    &accountClient{c},
		Org:        &orgClient{c},
		Role:       &roleClient{c},
		Permission: &permissionClient{c},
		MfApi:      &mfApiClient{c},
	}
}

type page[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
}

func pageQuery(pageNum, pageSize int, kv ...string) map[string]string {
	q := map[string]string{
		"pageNum":  strconv.Itoa(pageNum),
		"pageSize": strconv.Itoa(pageSize),
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q[kv[i]] = kv[i+1]
		}
	}
	return q
}

type accountClient struct{ *Client }

func (c *accountClient) ListAccounts(ctx context.Context, q *model.AccountQuery) ([]model.AccountRecord, int64, error) {
	status := ""
	if q.Status != nil {
		status = strconv.Itoa(*q.Status)
	}
	query := pageQuery(q.PageNum, q.PageSize,
		"account", q.Account,
		"nickname", q.Nickname,
		"phone", q.Phone,
		"status", status,
	)
	var out page[model.AccountRecord]
	if err := c.do(ctx, http.MethodGet, "/sys/user/list", query, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.List, out.Total, nil
}

func (c *accountClient) GetAccount(ctx context.Context, id string) (*model.AccountRecord, error) {
	var out model.AccountRecord
	if err := c.do(ctx, http.MethodGet, "/sys/user/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *accountClient) ExistsAccount(ctx context.Context, account string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	query := map[string]string{"account": account}
	if err := c.do(ctx, http.MethodGet, "/sys/user/exists", query, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// CreateAccount 密码已在 service 层加密
func (c *accountClient) CreateAccount(ctx context.Context, rec *model.AccountRecord) error {
	body := struct {
		*model.AccountRecord
		Password string `json:"password"`
	}{rec, rec.Password}
	return c.do(ctx, http.MethodPost, "/sys/user", nil, body, nil)
}

func (c *accountClient) UpdateAccount(ctx context.Context, id string, updates map[string]any) error {
	return c.do(ctx, http.MethodPut, "/sys/user/"+url.PathEscape(id), nil, updates, nil)
}

func (c *accountClient) SetStatus(ctx context.Context, id string, status int) error {
	body := map[string]any{"id": id, "status": status}
	return c.do(ctx, http.MethodPut, "/sys/user/status", nil, body, nil)
}

type orgClient struct{ *Client }

func (c *orgClient) GetOrgsByIds(ctx context.Context, ids []string) ([]model.Org, error) {
	if len(ids) == 0 {
		return []model.Org{}, nil
	}
	var out []model.Org
	if err := c.do(ctx, http.MethodPost, "/sys/org/byIds", nil, model.BatchIdsReq{Ids: ids}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type roleClient struct{ *Client }

func (c *roleClient) GetRolesByIds(ctx context.Context, ids []string) ([]model.Role, error) {
	if len(ids) == 0 {
		return []model.Role{}, nil
	}
	var out []model.Role
	if err := c.do(ctx, http.MethodPost, "/sys/role/byIds", nil, model.BatchIdsReq{Ids: ids}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type permissionClient struct{ *Client }

func (c *permissionClient) GetPermissionsByAccountId(ctx context.Context, accountId string) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/sys/user/"+url.PathEscape(accountId)+"/permissions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type mfApiClient struct{ *Client }

func (c *mfApiClient) ListMfApis(ctx context.Context, q *model.MfApiQuery) ([]model.MfApi, int64, error) {
	query := pageQuery(q.PageNum, q.PageSize,
		"name", q.Name,
		"sourceType", q.SourceType,
		"folderId", q.FolderId,
	)
	var out page[model.MfApi]
	if err := c.do(ctx, http.MethodGet, "/nocode/mfApi/list", query, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.List, out.Total, nil
}

func (c *mfApiClient) GetMfApi(ctx context.Context, id string) (*model.MfApi, error) {
	var out model.MfApi
	if err := c.do(ctx, http.MethodGet, "/nocode/mfApi/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *mfApiClient) CreateMfApi(ctx context.Context, api *model.MfApi) error {
	return c.do(ctx, http.MethodPost, "/nocode/mfApi", nil, api, nil)
}

func (c *mfApiClient) UpdateMfApi(ctx context.Context, id string, updates map[string]any) error {
	return c.do(ctx, http.MethodPut, "/nocode/mfApi/"+url.PathEscape(id), nil, updates, nil)
}

func (c *mfApiClient) DeleteMfApi(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/nocode/mfApi/"+url.PathEscape(id), nil, nil, nil)
}
