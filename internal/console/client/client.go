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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/internal/console/conf"
	"github.com/go-arcade/console/internal/console/repo"
	httpx "github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-resty/resty/v2"
)

// Client 上游管理接口客户端，响应沿用 {code, msg, detail} 信封
type Client struct {
	rc *resty.Client
}

type envelope struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	ErrMsg any             `json:"errMsg"`
	Detail json.RawMessage `json:"detail"`
}

// UpstreamError 上游返回的业务错误
type UpstreamError struct {
	Status int
	Code   int
	Msg    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status=%d code=%d msg=%s", e.Status, e.Code, e.Msg)
}

var notFoundCodes = map[int]bool{
	httpx.NotFound.Code:        true,
	httpx.AccountNotExist.Code: true,
	httpx.MfApiNotExist.Code:   true,
}

func New(cfg conf.Upstream) *Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseUrl).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}
	return &Client{rc: rc}
}

// do 发送请求，out 为 nil 时忽略 detail
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	var env envelope
	req := c.rc.R().SetContext(ctx).SetResult(&env).SetError(&env)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		log.Errorw("upstream request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound || notFoundCodes[env.Code] {
		return repo.ErrRecordNotFound
	}
	if resp.IsError() || env.Code != httpx.Success.Code {
		msg := env.Msg
		if env.ErrMsg != nil {
			msg = fmt.Sprint(env.ErrMsg)
		}
		log.Warnw("upstream request rejected",
			"method", method,
			"path", path,
			"statusCode", resp.StatusCode(),
			"code", env.Code,
			"msg", msg,
		)
		return &UpstreamError{Status: resp.StatusCode(), Code: env.Code, Msg: msg}
	}

	if out == nil || len(env.Detail) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Detail, out); err != nil {
		return fmt.Errorf("decode upstream detail: %w", err)
	}
	return nil
}

// IsUpstreamError 判断是否为上游业务错误
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
