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

package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/pkg/http"
	"github.com/go-arcade/console/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var out T
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(data, &out))
	return out
}

func TestRequestMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(REQUEST_ID).(string))
	})

	t.Run("generates id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderXRequestID, "6f1c0c6e-3b8e-4f43-9d6a-2f6a1d3b9c10")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "6f1c0c6e-3b8e-4f43-9d6a-2f6a1d3b9c10", resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run("replaces malformed id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderXRequestID, "not-a-uuid")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.NotEqual(t, "not-a-uuid", resp.Header.Get(fiber.HeaderXRequestID))
		assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
	})
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(UnifiedResponseMiddleware())
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(DETAIL, map[string]int{"n": 1})
		return nil
	})
	app.Get("/operation", func(c *fiber.Ctx) error {
		c.Locals(OPERATION, "")
		return nil
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		c.Status(fiber.StatusTeapot)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/detail", nil))
	require.NoError(t, err)
	rep := decode[http.Response](t, resp.Body)
	assert.Equal(t, http.Success.Code, rep.Code)
	assert.Equal(t, map[string]any{"n": float64(1)}, rep.Detail)

	resp, err = app.Test(httptest.NewRequest("GET", "/operation", nil))
	require.NoError(t, err)
	rep = decode[http.Response](t, resp.Body)
	assert.Equal(t, http.Success.Code, rep.Code)
	assert.Nil(t, rep.Detail)

	resp, err = app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	repErr := decode[http.ResponseErr](t, resp.Body)
	assert.Equal(t, http.Failed.Code, repErr.ErrCode)
	assert.Equal(t, "/teapot", repErr.Path)
}

func TestExceptionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	repErr := decode[http.ResponseErr](t, resp.Body)
	assert.Equal(t, http.InternalError.Code, repErr.ErrCode)
	assert.Equal(t, "boom", repErr.ErrMsg)
}

func newAuthApp(has PermissionFunc) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthorizationMiddleware(testSecret), PermissionMiddleware(has, "sys:account:update"), func(c *fiber.Ctx) error {
		claims, _ := GetClaims(c)
		return c.SendString(claims.UserId)
	})
	return app
}

func TestAuthorizationMiddleware(t *testing.T) {
	allow := func(context.Context, string, string) bool { return true }
	app := newAuthApp(allow)
	aToken, _, err := jwt.GenToken("42", []byte(testSecret), 60, 120)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		query    string
		upgrade  bool
		wantCode int
		wantBody string
	}{
		{name: "missing", wantCode: http.TokenBeEmpty.Code},
		{name: "bad scheme", header: "Basic " + aToken, wantCode: http.TokenBeEmpty.Code},
		{name: "invalid", header: "Bearer nope", wantCode: http.InvalidToken.Code},
		{name: "header ok", header: "Bearer " + aToken, wantBody: "42"},
		{name: "query on websocket handshake", query: "?token=" + aToken, upgrade: true, wantBody: "42"},
		{name: "query on plain request", query: "?token=" + aToken, wantCode: http.TokenBeEmpty.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			if tt.upgrade {
				req.Header.Set(fiber.HeaderConnection, "Upgrade")
				req.Header.Set(fiber.HeaderUpgrade, "websocket")
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
				return
			}
			repErr := decode[http.ResponseErr](t, resp.Body)
			assert.Equal(t, tt.wantCode, repErr.ErrCode)
		})
	}
}

func TestPermissionMiddleware_Denied(t *testing.T) {
	var gotUser, gotToken string
	deny := func(_ context.Context, userId, token string) bool {
		gotUser, gotToken = userId, token
		return false
	}
	app := newAuthApp(deny)
	aToken, _, err := jwt.GenToken("42", []byte(testSecret), 60, 120)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+aToken)
	resp, err := app.Test(req)
	require.NoError(t, err)

	repErr := decode[http.ResponseErr](t, resp.Body)
	assert.Equal(t, http.PermissionDenied.Code, repErr.ErrCode)
	assert.Equal(t, "42", gotUser)
	assert.Equal(t, "sys:account:update", gotToken)
}

func TestCorsMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(CorsMiddleware(&http.Http{CorsOrigins: "https://console.example.com"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://console.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://console.example.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
}

func TestSkipAccessLog(t *testing.T) {
	assert.True(t, skipAccessLog("/health"))
	assert.True(t, skipAccessLog("/metrics"))
	assert.False(t, skipAccessLog("/api/v1/accounts"))
}
