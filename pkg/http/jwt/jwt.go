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

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/console/pkg/log"
	"github.com/golang-jwt/jwt/v5"
)

type AuthClaims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

var issUser = "arcade-console"

// GenToken 生成 access_token 和 refresh_token，过期时间单位为分钟
func GenToken(userId string, secretKey []byte, accessExpired, refreshExpired time.Duration) (aToken, rToken string, err error) {
	now := time.Now()
	aClaims := &AuthClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issUser,
			ExpiresAt: jwt.NewNumericDate(now.Add(accessExpired * time.Minute)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	aToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, aClaims).SignedString(secretKey)
	if err != nil {
		log.Errorw("sign access token failed", "error", err)
		return "", "", err
	}

	rClaims := &AuthClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issUser,
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshExpired * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	rToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, rClaims).SignedString(secretKey)
	if err != nil {
		log.Errorw("sign refresh token failed", "error", err)
		return "", "", err
	}

	return aToken, rToken, nil
}

// ParseToken 校验 token 并返回 claims
func ParseToken(token, secretKey string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RefreshToken 用 refresh_token 换取新的 token 对
func RefreshToken(secretKey string, rToken string, accessExpired, refreshExpired time.Duration) (map[string]string, error) {
	claims, err := ParseToken(rToken, secretKey)
	if err != nil {
		return nil, err
	}

	aToken, newRToken, err := GenToken(claims.UserId, []byte(secretKey), accessExpired, refreshExpired)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"accessToken":  aToken,
		"refreshToken": newRToken,
	}, nil
}
