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
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

func TestGenAndParseToken(t *testing.T) {
	aToken, rToken, err := GenToken("42", []byte(secret), 60, 120)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserId)
	assert.Equal(t, issUser, claims.Issuer)
}

func TestParseToken_WrongSecret(t *testing.T) {
	aToken, _, err := GenToken("42", []byte(secret), 60, 120)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "another-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	claims := &AuthClaims{
		UserId: "42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshToken(t *testing.T) {
	_, rToken, err := GenToken("7", []byte(secret), 60, 120)
	require.NoError(t, err)

	pair, err := RefreshToken(secret, rToken, 60, 120)
	require.NoError(t, err)

	claims, err := ParseToken(pair["accessToken"], secret)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserId)
	assert.NotEmpty(t, pair["refreshToken"])
}
