package jwtutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func token(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return fmt.Sprintf("%s.%s.sig", header, base64.RawURLEncoding.EncodeToString(payload))
}

func TestIsWellFormed(t *testing.T) {
	assert.True(t, IsWellFormed("a.b.c"))
	assert.False(t, IsWellFormed("a.b"))
	assert.False(t, IsWellFormed(""))
}

func TestExtractClaims(t *testing.T) {
	claims, err := ExtractClaims(token(t, map[string]interface{}{
		"username": "ana",
		"roles":    []string{"USER"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	}))
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, []string{"USER"}, claims.Roles)
}

func TestExtractClaims_Malformed(t *testing.T) {
	_, err := ExtractClaims("not-a-token")
	assert.Error(t, err)
}

func TestIsExpired(t *testing.T) {
	t.Run("future expiry", func(t *testing.T) {
		assert.False(t, IsExpired(token(t, map[string]interface{}{
			"exp": time.Now().Add(time.Hour).Unix(),
		})))
	})

	t.Run("past expiry", func(t *testing.T) {
		assert.True(t, IsExpired(token(t, map[string]interface{}{
			"exp": time.Now().Add(-time.Minute).Unix(),
		})))
	})

	t.Run("no expiry claim is treated as unexpired", func(t *testing.T) {
		assert.False(t, IsExpired(token(t, map[string]interface{}{"sub": "ana"})))
	})

	t.Run("opaque non-JWT token skips the pre-check", func(t *testing.T) {
		assert.False(t, IsExpired("opaque-session-credential"))
	})
}
