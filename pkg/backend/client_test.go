package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestDoJSON_UnauthorizedMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.doJSON(context.Background(), http.MethodGet, "/orders", "tok", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDoJSON_BackendRefusalCarriesMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"no se puede eliminar"}`, "no se puede eliminar"},
		{"message field", `{"message":"stock insuficiente"}`, "stock insuficiente"},
		{"plain text", "algo salió mal", "algo salió mal"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tc.body))
			})

			err := client.doJSON(context.Background(), http.MethodDelete, "/perfumes/1", "", nil, nil)
			apiErr, ok := IsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusConflict, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestDoJSON_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.doJSON(context.Background(), http.MethodGet, "/orders", "abc123", nil, nil))
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestLogin_AcceptsBothTokenSpellings(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"access_token", map[string]interface{}{"access_token": "tok", "roles": []string{"USER"}}},
		{"token", map[string]interface{}{"token": "tok", "roles": []string{"USER"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tc.body)
			})

			result, err := client.Login(context.Background(), "ana", "secreto")
			require.NoError(t, err)
			assert.Equal(t, "tok", result.Token)
			assert.Equal(t, "ana", result.Username)
		})
	}
}

func TestLogin_NoTokenIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"roles":["USER"]}`))
	})

	_, err := client.Login(context.Background(), "ana", "secreto")
	assert.Error(t, err)
}

func TestUploadMultipart_ResolvesRelativeURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "recibo.jpg", header.Filename)
		json.NewEncoder(w).Encode(map[string]string{"url": "/uploads/recibo.jpg"})
	})

	url, err := client.UploadReceipt(context.Background(), "tok", "recibo.jpg", strings.NewReader("datos"))
	require.NoError(t, err)
	assert.Equal(t, client.BaseURL+"/uploads/recibo.jpg", url)
}

func TestUploadMultipart_KeepsAbsoluteURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"imageUrl": "https://cdn.example.com/p.jpg"})
	})

	url, err := client.UploadImage(context.Background(), "tok", "p.jpg", strings.NewReader("datos"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/p.jpg", url)
}
