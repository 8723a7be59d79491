package base

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizedPresetsHeaders(t *testing.T) {
	var got http.Header
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	plain := NewHTTPClient("mpesa", server.URL, server.Client())
	authed := plain.Authorized("tok-123")

	resp, err := authed.PostJSON(context.Background(), "/x", map[string]int{"Amount": 10})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.JSONEq(t, `{"Amount":10}`, string(body))

	var out struct{ OK bool }
	require.NoError(t, resp.Decode(&out))
	assert.True(t, out.OK)

	// the factory input stays unauthenticated
	_, err = plain.Get(context.Background(), "/y", nil)
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
	assert.Equal(t, server.URL, authed.BaseURL())
}

func TestNonSuccessIsReturnedNotFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"errorCode":"500.001.1001"}`))
	}))
	defer server.Close()

	resp, err := NewHTTPClient("mpesa", server.URL, nil).Get(context.Background(), "/", map[string]string{"X-Test": "1"})
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, `{"errorCode":"500.001.1001"}`, resp.String())
}

func TestTransportErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPClient("mpesa", url, nil).PostJSON(context.Background(), "/", struct{}{})
	assert.ErrorContains(t, err, "HTTP request failed")
}
