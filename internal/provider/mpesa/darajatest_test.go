package mpesa_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mpesarelay/internal/domain/credential"
	"mpesarelay/internal/provider/mpesa"

	"github.com/stretchr/testify/assert"
)

// fakeDaraja serves the OAuth endpoint and echoes every POST body back
type fakeDaraja struct {
	*httptest.Server

	mu          sync.Mutex
	tokenStatus int
	tokenBody   string
	opStatus    int
	opBody      string
	cutPosts    bool
	tokenCalls  int
	posts       int
	lastPath    string
	lastAuth    string
	lastBody    map[string]any
}

func newFakeDaraja(t *testing.T) *fakeDaraja {
	t.Helper()
	f := &fakeDaraja{
		tokenStatus: http.StatusOK,
		tokenBody:   `{"access_token":"tok-123","expires_in":"3599"}`,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/oauth/v1/generate" {
			f.tokenCalls++
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
			key, secret, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "consumer-key", key)
			assert.Equal(t, "consumer-secret", secret)
			w.WriteHeader(f.tokenStatus)
			_, _ = w.Write([]byte(f.tokenBody))
			return
		}

		if f.cutPosts {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					_ = conn.Close()
					return
				}
			}
		}

		f.posts++
		assert.Equal(t, http.MethodPost, r.Method)
		f.lastPath = r.URL.Path
		f.lastAuth = r.Header.Get("Authorization")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		f.lastBody = nil
		assert.NoError(t, json.Unmarshal(body, &f.lastBody))

		if f.opStatus != 0 {
			w.WriteHeader(f.opStatus)
			_, _ = w.Write([]byte(f.opBody))
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeDaraja) snapshot() (posts, tokenCalls int, path, auth string, body map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts, f.tokenCalls, f.lastPath, f.lastAuth, f.lastBody
}

var fixedNow = time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC) // 12:00:00 EAT

func testCredentials() credential.Credentials {
	return credential.Credentials{
		Key:                "consumer-key",
		Secret:             "consumer-secret",
		SecurityCredential: "initiator-pass",
	}
}

func newTestClient(f *fakeDaraja, env credential.Environment, creds credential.Credentials, opts ...mpesa.Option) *mpesa.Client {
	opts = append([]mpesa.Option{
		mpesa.WithBaseURL(f.URL),
		mpesa.WithHTTPClient(f.Client()),
		mpesa.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return mpesa.New(creds, env, opts...)
}
