package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestVerify_SendsJSONAndAcceptsSuccess(t *testing.T) {
	srv, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body verifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "secret", body.Secret)
		assert.Equal(t, "tok", body.Response)
		assert.Equal(t, "203.0.113.7", body.RemoteIP)

		_, _ = w.Write([]byte(`{"success":true}`))
	})

	v := NewTurnstileVerifier("secret", zap.NewNop(), WithVerifyURL(srv.URL))
	assert.True(t, v.Verify(context.Background(), "tok", "203.0.113.7"))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestVerify_RejectsWithoutNetworkCall(t *testing.T) {
	srv, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	v := NewTurnstileVerifier("secret", zap.NewNop(), WithVerifyURL(srv.URL))
	assert.False(t, v.Verify(context.Background(), "", "1.2.3.4"))
	assert.False(t, v.Verify(context.Background(), strings.Repeat("a", MaxTokenLength+1), "1.2.3.4"))

	noSecret := NewTurnstileVerifier("", zap.NewNop(), WithVerifyURL(srv.URL))
	assert.False(t, noSecret.Verify(context.Background(), "tok", "1.2.3.4"))

	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestVerify_FailureModes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"success false", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
		}},
		{"success not boolean", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":"true"}`))
		}},
		{"non 2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":true}`))
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.handler)
			v := NewTurnstileVerifier("secret", zap.NewNop(), WithVerifyURL(srv.URL))
			assert.False(t, v.Verify(context.Background(), "tok", ""))
		})
	}
}

func TestVerify_Timeout(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	v := NewTurnstileVerifier("secret", zap.NewNop(),
		WithVerifyURL(srv.URL),
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
	)
	assert.False(t, v.Verify(context.Background(), "tok", ""))
}

func TestVerify_NetworkError(t *testing.T) {
	v := NewTurnstileVerifier("secret", zap.NewNop(), WithVerifyURL("http://127.0.0.1:1"))
	assert.False(t, v.Verify(context.Background(), "tok", ""))
}

func TestStaticVerifier(t *testing.T) {
	assert.True(t, StaticVerifier(true).Verify(context.Background(), "tok", ""))
	assert.False(t, StaticVerifier(true).Verify(context.Background(), "", ""))
	assert.False(t, StaticVerifier(false).Verify(context.Background(), "tok", ""))
}
