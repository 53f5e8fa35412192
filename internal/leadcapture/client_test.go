package leadcapture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noel97chan-creator/IFRS16calculator/internal/resilience"
)

func newTestClient(endpoint string) *Client {
	return NewClient(
		&http.Client{Timeout: 2 * time.Second},
		endpoint,
		resilience.NewCircuitBreaker("lead-capture-test"),
		resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond},
		zap.NewNop(),
	)
}

func TestClient_Submit_OK(t *testing.T) {
	var gotEmail, gotAccept, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotEmail = r.PostForm.Get("email")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Submit(context.Background(), "cfo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cfo@example.com", gotEmail)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
}

func TestClient_Submit_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).Submit(context.Background(), "cfo@example.com"))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClient_Submit_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Submit(context.Background(), "cfo@example.com")

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnprocessableEntity, rejected.StatusCode)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClient_Submit_NotConfigured(t *testing.T) {
	err := newTestClient("").Submit(context.Background(), "cfo@example.com")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
