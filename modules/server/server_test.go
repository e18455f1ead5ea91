package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingService struct{}

func (pingService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
}

func tag(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestNewValidatesPort(t *testing.T) {
	_, err := New("127.0.0.1", -1)
	assert.Error(t, err)
	_, err = New("127.0.0.1", 1<<16)
	assert.Error(t, err)

	s, err := New("", 3002)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3002", s.Addr())
}

func TestMiddlewareOrderAndServices(t *testing.T) {
	s, err := New("127.0.0.1", 0,
		WithServices(pingService{}),
		WithGlobalMiddlewares(tag("outer"), nil, tag("inner")),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, []string{"outer", "inner"}, rec.Header().Values("X-Chain"))
}

func TestOptions(t *testing.T) {
	s, err := New("127.0.0.1", 0,
		WithReadTimeout(3*time.Second),
		WithWriteTimeout(4*time.Second),
		WithIdleTimeout(5*time.Second),
		WithShutdownTimeout(6*time.Second),
		WithWriteTimeout(0),
	)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, s.server.ReadTimeout)
	assert.Equal(t, 4*time.Second, s.server.WriteTimeout)
	assert.Equal(t, 5*time.Second, s.server.IdleTimeout)
	assert.Equal(t, 6*time.Second, s.shutdownTimeout)
}

func TestServeStopsOnCancel(t *testing.T) {
	s, err := New("127.0.0.1", 0, WithServices(pingService{}))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	s, err := New("127.0.0.1", port)
	require.NoError(t, err)
	assert.Error(t, s.Run(context.Background()))
}
