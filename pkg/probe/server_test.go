package probe_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"gift_ledger/pkg/probe"
)

func TestServer_Handler(t *testing.T) {
	okCheck := probe.Check{Name: "postgres", Probe: func(context.Context) error { return nil }}
	failingCheck := probe.Check{Name: "redis", Probe: func(context.Context) error { return errors.New("connection refused") }}

	testCases := []struct {
		name       string
		endpoint   string
		checks     []probe.Check
		statusCode int
		body       string
	}{
		{
			name:       "Health handler",
			endpoint:   "/healthz",
			checks:     []probe.Check{failingCheck},
			statusCode: http.StatusOK,
			body:       `{"name":"app-1","version":"v0.0.1"}`,
		},
		{
			name:       "Ready without checks",
			endpoint:   "/ready",
			statusCode: http.StatusOK,
			body:       `{"name":"app-1","version":"v0.0.1"}`,
		},
		{
			name:       "Ready with passing checks",
			endpoint:   "/ready",
			checks:     []probe.Check{okCheck},
			statusCode: http.StatusOK,
			body:       `{"name":"app-1","version":"v0.0.1","checks":{"postgres":"ok"}}`,
		},
		{
			name:       "Ready with failing check",
			endpoint:   "/ready",
			checks:     []probe.Check{okCheck, failingCheck},
			statusCode: http.StatusServiceUnavailable,
			body:       `{"name":"app-1","version":"v0.0.1","checks":{"postgres":"ok","redis":"connection refused"}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			server := probe.NewServer(":0", probe.Options{Name: "app-1", Version: "v0.0.1"}, tc.checks...)

			recorder := httptest.NewRecorder()
			server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tc.endpoint, http.NoBody))

			rq.Equal(tc.statusCode, recorder.Code)
			rq.JSONEq(tc.body, recorder.Body.String())
		})
	}
}

func TestServer_CheckTimeout(t *testing.T) {
	rq := require.New(t)

	slow := probe.Check{Name: "slow", Probe: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	server := probe.NewServer(":0", probe.Options{CheckTimeout: 10 * time.Millisecond}, slow)

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))

	rq.Equal(http.StatusServiceUnavailable, recorder.Code)
	rq.Contains(recorder.Body.String(), "deadline exceeded")
}

func TestServer_Run(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	probeServer := probe.NewServer(":10001", probe.Options{Name: "app-1", Version: "v0.0.1"})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return probeServer.Run(ctx)
	})

	// Ждем запуска сервера.
	time.Sleep(time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://:10001/healthz", http.NoBody)
	rq.NoError(err)

	resp, err := http.DefaultClient.Do(req)
	rq.NoError(err)

	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.JSONEq(`{"name":"app-1","version":"v0.0.1"}`, string(bodyBytes))

	cancel()

	rq.NoError(g.Wait())
}
