package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingPruner struct {
	calls atomic.Int32
	err   error
}

func (p *countingPruner) Prune(olderThan time.Duration) (int64, error) {
	p.calls.Add(1)
	return 3, p.err
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestRunner_ServesAndShutsDown(t *testing.T) {
	ln := listen(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	r := NewRunner(Config{Listener: ln, Handler: mux}, nil, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

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
		t.Fatal("runner did not stop")
	}
}

func TestRunner_Prunes(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pruner := &countingPruner{}
	r := NewRunner(Config{
		Listener:      listen(t),
		Handler:       http.NotFoundHandler(),
		Retention:     time.Hour,
		PruneInterval: 10 * time.Millisecond,
	}, pruner, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return pruner.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestRunner_PruneErrorsAreNotFatal(t *testing.T) {
	pruner := &countingPruner{err: errors.New("database is locked")}
	r := NewRunner(Config{
		Listener:      listen(t),
		Handler:       http.NotFoundHandler(),
		Retention:     time.Hour,
		PruneInterval: 10 * time.Millisecond,
	}, pruner, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return pruner.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestRunner_PruningDisabled(t *testing.T) {
	pruner := &countingPruner{}
	r := NewRunner(Config{Listener: listen(t), Handler: http.NotFoundHandler()}, pruner, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	assert.Zero(t, pruner.calls.Load())
}

func TestRunner_ListenError(t *testing.T) {
	ln := listen(t)
	defer func() { _ = ln.Close() }()

	r := NewRunner(Config{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}, nil, testLogger())
	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
