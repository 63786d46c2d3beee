package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gastos-labs/gastos-gateway/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunKeepAlive(t *testing.T) {
	t.Run("Should ping repeatedly until the duration elapses", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		opts := keepAliveOptions{
			url:      srv.URL,
			interval: 20 * time.Millisecond,
			timeout:  time.Second,
			duration: 110 * time.Millisecond,
		}
		err := runKeepAlive(context.Background(), logger.NewLogger(logger.DefaultConfig()), opts)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, hits.Load(), int32(3))
	})

	t.Run("Should survive ping failures and stop on context cancel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		opts := keepAliveOptions{
			url:      srv.URL,
			interval: 10 * time.Millisecond,
			timeout:  100 * time.Millisecond,
		}
		go func() {
			done <- runKeepAlive(ctx, logger.NewLogger(logger.DefaultConfig()), opts)
		}()
		time.Sleep(50 * time.Millisecond)
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("keep-alive did not stop on cancel")
		}
	})
}

func TestKeepAliveCmd(t *testing.T) {
	t.Run("Should require a URL", func(t *testing.T) {
		cmd := KeepAliveCmd()
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--url")
	})
}
