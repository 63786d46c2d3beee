package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *Event {
	return &Event{
		Type:           EventQueryReceived,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		OriginEndpoint: "/query",
		Environment:    "test",
		Question:       "¿Cuánto gasté este mes?",
		Answer:         "Hola",
	}
}

func TestHTTPDispatcher_DispatchAll(t *testing.T) {
	t.Run("Should post the JSON event to every target", func(t *testing.T) {
		var received atomic.Int32
		var mu sync.Mutex
		var body Event
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var ev Event
			if err := json.NewDecoder(r.Body).Decode(&ev); err == nil {
				mu.Lock()
				body = ev
				mu.Unlock()
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		d := NewHTTPDispatcher(time.Second)
		outcomes := d.DispatchAll(context.Background(), testEvent(), []Target{
			{URL: srv.URL, Label: "prod"},
			{URL: srv.URL, Label: "test"},
		})
		require.Len(t, outcomes, 2)
		assert.Equal(t, int32(2), received.Load())
		for _, outcome := range outcomes {
			assert.Equal(t, OutcomeSuccess, outcome.Kind)
			assert.Equal(t, http.StatusOK, outcome.StatusCode)
		}
		mu.Lock()
		last := body
		mu.Unlock()
		assert.Equal(t, EventQueryReceived, last.Type)
		assert.NotEmpty(t, last.Timestamp)
		assert.Equal(t, "/query", last.OriginEndpoint)
		assert.Equal(t, "test", last.Environment)
	})

	t.Run("Should isolate a timing-out target from a healthy one", func(t *testing.T) {
		release := make(chan struct{})
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer func() {
			close(release)
			slow.Close()
		}()
		var fastHits atomic.Int32
		fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fastHits.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		defer fast.Close()

		d := NewHTTPDispatcher(100 * time.Millisecond)
		outcomes := d.DispatchAll(context.Background(), testEvent(), []Target{
			{URL: slow.URL, Label: "prod"},
			{URL: fast.URL, Label: "test"},
		})
		require.Len(t, outcomes, 2)
		assert.Equal(t, OutcomeTimeout, outcomes[0].Kind)
		assert.Error(t, outcomes[0].Err)
		assert.Equal(t, OutcomeSuccess, outcomes[1].Kind)
		assert.Equal(t, int32(1), fastHits.Load())
	})

	t.Run("Should classify a non-2xx response without raising it", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		d := NewHTTPDispatcher(time.Second)
		outcomes := d.DispatchAll(context.Background(), testEvent(), []Target{{URL: srv.URL, Label: "prod"}})
		require.Len(t, outcomes, 1)
		assert.Equal(t, OutcomeBadStatus, outcomes[0].Kind)
		assert.Equal(t, http.StatusInternalServerError, outcomes[0].StatusCode)
	})

	t.Run("Should classify an unreachable target as a connection error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		d := NewHTTPDispatcher(time.Second)
		outcomes := d.DispatchAll(context.Background(), testEvent(), []Target{{URL: srv.URL, Label: "prod"}})
		require.Len(t, outcomes, 1)
		assert.Contains(t,
			[]OutcomeKind{OutcomeConnError, OutcomeOtherError},
			outcomes[0].Kind,
		)
		assert.Error(t, outcomes[0].Err)
	})

	t.Run("Should no-op when no targets are configured", func(t *testing.T) {
		d := NewHTTPDispatcher(time.Second)
		outcomes := d.DispatchAll(context.Background(), testEvent(), nil)
		assert.Nil(t, outcomes)
	})
}

func TestTargets(t *testing.T) {
	t.Run("Should register both destinations when both are set", func(t *testing.T) {
		targets := Targets("https://n8n.example.com/prod", "https://n8n.example.com/test")
		require.Len(t, targets, 2)
		assert.Equal(t, "prod", targets[0].Label)
		assert.Equal(t, "test", targets[1].Label)
	})

	t.Run("Should skip unset destinations", func(t *testing.T) {
		assert.Len(t, Targets("", "https://n8n.example.com/test"), 1)
		assert.Empty(t, Targets("", ""))
	})
}
