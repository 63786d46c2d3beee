package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamError(t *testing.T) {
	t.Run("Should carry the upstream detail in the message", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := NewUpstreamError(cause)
		assert.Equal(t, "Error en Groq: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Should be matchable with errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("handling query: %w", NewUpstreamError(errors.New("timeout")))
		var ue *UpstreamError
		require.ErrorAs(t, wrapped, &ue)
		assert.Equal(t, "timeout", ue.Detail)
	})
}

func TestBuildProblemBody(t *testing.T) {
	t.Run("Should default missing fields", func(t *testing.T) {
		body := BuildProblemBody(nil)
		assert.Equal(t, http.StatusInternalServerError, body["status"])
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), body["error"])
		assert.NotContains(t, body, "detail")
	})

	t.Run("Should include the detail when present", func(t *testing.T) {
		body := BuildProblemBody(&Problem{Status: http.StatusBadGateway, Detail: "Error en Groq: timeout"})
		assert.Equal(t, http.StatusBadGateway, body["status"])
		assert.Equal(t, "Bad Gateway", body["error"])
		assert.Equal(t, "Error en Groq: timeout", body["detail"])
	})
}
