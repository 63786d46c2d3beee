package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLink(t *testing.T) {
	t.Run("Should produce a well-formed wa.me URL", func(t *testing.T) {
		link := BuildLink("5215512345678", "Hola")
		parsed, err := url.Parse(link)
		require.NoError(t, err)
		assert.Equal(t, "https", parsed.Scheme)
		assert.Equal(t, "wa.me", parsed.Host)
		assert.Equal(t, "/5215512345678", parsed.Path)
		assert.Contains(t, link, "Hola")
	})

	t.Run("Should be deterministic for identical inputs", func(t *testing.T) {
		first := BuildLink("5215512345678", "Recordatorio: pagar la renta\nmañana")
		second := BuildLink("5215512345678", "Recordatorio: pagar la renta\nmañana")
		assert.Equal(t, first, second)
	})

	t.Run("Should round-trip the message through percent-decoding", func(t *testing.T) {
		message := "Gasté $1,200.50 en comida\n¿Está bien? ñ + á"
		link := BuildLink("5215512345678", message)
		parsed, err := url.Parse(link)
		require.NoError(t, err)
		decoded := parsed.Query().Get("text")
		assert.Equal(t, message, decoded)
	})

	t.Run("Should percent-encode newlines and spaces", func(t *testing.T) {
		link := BuildLink("5215512345678", "line one\nline two")
		assert.Contains(t, link, "%0A")
		assert.Contains(t, link, "%20")
		assert.NotContains(t, link, "+")
		assert.NotContains(t, link, "\n")
	})
}
